//go:build functional_tests

package functional

import (
	"context"
	"encoding/binary"
	"testing"

	go_mempool "github.com/datnguyenzzz/nogodb/lib/go-mempool"
	"github.com/datnguyenzzz/nogodb/lib/go-mempool/allocator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

type PoolSuite struct {
	suite.Suite
	opts []go_mempool.Option
	pool *go_mempool.Pool
}

func (s *PoolSuite) SetupTest() {
	pool, err := go_mempool.New(recordSize, 8, s.opts...)
	require.NoError(s.T(), err, "should be able to create the pool")
	s.pool = pool
}

func (s *PoolSuite) TearDownTest() {
	assert.NoError(s.T(), s.pool.Close(context.Background()), "should be able to close the pool")
}

func (s *PoolSuite) write(addr go_mempool.Address, r record) {
	buf := s.pool.Bytes(addr)
	require.Len(s.T(), buf, recordSize)
	binary.LittleEndian.PutUint32(buf[0:4], r.id)
	copy(buf[4:], r.payload[:])
}

func (s *PoolSuite) read(addr go_mempool.Address) record {
	buf := s.pool.Bytes(addr)
	var r record
	r.id = binary.LittleEndian.Uint32(buf[0:4])
	copy(r.payload[:], buf[4:])
	return r
}

func (s *PoolSuite) Test_Records_Survive_Growth() {
	ctx := context.Background()
	addrs := make(map[go_mempool.Address]record)

	for round := 0; round < 5; round++ {
		for {
			addr, err := s.pool.Alloc(ctx)
			if err != nil {
				assert.ErrorIs(s.T(), err, go_mempool.ErrEmptyPool)
				break
			}
			r := newRecord(uint32(len(addrs)))
			s.write(addr, r)
			addrs[addr] = r
		}
		s.T().Logf("Test_Records_Survive_Growth: round %v, capacity = %v", round, s.pool.Capacity())
		require.NoError(s.T(), s.pool.Realloc(ctx, 2*s.pool.Capacity()))
	}

	// growth never moves or touches a block already on loan
	for addr, r := range addrs {
		assert.Equal(s.T(), r, s.read(addr), "record must match")
	}
	assert.Len(s.T(), addrs, 8*(1<<4))

	for addr := range addrs {
		require.NoError(s.T(), s.pool.Dealloc(ctx, addr))
	}
	stats := s.pool.Stats()
	assert.Equal(s.T(), s.pool.Capacity(), stats.Free)
	assert.Zero(s.T(), stats.OnLoan)
}

func (s *PoolSuite) Test_Workers_Own_Their_Records() {
	const workers = 4
	ctx := context.Background()
	require.NoError(s.T(), s.pool.Realloc(ctx, 4096))

	eg, egCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			owned := make(map[go_mempool.Address]record)
			for i := 0; i < 4096/workers; i++ {
				addr, err := s.pool.Alloc(egCtx)
				if err != nil {
					return err
				}
				r := newRecord(uint32(w))
				s.write(addr, r)
				owned[addr] = r
			}
			// nobody else may have written into a block this worker holds
			for addr, r := range owned {
				if !assert.Equal(s.T(), r, s.read(addr)) {
					break
				}
			}
			for addr := range owned {
				if err := s.pool.Dealloc(egCtx, addr); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(s.T(), eg.Wait())
	assert.Equal(s.T(), 4096, s.pool.Stats().Free)
}

func TestPoolSuite(t *testing.T) {
	suite.Run(t, new(PoolSuite))
}

func TestPoolSuite_SafeMode(t *testing.T) {
	suite.Run(t, &PoolSuite{opts: []go_mempool.Option{go_mempool.WithSafeMode(true)}})
}

func TestPoolSuite_Mmap(t *testing.T) {
	suite.Run(t, &PoolSuite{opts: []go_mempool.Option{go_mempool.WithAllocator(allocator.NewMmapAllocator())}})
}
