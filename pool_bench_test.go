package go_mempool

import (
	"context"
	"sync"
	"testing"
)

const benchBlockSize = 64

func Benchmark_Generic_Alloc(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf := make([]byte, benchBlockSize)
		buf[0] = byte(i)
	}
}

func Benchmark_SyncPool_Alloc(b *testing.B) {
	sPool := sync.Pool{
		New: func() interface{} {
			return make([]byte, benchBlockSize)
		},
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf := sPool.Get().([]byte)
		buf[0] = byte(i)
		sPool.Put(buf)
	}
}

func benchmarkPool(b *testing.B, opts ...Option) {
	ctx := context.Background()
	p, err := New(benchBlockSize, 1024, opts...)
	if err != nil {
		b.Fatal(err)
	}
	defer func() { _ = p.Close(ctx) }()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		addr, err := p.Alloc(ctx)
		if err != nil {
			b.Fatal(err)
		}
		p.Bytes(addr)[0] = byte(i)
		if err := p.Dealloc(ctx, addr); err != nil {
			b.Fatal(err)
		}
	}
}

func Benchmark_Pool_Alloc(b *testing.B) {
	benchmarkPool(b)
}

func Benchmark_Pool_Alloc_Single_Threaded(b *testing.B) {
	benchmarkPool(b, WithThreadSafe(false))
}

func Benchmark_Pool_Alloc_Safe_Mode(b *testing.B) {
	benchmarkPool(b, WithSafeMode(true))
}

func Benchmark_Pool_Alloc_Parallel(b *testing.B) {
	ctx := context.Background()
	p, err := New(benchBlockSize, 1<<16)
	if err != nil {
		b.Fatal(err)
	}
	defer func() { _ = p.Close(ctx) }()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			addr, err := p.Alloc(ctx)
			if err != nil {
				b.Error(err)
				return
			}
			if err := p.Dealloc(ctx, addr); err != nil {
				b.Error(err)
				return
			}
		}
	})
}
