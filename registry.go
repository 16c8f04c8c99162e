package go_mempool

import (
	"sync"
)

type registryShard struct {
	mu     sync.Mutex
	onLoan map[Address]struct{}
}

// registry is the set of addresses currently on loan. It is only used in safe
// mode. Sharding keeps concurrent Alloc and Dealloc from piling up on one mutex.
type registry struct {
	shards []registryShard
}

func newRegistry(shardNum int) *registry {
	r := &registry{
		shards: make([]registryShard, shardNum),
	}
	for i := range r.shards {
		r.shards[i].onLoan = make(map[Address]struct{})
	}
	return r
}

// add returns false if addr is already on loan
func (r *registry) add(addr Address) bool {
	s := r.getShard(addr)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.onLoan[addr]; ok {
		return false
	}
	s.onLoan[addr] = struct{}{}
	return true
}

// remove returns false if addr is not on loan
func (r *registry) remove(addr Address) bool {
	s := r.getShard(addr)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.onLoan[addr]; !ok {
		return false
	}
	delete(s.onLoan, addr)
	return true
}

func (r *registry) contains(addr Address) bool {
	s := r.getShard(addr)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.onLoan[addr]
	return ok
}

func (r *registry) len() int {
	total := 0
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.Lock()
		total += len(s.onLoan)
		s.mu.Unlock()
	}
	return total
}

func (r *registry) getShard(addr Address) *registryShard {
	k := uint64(murmur32(uint64(addr.blob), uint64(addr.offset)))
	// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
	return &r.shards[int(k*uint64(len(r.shards))>>32)]
}
