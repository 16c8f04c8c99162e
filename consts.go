package go_mempool

import "runtime"

const (
	MajorVersion = 0
	MinorVersion = 1
)

var defaultRegistryShards = 4 * runtime.GOMAXPROCS(0) // 4 shards per cpu core
