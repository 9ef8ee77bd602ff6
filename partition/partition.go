// Package partition routes terms to partition tables and derives the on-disk
// file names for an index.
//
// The routing hash is FNV-1a 64 and is part of the persisted contract: a table
// set built with N partitions is only addressable when reopened with the same
// N and the same hash. Changing either without re-ingestion silently loses
// data, which is why Open reads the partition count from persisted metadata
// instead of taking it from the caller.
package partition

import (
	"fmt"
	"hash/fnv"
)

// HeaderFile is the file name of the header table under an index path.
const HeaderFile = "header.dets"

// Of returns the partition of a term in [0, partitions). It is a pure
// function of (term, partitions) and stable across process restarts.
func Of(term string, partitions int) int {
	h := fnv.New64a()
	h.Write([]byte(term))
	return int(h.Sum64() % uint64(partitions))
}

// TableFile returns the partition table file name for partition nn of the
// named index, e.g. "glove_07.dets". Independent processes reopening the same
// path resolve to the same files.
func TableFile(name string, nn int) string {
	return fmt.Sprintf("%s_%02d.dets", name, nn)
}
