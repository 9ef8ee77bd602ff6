// Package embedix is a persistent, partitioned key-value index for
// fixed-dimensionality float32 vectors keyed by a text term, with a reverse
// lookup from a compact integer id back to the term.
//
// It targets large, write-once vector sets such as learned word-embedding
// tables: a one-time concurrent bulk ingestion (Compile) followed by
// high-volume concurrent reads (Lookup, Fetch) through a bounded read-through
// cache.
//
// An index lives under a single directory: a header table holding the
// metadata record and the id -> term mapping, plus N partition tables each
// holding term -> (id, vector) for the terms FNV-1a routes to it.
//
//	idx, err := embedix.Create("./data", "glove", 8, 300, 400_000)
//	if err != nil { ... }
//	defer idx.Close()
//
//	if err := idx.Compile(ctx, "glove.300d.txt.gz"); err != nil { ... }
//
//	id, vec, err := idx.Lookup("cat") // unknown terms yield (0, zero vector)
//	term, ok, err := idx.Fetch(id)    // unknown ids yield ok == false
package embedix
