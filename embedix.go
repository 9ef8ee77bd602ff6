package embedix

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/embedix/cache"
	"github.com/hupe1980/embedix/partition"
	"github.com/hupe1980/embedix/store"
	"github.com/hupe1980/embedix/vector"
)

// FormatVersion is the on-disk format version written at creation and
// verified on every open.
const FormatVersion = 1

// metaKey is the reserved header-table key holding the metadata record. It
// can never collide with an id key: ids are always encoded as 8 bytes.
var metaKey = []byte("meta")

// metadata is the single record persisted under metaKey at creation. It is
// written once and never mutated.
type metadata struct {
	Version    int    `json:"version"`
	Name       string `json:"name"`
	Partitions int    `json:"partitions"`
	VectorSize int    `json:"vector_size"`
}

// Index is a persistent, partitioned term -> (id, vector) index with a
// reverse id -> term lookup. It is the unit of lifecycle management: create
// or open a handle, ingest or read, then close it.
//
// A fully-open handle supports any number of concurrent readers. Independent
// handles on the same path must all be read-only (WithReadOnly): a read-write
// handle holds each table's file lock exclusively, and a second Open or
// Create on the same path fails with *StoreError once the lock wait times
// out.
type Index struct {
	version    int
	name       string
	partitions int
	vectorSize int

	header *store.Table
	parts  []*store.Table

	cache cache.Cache // nil when caching is disabled
	group singleflight.Group

	logger          *Logger
	compileWorkers  int
	compileProgress func(done int64)

	closeOnce sync.Once
	closeErr  error
}

// Create allocates a new empty index under path: a header table plus one
// partition table per partition, each pre-sized for sizeHint entries. The
// partition count and vector size are fixed for the index's lifetime. It
// fails with *StoreError if any table file already exists.
func Create(path, name string, partitions, vectorSize, sizeHint int, optFns ...Option) (*Index, error) {
	if name == "" {
		return nil, fmt.Errorf("index name must not be empty")
	}
	if partitions < 1 {
		return nil, fmt.Errorf("partitions must be positive, got %d", partitions)
	}
	if vectorSize < 1 {
		return nil, fmt.Errorf("vector size must be positive, got %d", vectorSize)
	}

	o := applyOptions(optFns)

	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, &StoreError{Op: "create", Path: path, Err: err}
	}

	header, err := store.Create(filepath.Join(path, partition.HeaderFile), sizeHint)
	if err != nil {
		return nil, err
	}

	meta := metadata{
		Version:    FormatVersion,
		Name:       name,
		Partitions: partitions,
		VectorSize: vectorSize,
	}
	data, err := json.Marshal(meta)
	if err != nil {
		header.Close()
		return nil, err
	}
	if err := header.Put(metaKey, data); err != nil {
		header.Close()
		return nil, err
	}

	parts := make([]*store.Table, 0, partitions)
	for nn := 0; nn < partitions; nn++ {
		tbl, err := store.Create(filepath.Join(path, partition.TableFile(name, nn)), sizeHint)
		if err != nil {
			// Release every handle acquired so far.
			header.Close()
			for _, p := range parts {
				p.Close()
			}
			return nil, err
		}
		parts = append(parts, tbl)
	}

	idx := newIndex(meta, header, parts, o)
	idx.logger.Info("index created", "path", path, "partitions", partitions, "vector_size", vectorSize)
	return idx, nil
}

// Open opens an existing index under path. Partition count, vector size and
// name are read from the persisted metadata record, never supplied by the
// caller, so a table set can never be reopened with a mismatched partition
// count.
func Open(path string, optFns ...Option) (*Index, error) {
	o := applyOptions(optFns)

	mode := store.ReadWrite
	if o.readOnly {
		mode = store.ReadOnly
	}

	header, err := store.Open(filepath.Join(path, partition.HeaderFile), mode)
	if err != nil {
		return nil, err
	}

	meta, err := readMetadata(header)
	if err != nil {
		header.Close()
		return nil, err
	}

	parts := make([]*store.Table, 0, meta.Partitions)
	for nn := 0; nn < meta.Partitions; nn++ {
		tbl, err := store.Open(filepath.Join(path, partition.TableFile(meta.Name, nn)), mode)
		if err != nil {
			header.Close()
			for _, p := range parts {
				p.Close()
			}
			return nil, err
		}
		parts = append(parts, tbl)
	}

	idx := newIndex(meta, header, parts, o)
	idx.logger.Debug("index opened", "path", path, "read_only", o.readOnly)
	return idx, nil
}

func newIndex(meta metadata, header *store.Table, parts []*store.Table, o options) *Index {
	return &Index{
		version:         meta.Version,
		name:            meta.Name,
		partitions:      meta.Partitions,
		vectorSize:      meta.VectorSize,
		header:          header,
		parts:           parts,
		cache:           o.registry.Namespace(meta.Name, o.cacheSize),
		logger:          o.logger.WithName(meta.Name),
		compileWorkers:  o.compileWorkers,
		compileProgress: o.compileProgress,
	}
}

func readMetadata(header *store.Table) (metadata, error) {
	data, ok, err := header.Get(metaKey)
	if err != nil {
		return metadata{}, err
	}
	if !ok {
		return metadata{}, &StoreError{Op: "open", Path: header.Path(), Err: errors.New("missing metadata record")}
	}

	var meta metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return metadata{}, &StoreError{Op: "open", Path: header.Path(), Err: err}
	}
	if meta.Version != FormatVersion {
		return metadata{}, &StoreError{
			Op:   "open",
			Path: header.Path(),
			Err:  fmt.Errorf("unsupported format version: %d (expected %d)", meta.Version, FormatVersion),
		}
	}
	if meta.Partitions < 1 || meta.VectorSize < 1 {
		return metadata{}, &StoreError{Op: "open", Path: header.Path(), Err: errors.New("corrupt metadata record")}
	}
	return meta, nil
}

// Version returns the on-disk format version.
func (idx *Index) Version() int { return idx.version }

// Name returns the index's logical name, also its cache namespace.
func (idx *Index) Name() string { return idx.name }

// Partitions returns the fixed partition count.
func (idx *Index) Partitions() int { return idx.partitions }

// VectorSize returns the fixed vector dimensionality.
func (idx *Index) VectorSize() int { return idx.vectorSize }

// Insert writes one (term, id, vector) record. It fails with
// *SizeMismatchError, before touching any table, when the vector's byte
// length disagrees with the index's vector size.
//
// The header write precedes the partition write: the only possible partial
// state is an id resolvable to a term with no vector yet, never a vector with
// no reverse mapping. Ids must be positive; id 0 is reserved as the
// absent-lookup sentinel and fails with ErrInvalidID. Inserting the same term
// twice is last-write-wins.
func (idx *Index) Insert(term string, id uint64, v vector.Vector) error {
	if id == 0 {
		idx.logger.LogInsert(term, id, ErrInvalidID)
		return ErrInvalidID
	}

	encoded := v.Encode()
	if len(encoded) != vector.EncodedLen(idx.vectorSize) {
		err := &SizeMismatchError{
			ExpectedBytes: vector.EncodedLen(idx.vectorSize),
			ActualBytes:   len(encoded),
		}
		idx.logger.LogInsert(term, id, err)
		return err
	}

	if err := idx.header.Put(idKey(id), []byte(term)); err != nil {
		idx.logger.LogInsert(term, id, err)
		return err
	}

	part := idx.parts[partition.Of(term, idx.partitions)]
	if err := part.Put([]byte(term), encodeRecord(id, encoded)); err != nil {
		idx.logger.LogInsert(term, id, err)
		return err
	}

	idx.logger.LogInsert(term, id, nil)
	return nil
}

// Fetch resolves an id back to its term. ok is false for a never-inserted
// id; absence is a normal result, not an error.
func (idx *Index) Fetch(id uint64) (term string, ok bool, err error) {
	key := cache.Key{Kind: cache.KindID, ID: id}
	if idx.cache != nil {
		if b, hit := idx.cache.Get(key); hit {
			return string(b), true, nil
		}
	}

	v, err, _ := idx.group.Do("f:"+strconv.FormatUint(id, 10), func() (any, error) {
		b, present, err := idx.header.Get(idKey(id))
		if err != nil {
			return nil, err
		}
		if !present {
			return nil, nil
		}
		if idx.cache != nil {
			idx.cache.Set(key, b)
		}
		return b, nil
	})
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return string(v.([]byte)), true, nil
}

// Lookup resolves a term to its (id, vector). An unknown term yields the
// sentinel (0, all-zero vector of the configured dimensionality) so callers
// can treat it as a neutral embedding without branching; this is deliberately
// different from Fetch's absent signal.
func (idx *Index) Lookup(term string) (uint64, vector.Vector, error) {
	key := cache.Key{Kind: cache.KindTerm, Term: term}
	if idx.cache != nil {
		if b, hit := idx.cache.Get(key); hit {
			return decodeRecord(b, idx.vectorSize)
		}
	}

	v, err, _ := idx.group.Do("l:"+term, func() (any, error) {
		part := idx.parts[partition.Of(term, idx.partitions)]
		b, present, err := part.Get([]byte(term))
		if err != nil {
			return nil, err
		}
		if !present {
			// The sentinel is not cached: it is cheap to rebuild and a
			// later ingestion run may still bind the term.
			return nil, nil
		}
		if idx.cache != nil {
			idx.cache.Set(key, b)
		}
		return b, nil
	})
	if err != nil {
		return 0, nil, err
	}
	if v == nil {
		return 0, vector.Zero(idx.vectorSize), nil
	}
	return decodeRecord(v.([]byte), idx.vectorSize)
}

// Len returns the number of ingested terms.
func (idx *Index) Len() (int, error) {
	n, err := idx.header.Len()
	if err != nil {
		return 0, err
	}
	// Exclude the metadata record.
	return n - 1, nil
}

// CacheStats returns cumulative cache hit/miss counters for this index's
// namespace, or zeros when caching is disabled.
func (idx *Index) CacheStats() (hits, misses int64) {
	if idx.cache == nil {
		return 0, 0
	}
	return idx.cache.Stats()
}

// Close releases the header and partition table handles. It is idempotent.
func (idx *Index) Close() error {
	idx.closeOnce.Do(func() {
		errs := make([]error, 0, len(idx.parts)+1)
		errs = append(errs, idx.header.Close())
		for _, p := range idx.parts {
			errs = append(errs, p.Close())
		}
		idx.closeErr = errors.Join(errs...)
	})
	return idx.closeErr
}

// idKey encodes an id as a fixed-width big-endian key, keeping ids ordered
// in the header table.
func idKey(id uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], id)
	return b[:]
}

// encodeRecord prefixes the encoded vector with its 8-byte big-endian id.
func encodeRecord(id uint64, encodedVector []byte) []byte {
	b := make([]byte, 8+len(encodedVector))
	binary.BigEndian.PutUint64(b, id)
	copy(b[8:], encodedVector)
	return b
}

func decodeRecord(b []byte, vectorSize int) (uint64, vector.Vector, error) {
	if len(b) < 8 {
		return 0, nil, &SizeMismatchError{
			ExpectedBytes: 8 + vector.EncodedLen(vectorSize),
			ActualBytes:   len(b),
		}
	}
	id := binary.BigEndian.Uint64(b)
	v, err := vector.Decode(b[8:], vectorSize)
	if err != nil {
		return 0, nil, err
	}
	return id, v, nil
}
