package embedix

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/embedix/vector"
)

// maxLineBytes bounds a single corpus line. Embedding rows are wide but
// bounded; 16MB leaves ample headroom for very high dimensionalities.
const maxLineBytes = 16 * 1024 * 1024

// Compile ingests a text corpus of "term weight weight ..." lines. Each
// line's 1-based position becomes the record id, so id assignment is
// invariant to scheduling: compiling the same source twice into fresh indices
// assigns identical ids regardless of completion order.
//
// Lines are dispatched to a bounded worker pool and processed unordered; the
// first parse or store failure cancels the run and fails the whole call.
// Duplicate terms in one corpus are last-write-wins with undefined order and
// are the caller's responsibility to avoid.
//
// Sources compressed with gzip (.gz), zstd (.zst) or lz4 (.lz4) are
// decompressed transparently.
func (idx *Index) Compile(ctx context.Context, sourcePath string) error {
	src, err := openCorpus(sourcePath)
	if err != nil {
		idx.logger.LogCompile(sourcePath, 0, err)
		return err
	}
	defer src.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(idx.compileWorkers)

	var done atomic.Int64

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var position uint64
	for scanner.Scan() {
		// Stop dispatching once a worker has failed.
		if ctx.Err() != nil {
			break
		}

		position++
		id := position
		line := scanner.Text()

		g.Go(func() error {
			if err := idx.insertLine(line, id); err != nil {
				return err
			}
			if idx.compileProgress != nil {
				idx.compileProgress(done.Add(1))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		idx.logger.LogCompile(sourcePath, done.Load(), err)
		return err
	}
	if err := scanner.Err(); err != nil {
		err = fmt.Errorf("read corpus %s: %w", sourcePath, err)
		idx.logger.LogCompile(sourcePath, done.Load(), err)
		return err
	}

	idx.logger.LogCompile(sourcePath, done.Load(), nil)
	return nil
}

// insertLine splits a line on single spaces into a term and weight tokens,
// parses the weights and inserts the record under the line's position.
func (idx *Index) insertLine(line string, id uint64) error {
	fields := strings.Split(line, " ")
	term := fields[0]
	tokens := fields[1:]

	v := make(vector.Vector, 0, len(tokens))
	for _, tok := range tokens {
		w, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return &ParseError{Line: int(id), Token: tok}
		}
		v = append(v, float32(w))
	}

	return idx.Insert(term, id, v)
}
