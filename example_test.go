package embedix_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hupe1980/embedix"
)

func Example() {
	dir, _ := os.MkdirTemp("", "embedix")
	defer os.RemoveAll(dir)

	source := filepath.Join(dir, "corpus.txt")
	_ = os.WriteFile(source, []byte("cat 1.0 0.0\ndog 0.0 1.0\n"), 0o600)

	idx, err := embedix.Create(filepath.Join(dir, "index"), "glove", 4, 2, 100)
	if err != nil {
		panic(err)
	}
	defer idx.Close()

	if err := idx.Compile(context.Background(), source); err != nil {
		panic(err)
	}

	id, vec, _ := idx.Lookup("cat")
	fmt.Println(id, vec)

	term, ok, _ := idx.Fetch(2)
	fmt.Println(term, ok)

	_, zero, _ := idx.Lookup("fox")
	fmt.Println(zero)

	// Output:
	// 1 [1 0]
	// dog true
	// [0 0]
}
