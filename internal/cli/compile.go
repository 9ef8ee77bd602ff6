package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/hupe1980/embedix"
)

var compileCmd = &cobra.Command{
	Use:   "compile <source>",
	Short: "Ingest a corpus of 'term weight weight ...' lines",
	Long: `Compile reads the source file line by line and inserts one record per
line; the 1-based line number becomes the record id. Sources ending in
.gz, .zst or .lz4 are decompressed transparently.

One malformed line fails the whole run.

Examples:
  embedix compile -p ./data glove.300d.txt
  embedix compile -p ./data glove.300d.txt.gz`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Compiling"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("lines"),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	opts := append(openOptions(false), embedix.WithCompileProgress(func(done int64) {
		bar.Set64(done)
	}))

	idx, err := embedix.Open(flagPath, opts...)
	if err != nil {
		return err
	}
	defer idx.Close()

	if err := idx.Compile(cmd.Context(), args[0]); err != nil {
		return err
	}

	bar.Finish()

	n, err := idx.Len()
	if err != nil {
		return err
	}
	fmt.Printf("Index %q now holds %d terms\n", idx.Name(), n)
	return nil
}
