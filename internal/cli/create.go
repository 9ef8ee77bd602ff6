package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/embedix"
)

var (
	createName       string
	createPartitions int
	createVectorSize int
	createSizeHint   int
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new empty index",
	Long: `Create allocates the header and partition tables for a new index under
the target directory. Partition count and vector size are fixed for the
index's lifetime.

Examples:
  embedix create -p ./data --name glove --partitions 8 --vector-size 300
  embedix create -p ./data --name glove --partitions 8 --vector-size 300 --size-hint 400000`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createName, "name", "", "logical index name (required)")
	createCmd.Flags().IntVar(&createPartitions, "partitions", 8, "number of partition tables")
	createCmd.Flags().IntVar(&createVectorSize, "vector-size", 0, "vector dimensionality (required)")
	createCmd.Flags().IntVar(&createSizeHint, "size-hint", 0, "expected number of terms")
	createCmd.MarkFlagRequired("name")
	createCmd.MarkFlagRequired("vector-size")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	idx, err := embedix.Create(flagPath, createName, createPartitions, createVectorSize, createSizeHint, openOptions(false)...)
	if err != nil {
		return err
	}
	defer idx.Close()

	fmt.Printf("Created index %q at %s (%d partitions, %d dimensions)\n",
		idx.Name(), flagPath, idx.Partitions(), idx.VectorSize())
	return nil
}
