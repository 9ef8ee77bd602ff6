package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/embedix"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print index metadata and term count",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	idx, err := embedix.Open(flagPath, openOptions(true)...)
	if err != nil {
		return err
	}
	defer idx.Close()

	n, err := idx.Len()
	if err != nil {
		return err
	}

	fmt.Printf("Name:        %s\n", idx.Name())
	fmt.Printf("Version:     %d\n", idx.Version())
	fmt.Printf("Partitions:  %d\n", idx.Partitions())
	fmt.Printf("Vector size: %d\n", idx.VectorSize())
	fmt.Printf("Terms:       %d\n", n)
	return nil
}
