package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/embedix"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <term>",
	Short: "Resolve a term to its (id, vector)",
	Long: `Lookup prints the id and vector stored for a term. An unknown term
yields id 0 and the all-zero vector.`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <id>",
	Short: "Resolve an id back to its term",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(fetchCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	idx, err := embedix.Open(flagPath, openOptions(true)...)
	if err != nil {
		return err
	}
	defer idx.Close()

	id, vec, err := idx.Lookup(args[0])
	if err != nil {
		return err
	}

	weights := make([]string, len(vec))
	for i, w := range vec {
		weights[i] = strconv.FormatFloat(float64(w), 'g', -1, 32)
	}
	fmt.Printf("%d\t%s\n", id, strings.Join(weights, " "))
	return nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", args[0], err)
	}

	idx, err := embedix.Open(flagPath, openOptions(true)...)
	if err != nil {
		return err
	}
	defer idx.Close()

	term, ok, err := idx.Fetch(id)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("absent")
		return nil
	}
	fmt.Println(term)
	return nil
}
