package internal

import (
	"fmt"
	"io"

	"github.com/mavlink/mavsdk-recipe/formula"
	"github.com/spf13/cobra"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "List the distinct option combinations of the platform",
	Long: `Matrix prints every option combination that remains distinct after
normalization on the profile platform, with its build key.`,
	Args: cobra.NoArgs,
	RunE: runMatrix,
}

func init() {
	rootCmd.AddCommand(matrixCmd)
}

func runMatrix(cmd *cobra.Command, args []string) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	printMatrix(cmd.OutOrStdout(), p.Platform())
	return nil
}

func printMatrix(w io.Writer, platform formula.Platform) {
	full := formula.OptionsMatrix(platform)
	space := formula.OptionSpace(platform)
	fmt.Fprintf(w, "%s: %d of %d combinations\n", platform, len(space), full.CombinationCount())
	for _, opts := range space {
		m := formula.MatrixOf(platform, opts)
		fmt.Fprintf(w, "  %-20s %s\n", opts, m.String())
	}
}
