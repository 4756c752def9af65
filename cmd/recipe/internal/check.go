package internal

import (
	"fmt"
	"io"

	"github.com/mavlink/mavsdk-recipe/formula"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the build configuration",
	Long: `Check normalizes the options of the profile and validates the configuration
against the minimum C++ standard and the compiler version policy.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	return check(cmd.OutOrStdout(), p.Platform(), p.OptionSet(), cfg.UnknownCompilerPolicy())
}

func check(w io.Writer, platform formula.Platform, opts formula.Options, policy formula.UnknownCompilerPolicy) error {
	opts = formula.NormalizeOptions(opts, platform)
	if err := validate(platform, policy); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %s is valid\n", formula.PackageMetadata().Ref(), describe(platform, opts))
	return nil
}
