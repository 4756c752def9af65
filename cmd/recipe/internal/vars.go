package internal

import (
	"fmt"
	"io"

	"github.com/mavlink/mavsdk-recipe/formula"
	"github.com/spf13/cobra"
)

var varsCMake bool

var varsCmd = &cobra.Command{
	Use:   "vars",
	Short: "Print the CMake build variables",
	Long: `Vars validates the configuration and prints the build variables passed to
CMake, one KEY=VALUE per line. With --cmake they are printed as -D arguments.`,
	Args: cobra.NoArgs,
	RunE: runVars,
}

func init() {
	varsCmd.Flags().BoolVar(&varsCMake, "cmake", false, "Print as CMake -D arguments")
	rootCmd.AddCommand(varsCmd)
}

func runVars(cmd *cobra.Command, args []string) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	platform := p.Platform()
	opts := formula.NormalizeOptions(p.OptionSet(), platform)
	if err := validate(platform, cfg.UnknownCompilerPolicy()); err != nil {
		return err
	}
	printVars(cmd.OutOrStdout(), formula.GenerateBuildVariables(opts), varsCMake)
	return nil
}

func printVars(w io.Writer, vars formula.BuildVariables, cmake bool) {
	for _, k := range vars.Keys() {
		if cmake {
			fmt.Fprintf(w, "-D%s:BOOL=%s\n", k, vars[k])
			continue
		}
		fmt.Fprintf(w, "%s=%s\n", k, vars[k])
	}
}
