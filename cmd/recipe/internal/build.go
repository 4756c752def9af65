package internal

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mavlink/mavsdk-recipe/internal/build"
	"github.com/spf13/cobra"
)

var (
	buildForce  bool
	buildOutput string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build and package MAVSDK",
	Long: `Build validates the configuration, then configures, builds and installs
MAVSDK with CMake into the package folder and writes the package info.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVarP(&buildForce, "force", "f", false, "Rebuild even if the build cache is up to date")
	buildCmd.Flags().StringVar(&buildOutput, "output", "", "Package folder (overrides build.package_dir)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	if buildOutput != "" {
		cfg.Build.PackageDir = buildOutput
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	builder, err := build.NewBuilder(build.Options{
		Config: cfg,
		Force:  buildForce,
	})
	if err != nil {
		return fmt.Errorf("failed to create builder: %w", err)
	}
	res, err := builder.Build(ctx, p.Platform(), p.OptionSet())
	if err != nil {
		return err
	}

	status := "built"
	if res.Cached {
		status = "up to date"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", describe(res.Platform, res.Options), status, res.PackageDir)
	return nil
}
