package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mavlink/mavsdk-recipe/formula"
	"github.com/spf13/cobra"
)

var (
	infoJSON    bool
	infoSources bool
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the package metadata",
	Long: `Info prints the static package description. With --json it prints the
information exported to consumers of the package. With --sources it lists the
files of build.source_dir that are exported with the recipe.`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Print the consumer package info as JSON")
	infoCmd.Flags().BoolVar(&infoSources, "sources", false, "List the exported source files")
	infoCmd.MarkFlagsMutuallyExclusive("json", "sources")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	if infoSources {
		return printSources(cmd.OutOrStdout(), cfg.Build.SourceDir)
	}
	if infoJSON {
		return printPackageInfo(cmd.OutOrStdout(), formula.PackageInfoOf())
	}
	printMetadata(cmd.OutOrStdout(), formula.PackageMetadata())
	return nil
}

func printMetadata(w io.Writer, m formula.Metadata) {
	fmt.Fprintf(w, "Name:        %s\n", m.Name)
	fmt.Fprintf(w, "Version:     %s\n", m.Version)
	fmt.Fprintf(w, "License:     %s\n", m.License)
	fmt.Fprintf(w, "Author:      %s\n", m.Author)
	fmt.Fprintf(w, "Description: %s\n", m.Description)
	fmt.Fprintf(w, "URL:         %s\n", m.URL)
	fmt.Fprintf(w, "Homepage:    %s\n", m.Homepage)
	fmt.Fprintf(w, "Settings:    %s\n", strings.Join(m.Settings, ", "))
	fmt.Fprintf(w, "Options:     %s\n", m.DefaultOptions)
	fmt.Fprintf(w, "Sources:     %s\n", strings.Join(m.ExportsSources, ", "))
	fmt.Fprintln(w, "Requires:")
	for _, r := range formula.PlanRequirements() {
		fmt.Fprintf(w, "  %s\n", r)
	}
}

func printPackageInfo(w io.Writer, info formula.PackageInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}

func printSources(w io.Writer, dir string) error {
	proj := &formula.Project{DirFS: os.DirFS(dir)}
	files, err := proj.ExportedSources()
	if err != nil {
		return fmt.Errorf("failed to list sources of %s: %w", dir, err)
	}
	for _, name := range files {
		fmt.Fprintln(w, name)
	}
	return nil
}
