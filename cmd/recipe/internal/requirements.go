package internal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mavlink/mavsdk-recipe/formula"
	"github.com/mavlink/mavsdk-recipe/pkgs/mod/module"
	"github.com/mavlink/mavsdk-recipe/pkgs/mod/versions"
	"github.com/spf13/cobra"
)

var (
	reqLock     bool
	reqCheck    bool
	reqLockFile string
	reqDisabled bool
	reqSatisfy  []string
)

var requirementsCmd = &cobra.Command{
	Use:     "requirements",
	Aliases: []string{"reqs"},
	Short:   "Print the planned requirements",
	Long: `Requirements prints the libraries and tools the package requires, in plan order.
With --lock the plan is written to versions.json; with --check an existing
versions.json is compared against the plan.

--satisfies checks versions against the plan: "openssl@3.1.4" must meet the
planned lower bound of openssl, and a constraint like "openssl/[>=3.0.0]" must
be met by it.`,
	Args: cobra.NoArgs,
	RunE: runRequirements,
}

func init() {
	f := requirementsCmd.Flags()
	f.BoolVar(&reqLock, "lock", false, "Write the plan to the lock file")
	f.BoolVar(&reqCheck, "check", false, "Fail if the lock file differs from the plan")
	f.StringVar(&reqLockFile, "file", "versions.json", "Lock file path")
	f.BoolVar(&reqDisabled, "disabled", false, "Also print disabled candidates")
	f.StringArrayVar(&reqSatisfy, "satisfies", nil, "Check name@version or name/[>=min] against the plan")
	requirementsCmd.MarkFlagsMutuallyExclusive("lock", "check", "satisfies")
	rootCmd.AddCommand(requirementsCmd)
}

func runRequirements(cmd *cobra.Command, args []string) error {
	switch {
	case reqLock:
		if err := lockFile().Write(reqLockFile); err != nil {
			return fmt.Errorf("failed to write %s: %w", reqLockFile, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", reqLockFile)
		return nil
	case reqCheck:
		return checkLockFile(reqLockFile)
	case len(reqSatisfy) > 0:
		return satisfies(cmd.OutOrStdout(), reqSatisfy)
	}
	printRequirements(cmd.OutOrStdout(), reqDisabled)
	return nil
}

func printRequirements(w io.Writer, disabled bool) {
	fmt.Fprintln(w, "requires:")
	for _, r := range formula.PlanRequirements() {
		fmt.Fprintf(w, "  %s\n", r)
	}
	fmt.Fprintln(w, "tool_requires:")
	for _, r := range formula.ToolRequirements() {
		fmt.Fprintf(w, "  %s\n", r)
	}
	if disabled {
		fmt.Fprintln(w, "disabled:")
		for _, r := range formula.DisabledRequirements() {
			fmt.Fprintf(w, "  %s\n", r)
		}
	}
}

// lockFile returns the lock content of the current plan.
func lockFile() *versions.Versions {
	meta := formula.PackageMetadata()
	conv := func(reqs []formula.Requirement) []module.Version {
		vers := make([]module.Version, 0, len(reqs))
		for _, r := range reqs {
			vers = append(vers, r.Version())
		}
		return vers
	}
	return versions.New(
		module.Version{Path: meta.Name, Version: meta.Version},
		conv(formula.PlanRequirements()),
		conv(formula.ToolRequirements()),
	)
}

func checkLockFile(file string) error {
	locked, err := versions.Parse(file, nil)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s not found, run 'recipe requirements --lock' first", file)
		}
		return err
	}
	if !locked.Equal(lockFile()) {
		return fmt.Errorf("%s is out of date, run 'recipe requirements --lock'", file)
	}
	return nil
}

// planned returns the planned requirement or tool requirement named name.
func planned(name string) (formula.Requirement, bool) {
	for _, r := range append(formula.PlanRequirements(), formula.ToolRequirements()...) {
		if r.Name == name {
			return r, true
		}
	}
	return formula.Requirement{}, false
}

// satisfies checks each arg against the plan. "name@version" is a concrete
// version that must meet the planned bound; anything else is parsed as a
// requirement whose bound the planned minimum must meet.
func satisfies(w io.Writer, args []string) error {
	var failed []string
	for _, arg := range args {
		var name string
		var check func(formula.Requirement) bool
		if strings.Contains(arg, "@") {
			v := module.ParseArg(arg)
			if v.Version == "" {
				return fmt.Errorf("invalid version %q: want name@version", arg)
			}
			name = v.Path
			check = func(r formula.Requirement) bool { return r.Allows(v.Version) }
		} else {
			c, err := formula.ParseRequirement(arg)
			if err != nil {
				return err
			}
			name = c.Name
			check = func(r formula.Requirement) bool { return c.Allows(r.Min) }
		}

		r, ok := planned(name)
		if !ok {
			return fmt.Errorf("%s is not a requirement of %s", name, formula.PackageMetadata().Ref())
		}
		if !check(r) {
			fmt.Fprintf(w, "%s: conflicts with %s\n", arg, r)
			failed = append(failed, arg)
			continue
		}
		fmt.Fprintf(w, "%s: ok (%s)\n", arg, r)
	}
	if len(failed) > 0 {
		return fmt.Errorf("not satisfied: %s", strings.Join(failed, ", "))
	}
	return nil
}
