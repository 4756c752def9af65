package internal

import (
	"fmt"

	"github.com/mavlink/mavsdk-recipe/formula"
	"github.com/mavlink/mavsdk-recipe/internal/config"
	"github.com/mavlink/mavsdk-recipe/internal/profile"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
)

var (
	profilePath string
	configPath  string
	settingArgs []string
	optionArgs  []string
	verbose     bool
)

// cfg is loaded before any subcommand runs.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "recipe",
	Short: "recipe packages the MAVSDK C++ library",
	Long: `recipe validates a build configuration for MAVSDK, plans its requirements,
generates the CMake build variables and drives the CMake build and packaging.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&profilePath, "profile", "", "YAML profile with settings and options (default: host profile)")
	pf.StringVar(&configPath, "config", config.DefaultFile, "Tool configuration file")
	pf.StringArrayVarP(&settingArgs, "setting", "s", nil, "Override a setting, e.g. -s compiler=gcc")
	pf.StringArrayVarP(&optionArgs, "option", "o", nil, "Override an option, e.g. -o shared=True")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = c
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	if verbose {
		level = log.Ldebug
	}
	log.SetOutputLevel(level)
	return nil
}

// loadProfile returns the validated profile selected by the flags.
func loadProfile() (*profile.Profile, error) {
	p := profile.Host()
	if profilePath != "" {
		var err error
		if p, err = profile.Load(profilePath); err != nil {
			return nil, err
		}
	}
	if err := p.Apply(settingArgs, optionArgs); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	log.Debugf("profile: %s %s", p.Settings, p.OptionSet())
	return p, nil
}

// validate validates platform and warns when its compiler passed only
// because unknown compilers are allowed.
func validate(platform formula.Platform, policy formula.UnknownCompilerPolicy) error {
	if err := formula.Validate(platform, formula.MinCppStd, policy); err != nil {
		return err
	}
	if !formula.KnownCompiler(platform.Compiler) {
		log.Warnf("no minimum version known for compiler %q, assuming C++%s support", platform.Compiler, formula.MinCppStd)
	}
	return nil
}

func describe(platform formula.Platform, opts formula.Options) string {
	return fmt.Sprintf("%s (%s)", platform, opts)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
