// Package profile loads the host-supplied build configuration: the target
// platform settings and the package options.
package profile

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mavlink/mavsdk-recipe/formula"
	"gopkg.in/yaml.v3"
)

// Profile is the YAML form of a build configuration:
//
//	settings:
//	  os: Linux
//	  arch: x86_64
//	  compiler: gcc
//	  compiler.version: "11"
//	  compiler.cppstd: "17"
//	  build_type: Release
//	options:
//	  shared: false
//	  fPIC: true
type Profile struct {
	Settings formula.Platform `yaml:"settings"`
	Options  Options          `yaml:"options"`
}

// Options holds the option values of a profile. Unset values fall back to
// the package defaults.
type Options struct {
	Shared *bool    `yaml:"shared"`
	FPIC   *OptBool `yaml:"fPIC"`
}

// OptBool is a profile option that may be set to None.
type OptBool struct {
	formula.OptBool
}

func (o *OptBool) UnmarshalYAML(node *yaml.Node) error {
	v, err := formula.ParseOptBool(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid option value %q", node.Line, node.Value)
	}
	o.OptBool = v
	return nil
}

var osNames = map[string]string{
	"linux":   formula.OSLinux,
	"darwin":  formula.OSMacos,
	"windows": formula.OSWindows,
	"freebsd": "FreeBSD",
}

var archNames = map[string]string{
	"amd64": "x86_64",
	"386":   "x86",
	"arm64": "armv8",
	"arm":   "armv7",
}

// Host returns a profile for the running machine. The compiler is left
// unset because it cannot be derived from the Go runtime.
func Host() *Profile {
	return &Profile{
		Settings: formula.Platform{
			OS:        hostName(osNames, runtime.GOOS),
			Arch:      hostName(archNames, runtime.GOARCH),
			BuildType: "Release",
		},
	}
}

func hostName(names map[string]string, goName string) string {
	if name, ok := names[goName]; ok {
		return name
	}
	return goName
}

// Load reads a YAML profile from path on top of the host profile.
func Load(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p := Host()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return p, nil
}

// Apply overrides settings and options from "key=value" pairs, as given
// with -s and -o on the command line.
func (p *Profile) Apply(settings, options []string) error {
	for _, kv := range settings {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid setting %q: want key=value", kv)
		}
		if err := p.Settings.Set(strings.TrimSpace(k), strings.TrimSpace(v)); err != nil {
			return err
		}
	}
	for _, kv := range options {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid option %q: want key=value", kv)
		}
		v = strings.TrimSpace(v)
		switch strings.TrimSpace(k) {
		case formula.OptionShared:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid option %q: %w", kv, err)
			}
			p.Options.Shared = &b
		case formula.OptionFPIC:
			ob, err := formula.ParseOptBool(v)
			if err != nil {
				return fmt.Errorf("invalid option %q: %w", kv, err)
			}
			p.Options.FPIC = &OptBool{ob}
		default:
			return fmt.Errorf("unknown option %q", k)
		}
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that every required setting is present and well formed.
func (p *Profile) Validate() error {
	err := validate.Struct(p.Settings)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("setting %s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("setting %s=%v must be one of [%s]", fe.Field(), fe.Value(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("setting %s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid profile: %s", strings.Join(msgs, "; "))
}

// Platform returns the platform descriptor of the profile.
func (p *Profile) Platform() formula.Platform {
	return p.Settings
}

// OptionSet returns the raw option set of the profile, filling unset
// options from the package defaults.
func (p *Profile) OptionSet() formula.Options {
	opts := formula.DefaultOptions()
	if p.Options.Shared != nil {
		opts.Shared = *p.Options.Shared
	}
	if p.Options.FPIC != nil {
		opts.FPIC = p.Options.FPIC.OptBool
	}
	return opts
}
