package buildsys

import "context"

// BuildSystem captures the capabilities of a build helper the package
// lifecycle relies on. Implementations add their own extras.
type BuildSystem interface {
	// Use makes an installed dependency rooted at root visible to the build.
	Use(root string)

	// Env sets an environment variable of the build processes.
	Env(key, val string)
	// ApplyVariables defines the build variables of the configuration.
	ApplyVariables(vars map[string]string)

	// Lifecycle.
	Configure(ctx context.Context, args ...string) error
	Build(ctx context.Context, args ...string) error
	Install(ctx context.Context, args ...string) error

	// Where artifacts land.
	OutputDir() string
}
