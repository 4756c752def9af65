package formula

// Metadata holds the static description of the package.
type Metadata struct {
	Name        string
	Version     string
	License     string
	Author      string
	Description string
	URL         string
	Homepage    string

	Settings       []string
	DefaultOptions Options

	// ExportsSources are glob patterns of the files that make up the
	// source package.
	ExportsSources []string
	// PackageFiles are copied into the package in addition to the
	// installed build products.
	PackageFiles []CopyPattern
}

// CopyPattern copies files matching Pattern from the source folder into Dst,
// relative to the package folder.
type CopyPattern struct {
	Pattern string
	Dst     string
}

// Ref returns the package reference "name/version".
func (m Metadata) Ref() string {
	return m.Name + "/" + m.Version
}

// PackageMetadata returns the package description.
func PackageMetadata() Metadata {
	return Metadata{
		Name:        "mavsdk",
		Version:     "0.0.1",
		License:     "BSD 3-Clause",
		Author:      "Martin Kvisvik Larsen",
		Description: "A cpptemp for C++ projects.",
		URL:         "https://github.com/mavlink/MAVSDK",
		Homepage:    "https://github.com/mavlink/MAVSDK",

		Settings:       []string{"os", "compiler", "build_type", "arch"},
		DefaultOptions: DefaultOptions(),

		ExportsSources: []string{
			"CMakeLists.txt",
			"examples/*",
			"proto/*",
			"src/*",
			"templates/*",
			"tools/*",
		},
		PackageFiles: []CopyPattern{
			{Pattern: "LICENSE*", Dst: "licenses"},
		},
	}
}

// Property names understood by downstream generators.
const (
	PropCMakeFileName   = "cmake_file_name"
	PropCMakeTargetName = "cmake_target_name"
	PropPkgConfigName   = "pkg_config_name"
)

// Component describes one library exported to consumers.
type Component struct {
	Libs       []string          `json:"libs"`
	Requires   []string          `json:"requires"`
	Properties map[string]string `json:"properties"`
}

// PackageInfo is what consumers of the built package link against.
type PackageInfo struct {
	Ref        string               `json:"ref"`
	Components map[string]Component `json:"components"`
}

// PackageInfoOf returns the consumer information of the package.
// Only jsoncpp and tinyxml2 are public; openssl, protobuf and grpc are
// consumed at build time only.
func PackageInfoOf() PackageInfo {
	return PackageInfo{
		Ref: PackageMetadata().Ref(),
		Components: map[string]Component{
			"mavsdk": {
				Libs:     []string{"mavsdk"},
				Requires: []string{"JsonCpp::JsonCpp", "tinyxml2::tinyxml2"},
				Properties: map[string]string{
					PropCMakeFileName:   "cpptemp",
					PropCMakeTargetName: "cpptemp::cpptemp",
					PropPkgConfigName:   "cpptemp-config.cmake",
				},
			},
		},
	}
}

// Layout describes where sources, build trees and generated files live,
// relative to the recipe root.
type Layout struct {
	Source     string
	Build      string
	Generators string
}

// LayoutOf returns the folder layout for platform. Single-config builds go
// to build/<build_type>.
func LayoutOf(platform Platform) Layout {
	build := "build"
	if platform.BuildType != "" {
		build += "/" + platform.BuildType
	}
	return Layout{
		Source:     ".",
		Build:      build,
		Generators: build + "/generators",
	}
}
