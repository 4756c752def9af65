package formula

import (
	"reflect"
	"testing"
)

func TestPackageMetadata(t *testing.T) {
	m := PackageMetadata()
	if m.Ref() != "mavsdk/0.0.1" {
		t.Fatalf("Ref() = %q", m.Ref())
	}
	if m.License != "BSD 3-Clause" {
		t.Errorf("License = %q", m.License)
	}
	wantSources := []string{"CMakeLists.txt", "examples/*", "proto/*", "src/*", "templates/*", "tools/*"}
	if !reflect.DeepEqual(m.ExportsSources, wantSources) {
		t.Errorf("ExportsSources = %v, want %v", m.ExportsSources, wantSources)
	}
	if len(m.PackageFiles) != 1 || m.PackageFiles[0] != (CopyPattern{Pattern: "LICENSE*", Dst: "licenses"}) {
		t.Errorf("PackageFiles = %v", m.PackageFiles)
	}
	if m.DefaultOptions != DefaultOptions() {
		t.Errorf("DefaultOptions = %+v", m.DefaultOptions)
	}
	if !reflect.DeepEqual(PackageMetadata(), m) {
		t.Error("PackageMetadata() is not stable")
	}
}

func TestPackageInfoOf(t *testing.T) {
	info := PackageInfoOf()
	c, ok := info.Components["mavsdk"]
	if !ok {
		t.Fatalf("no mavsdk component in %v", info.Components)
	}
	if !reflect.DeepEqual(c.Libs, []string{"mavsdk"}) {
		t.Errorf("Libs = %v", c.Libs)
	}
	if !reflect.DeepEqual(c.Requires, []string{"JsonCpp::JsonCpp", "tinyxml2::tinyxml2"}) {
		t.Errorf("Requires = %v", c.Requires)
	}
	if c.Properties[PropCMakeFileName] != "cpptemp" || c.Properties[PropCMakeTargetName] != "cpptemp::cpptemp" {
		t.Errorf("Properties = %v", c.Properties)
	}
}

// openssl, protobuf and grpc are needed to build but are not exported.
func TestPackageInfoPublicRequiresSubsetOfPlan(t *testing.T) {
	public := map[string]string{
		"JsonCpp::JsonCpp":   "jsoncpp",
		"tinyxml2::tinyxml2": "tinyxml2",
	}
	planned := map[string]bool{}
	for _, r := range PlanRequirements() {
		planned[r.Name] = true
	}
	exported := map[string]bool{}
	for _, target := range PackageInfoOf().Components["mavsdk"].Requires {
		name, ok := public[target]
		if !ok {
			t.Fatalf("unexpected public requirement %q", target)
		}
		if !planned[name] {
			t.Fatalf("public requirement %q is not planned", name)
		}
		exported[name] = true
	}
	for _, buildOnly := range []string{"openssl", "protobuf", "grpc"} {
		if exported[buildOnly] {
			t.Errorf("%s is exported to consumers", buildOnly)
		}
		if !planned[buildOnly] {
			t.Errorf("%s is not planned", buildOnly)
		}
	}
}

func TestLayoutOf(t *testing.T) {
	got := LayoutOf(linuxGCC9)
	want := Layout{Source: ".", Build: "build/Release", Generators: "build/Release/generators"}
	if got != want {
		t.Fatalf("LayoutOf() = %+v, want %+v", got, want)
	}
	if got := LayoutOf(Platform{}); got.Build != "build" {
		t.Fatalf("LayoutOf(empty).Build = %q", got.Build)
	}
}
