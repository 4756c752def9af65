package versions

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mavlink/mavsdk-recipe/pkgs/mod/module"
)

func TestParse_WithData(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    *Versions
		wantErr bool
	}{
		{
			name: "basic version file",
			data: `{
				"path": "mavsdk",
				"version": "0.0.1",
				"requires": [
					{"path": "jsoncpp", "min": "1.9.5"},
					{"path": "tinyxml2", "min": "9.0.0"}
				],
				"tool_requires": [{"path": "cmake", "min": "3.19"}]
			}`,
			want: &Versions{
				Path:    "mavsdk",
				Version: "0.0.1",
				Requires: []Dependency{
					{Path: "jsoncpp", Version: "1.9.5"},
					{Path: "tinyxml2", Version: "9.0.0"},
				},
				ToolRequires: []Dependency{{Path: "cmake", Version: "3.19"}},
			},
		},
		{
			name: "no requires field",
			data: `{"path": "mavsdk"}`,
			want: &Versions{Path: "mavsdk"},
		},
		{
			name:    "invalid json",
			data:    `{"path": invalid}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse("", []byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParse_FromFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "versions.json")
	if err := os.WriteFile(file, []byte(`{"path": "mavsdk", "requires": [{"path": "grpc", "min": "1.54.3"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Parse(file, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Requires) != 1 || got.Requires[0].Path != "grpc" {
		t.Fatalf("Parse() = %+v", got)
	}

	if _, err := Parse(filepath.Join(t.TempDir(), "missing.json"), nil); !os.IsNotExist(err) {
		t.Fatalf("Parse(missing) error = %v, want not exist", err)
	}
}

func TestWriteIsReproducible(t *testing.T) {
	main := module.Version{Path: "mavsdk", Version: "0.0.1"}
	reqs := []module.Version{
		{Path: "jsoncpp", Version: "1.9.5"},
		{Path: "openssl", Version: "3.1.3"},
		{Path: "grpc", Version: "1.54.3"},
	}
	tools := []module.Version{{Path: "cmake", Version: "3.19"}}

	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")
	if err := New(main, reqs, tools).Write(a); err != nil {
		t.Fatal(err)
	}
	if err := New(main, reqs, tools).Write(b); err != nil {
		t.Fatal(err)
	}
	da, _ := os.ReadFile(a)
	db, _ := os.ReadFile(b)
	if string(da) != string(db) {
		t.Fatalf("locks differ:\n%s\n%s", da, db)
	}

	got, err := Parse(a, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(New(main, reqs, tools)) {
		t.Fatalf("parsed lock %+v does not equal written lock", got)
	}
	if got.Requires[2].Path != "grpc" {
		t.Fatalf("order not kept: %+v", got.Requires)
	}
}

func TestEqual(t *testing.T) {
	main := module.Version{Path: "mavsdk", Version: "0.0.1"}
	a := New(main, []module.Version{{Path: "jsoncpp", Version: "1.9.5"}, {Path: "grpc", Version: "1.54.3"}}, nil)
	swapped := New(main, []module.Version{{Path: "grpc", Version: "1.54.3"}, {Path: "jsoncpp", Version: "1.9.5"}}, nil)
	extra := New(main, []module.Version{{Path: "jsoncpp", Version: "1.9.5"}, {Path: "grpc", Version: "1.54.3"}, {Path: "re2", Version: "20230301"}}, nil)

	if a.Equal(swapped) {
		t.Error("locks with different order are equal")
	}
	if a.Equal(extra) {
		t.Error("locks with an extra requirement are equal")
	}
	if !a.Equal(a) {
		t.Error("lock is not equal to itself")
	}
}
