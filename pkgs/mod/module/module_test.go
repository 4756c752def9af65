package module

import (
	"path/filepath"
	"testing"
)

func TestParseArg(t *testing.T) {
	tests := []struct {
		arg         string
		wantPath    string
		wantVersion string
	}{
		{"jsoncpp@1.9.5", "jsoncpp", "1.9.5"},
		{"grpc@v1.54.3", "grpc", "v1.54.3"},
		{"mavsdk", "mavsdk", ""},
		{"org/mavsdk@latest", "org/mavsdk", "latest"},
		{"multiple@at@signs", "multiple@at", "signs"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got := ParseArg(tt.arg)
			if got.Path != tt.wantPath {
				t.Errorf("ParseArg(%q).Path = %q, want %q", tt.arg, got.Path, tt.wantPath)
			}
			if got.Version != tt.wantVersion {
				t.Errorf("ParseArg(%q).Version = %q, want %q", tt.arg, got.Version, tt.wantVersion)
			}
		})
	}
}

func TestVersionString(t *testing.T) {
	if got := (Version{Path: "openssl", Version: "3.1.3"}).String(); got != "openssl@3.1.3" {
		t.Fatalf("String() = %q, want %q", got, "openssl@3.1.3")
	}
	if got := (Version{Path: "openssl"}).String(); got != "openssl" {
		t.Fatalf("String() = %q, want %q", got, "openssl")
	}
}

func TestEscapePath(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		wantEscaped string
		wantErr     bool
	}{
		{"simple", "mavsdk", "mavsdk", false},
		{"nested", "owner/repo", filepath.Join("owner", "repo"), false},
		{"empty", "", "", true},
		{"parent escape", "../etc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EscapePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EscapePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.wantEscaped {
				t.Errorf("EscapePath(%q) = %q, want %q", tt.path, got, tt.wantEscaped)
			}
		})
	}
}
