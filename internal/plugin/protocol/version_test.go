package protocol

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		version     string
		expectError bool
		major       int
		minor       int
		patch       int
	}{
		{"0.1.0", false, 0, 1, 0},
		{"1.0.0", false, 1, 0, 0},
		{"10.99.42", false, 10, 99, 42},
		{"invalid", true, 0, 0, 0},
		{"1", true, 0, 0, 0},
		{"1.2", true, 0, 0, 0},
		{"1.x.0", true, 0, 0, 0},
		{"1.-2.0", true, 0, 0, 0},
	}

	for _, tt := range tests {
		v, err := Parse(tt.version)
		if tt.expectError {
			if err == nil {
				t.Errorf("Parse(%q) expected error but got none", tt.version)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tt.version, err)
		}
		if v.Major != tt.major || v.Minor != tt.minor || v.Patch != tt.patch {
			t.Errorf("Parse(%q) = %s, want %d.%d.%d", tt.version, v, tt.major, tt.minor, tt.patch)
		}
	}
}

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		pluginVersion string
		compatible    bool
		errorContains string
	}{
		{"0.1.0", true, ""},
		{"0.1.7", true, ""},
		{"0.4.0", true, ""},
		{"0.0.9", false, "too old"},
		{"1.0.0", false, "incompatible major version"},
		{"bogus", false, "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.pluginVersion, func(t *testing.T) {
			ok, err := IsCompatible(tt.pluginVersion)
			if ok != tt.compatible {
				t.Errorf("IsCompatible(%q) = %v, want %v", tt.pluginVersion, ok, tt.compatible)
			}
			if tt.errorContains == "" {
				if err != nil {
					t.Errorf("IsCompatible(%q) unexpected error: %v", tt.pluginVersion, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("IsCompatible(%q) error = %v, want containing %q", tt.pluginVersion, err, tt.errorContains)
			}
		})
	}
}

func TestVersionLess(t *testing.T) {
	a := Version{0, 1, 9}
	b := Version{0, 2, 0}
	if !a.Less(b) || b.Less(a) || a.Less(a) {
		t.Errorf("Less ordering wrong for %s and %s", a, b)
	}
}
