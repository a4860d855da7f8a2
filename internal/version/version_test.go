package version

import (
	"errors"
	"testing"
)

func TestIsNewer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
	}{
		{
			name:    "same version",
			current: "1.0.0",
			latest:  "1.0.0",
			want:    false,
		},
		{
			name:    "same version with v prefix on current",
			current: "v1.0.0",
			latest:  "1.0.0",
			want:    false,
		},
		{
			name:    "same version with v prefix on latest",
			current: "1.0.0",
			latest:  "v1.0.0",
			want:    false,
		},
		{
			name:    "same version with v prefix on both",
			current: "v1.0.0",
			latest:  "v1.0.0",
			want:    false,
		},
		{
			name:    "newer version available",
			current: "1.0.0",
			latest:  "1.1.0",
			want:    true,
		},
		{
			name:    "major version bump",
			current: "1.0.0",
			latest:  "2.0.0",
			want:    true,
		},
		{
			name:    "patch version bump",
			current: "1.0.0",
			latest:  "1.0.1",
			want:    true,
		},
		{
			name:    "devel version never outdated",
			current: "devel",
			latest:  "1.0.0",
			want:    false,
		},
		{
			name:    "unknown version never outdated",
			current: "unknown",
			latest:  "1.0.0",
			want:    false,
		},
		{
			name:    "dirty version never outdated",
			current: "1.0.0-dirty",
			latest:  "1.1.0",
			want:    false,
		},
		{
			name:    "empty version never outdated",
			current: "",
			latest:  "1.0.0",
			want:    false,
		},
		{
			name:    "prerelease version never outdated",
			current: "1.0.0-0.abc123",
			latest:  "1.1.0",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsNewer(tt.current, tt.latest); got != tt.want {
				t.Errorf("IsNewer(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}

func TestIsFeatureRelease(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		prev string
		next string
		want bool
	}{
		{name: "minor bump", prev: "1.2.0", next: "1.3.0", want: true},
		{name: "major bump", prev: "1.9.4", next: "2.0.0", want: true},
		{name: "patch bump only", prev: "1.2.0", next: "1.2.7", want: false},
		{name: "same version", prev: "v1.2.0", next: "1.2.0", want: false},
		{name: "downgrade", prev: "2.1.0", next: "2.0.0", want: false},
		{name: "major downgrade with higher minor", prev: "2.0.0", next: "1.9.0", want: false},
		{name: "devel next", prev: "1.0.0", next: "devel", want: false},
		{name: "empty prev", prev: "", next: "1.0.0", want: false},
		{name: "garbage", prev: "one", next: "two", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsFeatureRelease(tt.prev, tt.next); got != tt.want {
				t.Errorf("IsFeatureRelease(%q, %q) = %v, want %v", tt.prev, tt.next, got, tt.want)
			}
		})
	}
}

func TestCheckCompatibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		client       string
		min          string
		incompatible bool
		wantErr      bool
	}{
		{name: "no minimum", client: "0.0.1", min: ""},
		{name: "newer", client: "2.0.0", min: "1.5.0"},
		{name: "equal", client: "v1.5.0", min: "1.5.0"},
		{name: "older", client: "1.4.9", min: "1.5.0", incompatible: true, wantErr: true},
		{name: "devel client", client: "devel", min: "1.5.0"},
		{name: "unparseable client", client: "nightly", min: "1.5.0", incompatible: true, wantErr: true},
		{name: "bad minimum", client: "1.0.0", min: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := CheckCompatibility(tt.client, tt.min)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckCompatibility(%q, %q) error = %v, wantErr %v", tt.client, tt.min, err, tt.wantErr)
			}
			var verr *IncompatibleError
			if got := errors.As(err, &verr); got != tt.incompatible {
				t.Errorf("incompatible = %v, want %v", got, tt.incompatible)
			}
		})
	}
}
