package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
)

const Header = "X-Client-Version"

const (
	versionDevel   = "devel"
	versionUnknown = "unknown"
)

// version is set via ldflags at build time.
// falls back to debug.ReadBuildInfo for go install.
var version = versionDevel

var once sync.Once

func Get() string {
	once.Do(func() {
		if version != versionDevel {
			return
		}
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if v := info.Main.Version; v != "" && v != "("+versionDevel+")" {
			version = v
		}
	})
	return version
}

// IsDevelopment reports versions that never trigger update prompts.
func IsDevelopment(v string) bool {
	return v == versionDevel || v == versionUnknown || v == "" ||
		strings.Contains(v, "dirty") ||
		strings.Contains(v, "-0.")
}

// IsNewer reports whether latest is a newer release than current.
func IsNewer(current, latest string) bool {
	if IsDevelopment(current) {
		return false
	}
	cur, err := semver.NewVersion(current)
	if err != nil {
		return false
	}
	lat, err := semver.NewVersion(latest)
	if err != nil {
		return false
	}
	return lat.GreaterThan(cur)
}

// IsFeatureRelease reports whether next bumps the major or minor component of
// prev. Patch releases do not count.
func IsFeatureRelease(prev, next string) bool {
	if IsDevelopment(prev) || IsDevelopment(next) {
		return false
	}
	p, err := semver.NewVersion(prev)
	if err != nil {
		return false
	}
	n, err := semver.NewVersion(next)
	if err != nil {
		return false
	}
	if n.Major() != p.Major() {
		return n.Major() > p.Major()
	}
	return n.Minor() > p.Minor()
}

// IncompatibleError reports a client older than the minimum a server accepts.
type IncompatibleError struct {
	ClientVersion string
	MinVersion    string
}

func (e *IncompatibleError) Error() string {
	return fmt.Sprintf("client version %s is older than the minimum supported version %s", e.ClientVersion, e.MinVersion)
}

// CheckCompatibility returns an *IncompatibleError when client is older than
// min. An empty min accepts everything, as do development clients.
func CheckCompatibility(client, min string) error {
	if min == "" || IsDevelopment(client) {
		return nil
	}
	m, err := semver.NewVersion(min)
	if err != nil {
		return fmt.Errorf("invalid minimum version %q: %w", min, err)
	}
	c, err := semver.NewVersion(client)
	if err != nil || c.LessThan(m) {
		return &IncompatibleError{ClientVersion: client, MinVersion: min}
	}
	return nil
}
