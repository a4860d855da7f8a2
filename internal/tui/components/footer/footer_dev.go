//go:build !release

package footer

import "github.com/garrettladley/liftoff/internal/version"

// dev builds show the running version on the left.
func (f Footer) leftContent() string {
	return descStyle.Render(version.Get())
}
