package featureflag

type Flag string

const (
	// SplashScreen gates waiting on remote experiments before the first screen.
	SplashScreen Flag = "splash_screen"
	MicroSurvey  Flag = "micro_survey"
)

// Flags holds build-only feature flags. Unknown flags are disabled.
type Flags struct {
	values map[Flag]bool
}

func New(values map[Flag]bool) Flags {
	cp := make(map[Flag]bool, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return Flags{values: cp}
}

func (f Flags) IsEnabled(flag Flag) bool {
	return f.values[flag]
}
