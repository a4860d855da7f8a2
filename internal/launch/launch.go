package launch

import "fmt"

type Kind uint8

const (
	KindIntro Kind = iota + 1
	KindUpdate
	KindSurvey
)

// Type is the first screen chosen for this launch when it is not the browser.
type Type struct {
	kind    Kind
	version string
}

func Intro() Type { return Type{kind: KindIntro} }

// Update carries the app version the update sheet is shown for.
func Update(appVersion string) Type { return Type{kind: KindUpdate, version: appVersion} }

func Survey() Type { return Type{kind: KindSurvey} }

func (t Type) Kind() Kind { return t.kind }

// Version is only set for Update.
func (t Type) Version() string { return t.version }

func (t Type) String() string {
	switch t.kind {
	case KindIntro:
		return "intro"
	case KindUpdate:
		return fmt.Sprintf("update(%s)", t.version)
	case KindSurvey:
		return "survey"
	default:
		return "unknown"
	}
}

// BrowserOutcome is how the browser launch is named in logs and output.
const BrowserOutcome = "browser"

// Delegate receives the single outcome of a launch.
type Delegate interface {
	LaunchWith(t Type)
	LaunchBrowser()
}

// DelegateFuncs adapts two functions to a Delegate.
type DelegateFuncs struct {
	OnLaunch  func(Type)
	OnBrowser func()
}

func (d DelegateFuncs) LaunchWith(t Type) {
	if d.OnLaunch != nil {
		d.OnLaunch(t)
	}
}

func (d DelegateFuncs) LaunchBrowser() {
	if d.OnBrowser != nil {
		d.OnBrowser()
	}
}
