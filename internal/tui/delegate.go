package tui

import "github.com/garrettladley/liftoff/internal/launch"

var _ launch.Delegate = (*LaunchDelegate)(nil)

// LaunchDelegate hands the sequencer's single outcome to the TUI.
type LaunchDelegate struct {
	results chan LaunchResolvedMsg
}

func NewLaunchDelegate() *LaunchDelegate {
	return &LaunchDelegate{results: make(chan LaunchResolvedMsg, 1)}
}

func (d *LaunchDelegate) LaunchWith(t launch.Type) {
	d.send(LaunchResolvedMsg{Type: t, OK: true})
}

func (d *LaunchDelegate) LaunchBrowser() {
	d.send(LaunchResolvedMsg{})
}

func (d *LaunchDelegate) send(msg LaunchResolvedMsg) {
	select {
	case d.results <- msg:
	default:
	}
}
