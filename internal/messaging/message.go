package messaging

import "time"

type Surface string

const (
	// SurfaceSurvey is the full-screen survey shown at launch.
	SurfaceSurvey Surface = "survey"
	// SurfaceMicroSurvey is the in-window prompt.
	SurfaceMicroSurvey Surface = "microsurvey"
)

const DefaultMaxImpressions = 5

type Message struct {
	ID             string     `json:"id"`
	Surface        Surface    `json:"surface"`
	Title          string     `json:"title,omitempty"`
	Text           string     `json:"text"`
	ButtonLabel    string     `json:"button_label,omitempty"`
	Priority       int        `json:"priority,omitempty"`
	MaxImpressions int        `json:"max_impressions,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

func (m Message) maxImpressions() int {
	if m.MaxImpressions <= 0 {
		return DefaultMaxImpressions
	}
	return m.MaxImpressions
}

func (m Message) expired(now time.Time) bool {
	return m.ExpiresAt != nil && !now.Before(*m.ExpiresAt)
}

// State is the per-message interaction history.
type State struct {
	MessageID   string
	Impressions int
	Pressed     bool
	Dismissed   bool
}

// Done reports whether the message should never be shown again.
func (s State) Done() bool {
	return s.Pressed || s.Dismissed
}
