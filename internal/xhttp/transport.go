package xhttp

import (
	"fmt"
	"net/http"

	"github.com/garrettladley/liftoff/internal/version"
)

type liftoffTransport struct {
	base http.RoundTripper
}

var _ http.RoundTripper = (*liftoffTransport)(nil)

func (t *liftoffTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(UserAgent, "liftoff/"+version.Get())
	req.Header.Set(version.Header, version.Get())
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

// NewTransport returns an http.RoundTripper that stamps client identity headers.
func NewTransport() http.RoundTripper {
	return &liftoffTransport{base: http.DefaultTransport}
}
