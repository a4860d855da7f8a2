package github

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_CheckForUpdate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		body      string
		current   string
		wantNewer bool
		wantErr   error
	}{
		{
			name:      "newer release",
			status:    http.StatusOK,
			body:      `{"tag_name":"v1.3.0","html_url":"https://example.com/v1.3.0"}`,
			current:   "v1.2.0",
			wantNewer: true,
		},
		{
			name:    "same release",
			status:  http.StatusOK,
			body:    `{"tag_name":"v1.2.0"}`,
			current: "v1.2.0",
		},
		{
			name:    "prerelease ignored",
			status:  http.StatusOK,
			body:    `{"tag_name":"v2.0.0-rc.1","prerelease":true}`,
			current: "v1.2.0",
		},
		{
			name:    "development build",
			status:  http.StatusOK,
			body:    `{"tag_name":"v9.0.0"}`,
			current: "devel",
		},
		{
			name:    "no release",
			status:  http.StatusNotFound,
			current: "v1.2.0",
			wantErr: ErrNoRelease,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/repos/garrettladley/liftoff/releases/latest" {
					t.Errorf("path = %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			c := NewClient(WithBaseURL(srv.URL))
			_, newer, err := c.CheckForUpdate(t.Context(), LiftoffRepo, tt.current)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if newer != tt.wantNewer {
				t.Errorf("newer = %v, want %v", newer, tt.wantNewer)
			}
		})
	}
}
