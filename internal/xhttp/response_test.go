package xhttp

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNotModified(t *testing.T) {
	t.Parallel()

	modTime := time.Date(2026, 3, 1, 12, 0, 0, 500_000_000, time.UTC)

	tests := []struct {
		name    string
		modTime time.Time
		since   string
		want    bool
	}{
		{name: "no header", modTime: modTime, want: false},
		{name: "same second", modTime: modTime, since: modTime.Format(http.TimeFormat), want: true},
		{name: "client is newer", modTime: modTime, since: modTime.Add(time.Hour).Format(http.TimeFormat), want: true},
		{name: "client is older", modTime: modTime, since: modTime.Add(-time.Hour).Format(http.TimeFormat), want: false},
		{name: "unparseable header", modTime: modTime, since: "yesterday", want: false},
		{name: "zero mod time", since: modTime.Format(http.TimeFormat), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/", nil)
			if tt.since != "" {
				req.Header.Set(IfModifiedSince, tt.since)
			}
			rec := httptest.NewRecorder()

			if got := NotModified(rec, req, tt.modTime); got != tt.want {
				t.Fatalf("NotModified() = %v, want %v", got, tt.want)
			}
			if tt.want && rec.Code != http.StatusNotModified {
				t.Errorf("status = %d, want 304", rec.Code)
			}
			if !tt.modTime.IsZero() && rec.Header().Get(LastModified) == "" {
				t.Error("Last-Modified not set")
			}
		})
	}
}

func TestWriteJSON_EncodeFailure(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, map[string]any{"bad": make(chan int)})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
