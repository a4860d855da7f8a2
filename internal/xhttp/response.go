package xhttp

import (
	"bytes"
	"net/http"
	"time"

	go_json "github.com/goccy/go-json"
)

// WriteJSON encodes data before touching w, so an encoding failure still
// produces a clean 500.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := go_json.NewEncoder(&buf).Encode(data); err != nil {
		WriteErrorMessage(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	SetHeaderContentTypeApplicationJSON(w)
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// NotModified sets Last-Modified and, when the request's If-Modified-Since is
// not older than modTime, writes 304 and reports true. A zero modTime never
// matches.
func NotModified(w http.ResponseWriter, r *http.Request, modTime time.Time) bool {
	if modTime.IsZero() {
		return false
	}
	w.Header().Set(LastModified, modTime.UTC().Format(http.TimeFormat))

	since, err := http.ParseTime(r.Header.Get(IfModifiedSince))
	if err != nil {
		return false
	}
	// HTTP dates have second precision
	if modTime.Truncate(time.Second).After(since) {
		return false
	}
	w.WriteHeader(http.StatusNotModified)
	return true
}
