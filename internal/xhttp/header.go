package xhttp

import (
	"net/http"
)

const (
	XForwardedFor    = "X-Forwarded-For"
	XContentTypeOpts = "X-Content-Type-Options"
	XFrameOpts       = "X-Frame-Options"
	XXSSProtection   = "X-Xss-Protection"
	ReferrerPolicy   = "Referrer-Policy"
	XAPIKey          = "X-API-Key"
	XRequestID       = "X-Request-ID"
	XCache           = "X-Cache"
)

const (
	ContentType  = "Content-Type"
	CacheControl = "Cache-Control"
	UserAgent    = "User-Agent"
	Accept       = "Accept"

	LastModified    = "Last-Modified"
	IfModifiedSince = "If-Modified-Since"
)

const applicationJSON = "application/json"

func SetHeaderRequestID(w http.ResponseWriter, requestID string) {
	w.Header().Set(XRequestID, requestID)
}

func SetHeaderContentTypeApplicationJSON(w http.ResponseWriter) {
	w.Header().Set(ContentType, applicationJSON)
}

func SetRequestHeaderAcceptJSON(r *http.Request) {
	r.Header.Set(Accept, applicationJSON)
}

func GetRequestHeaderAPIKey(r *http.Request) string {
	return r.Header.Get(XAPIKey)
}
