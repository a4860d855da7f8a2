package handler

import (
	"errors"
	"net/http"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/liftoff/internal/experiments"
	"github.com/garrettladley/liftoff/internal/service/remoteconfig"
	"github.com/garrettladley/liftoff/internal/xerrors"
	"github.com/garrettladley/liftoff/internal/xhttp"
)

const (
	maxPayloadBytes = 1 << 20

	cacheHit  = "HIT"
	cacheMiss = "MISS"
)

type Experiments struct {
	service remoteconfig.Service
}

func NewExperiments(service remoteconfig.Service) *Experiments {
	return &Experiments{service: service}
}

// HandleGet handles GET /api/experiments requests.
func (h *Experiments) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, hit, err := h.service.Current(ctx)
	if err != nil {
		xerrors.WriteError(ctx, w, err)
		return
	}

	if hit {
		w.Header().Set(xhttp.XCache, cacheHit)
	} else {
		w.Header().Set(xhttp.XCache, cacheMiss)
	}
	w.Header().Set(xhttp.CacheControl, "no-cache")
	if xhttp.NotModified(w, r, p.UpdatedAt) {
		return
	}
	xhttp.WriteOK(w, p)
}

// HandlePut handles PUT /api/experiments requests. The body replaces the
// current payload.
func (h *Experiments) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var p experiments.Payload
	dec := go_json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			xerrors.WriteError(ctx, w, xerrors.RequestTooLarge(xerrors.WithCause(err)))
			return
		}
		xerrors.WriteError(ctx, w, xerrors.BadRequest(
			xerrors.WithMessage("invalid experiments payload"),
			xerrors.WithCause(err),
		))
		return
	}

	saved, err := h.service.Replace(ctx, p)
	if err != nil {
		xerrors.WriteError(ctx, w, err)
		return
	}
	xhttp.WriteOK(w, saved)
}
