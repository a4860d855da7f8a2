package experiments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/liftoff/internal/messaging"
	"github.com/garrettladley/liftoff/internal/prefs"
	"github.com/garrettladley/liftoff/internal/xslog"
)

type stubClient struct {
	payload *Payload
	err     error
}

func (c stubClient) GetExperiments(context.Context) (*Payload, error) {
	return c.payload, c.err
}

func TestLayerMaximumDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ms   int
		want time.Duration
	}{
		{name: "positive", ms: 250, want: 250 * time.Millisecond},
		{name: "zero", ms: 0, want: 0},
		{name: "negative clamps", ms: -10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := NewLayer()
			l.Apply(Payload{SplashScreen: SplashScreen{MaximumDurationMs: tt.ms}})
			if got := l.MaximumDuration(); got != tt.want {
				t.Errorf("MaximumDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayerDefaults(t *testing.T) {
	t.Parallel()

	l := NewLayer()
	if got, want := l.MaximumDuration(), DefaultSplashMaxDurationMs*time.Millisecond; got != want {
		t.Errorf("MaximumDuration() = %v, want %v", got, want)
	}
	if got := l.Messages(); len(got) != 0 {
		t.Errorf("Messages() = %v, want empty", got)
	}
	if l.FromRemote() {
		t.Error("FromRemote() = true on defaults")
	}
}

func TestPayloadValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload Payload
		wantErr bool
	}{
		{name: "defaults", payload: Defaults()},
		{
			name: "valid messages",
			payload: Payload{Messages: []messaging.Message{
				{ID: "a", Surface: messaging.SurfaceSurvey},
				{ID: "b", Surface: messaging.SurfaceMicroSurvey},
			}},
		},
		{
			name:    "missing id",
			payload: Payload{Messages: []messaging.Message{{Surface: messaging.SurfaceSurvey}}},
			wantErr: true,
		},
		{
			name: "duplicate id",
			payload: Payload{Messages: []messaging.Message{
				{ID: "a", Surface: messaging.SurfaceSurvey},
				{ID: "a", Surface: messaging.SurfaceMicroSurvey},
			}},
			wantErr: true,
		},
		{
			name:    "unknown surface",
			payload: Payload{Messages: []messaging.Message{{ID: "a", Surface: "banner"}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.payload.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFetcherFetch(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	store := prefs.NewMemoryStore()
	layer := NewLayer()
	want := Payload{
		SplashScreen: SplashScreen{MaximumDurationMs: 300},
		Messages:     []messaging.Message{{ID: "m1", Surface: messaging.SurfaceMicroSurvey, Title: "Quick question"}},
	}

	f := NewFetcher(stubClient{payload: &want}, layer, store, xslog.Discard())

	select {
	case <-f.Fetched():
		t.Fatal("Fetched() closed before Fetch")
	default:
	}

	if err := f.Fetch(ctx); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	// a second fetch must not panic on the already closed channel
	if err := f.Fetch(ctx); err != nil {
		t.Fatalf("second Fetch() error = %v", err)
	}

	select {
	case <-f.Fetched():
	default:
		t.Fatal("Fetched() not closed after Fetch")
	}

	if diff := cmp.Diff(want, layer.Current()); diff != "" {
		t.Errorf("Current() mismatch (-want +got):\n%s", diff)
	}

	cached := NewLayer()
	ok, err := cached.LoadCached(ctx, store)
	if err != nil || !ok {
		t.Fatalf("LoadCached() = %v, %v", ok, err)
	}
	if diff := cmp.Diff(want, cached.Current()); diff != "" {
		t.Errorf("cached payload mismatch (-want +got):\n%s", diff)
	}
	if !layer.FromRemote() || !cached.FromRemote() {
		t.Errorf("FromRemote() = %v, %v, want true, true", layer.FromRemote(), cached.FromRemote())
	}
}

func TestFetcherFetchFailure(t *testing.T) {
	t.Parallel()

	layer := NewLayer()
	f := NewFetcher(stubClient{err: errors.New("offline")}, layer, prefs.NewMemoryStore(), xslog.Discard())

	if err := f.Fetch(t.Context()); err == nil {
		t.Fatal("Fetch() error = nil, want error")
	}
	select {
	case <-f.Fetched():
		t.Fatal("Fetched() closed after failed Fetch")
	default:
	}
	if diff := cmp.Diff(Defaults(), layer.Current()); diff != "" {
		t.Errorf("layer changed after failure (-want +got):\n%s", diff)
	}
	if layer.FromRemote() {
		t.Error("FromRemote() = true after failed Fetch")
	}
}

func TestLoadCachedMissing(t *testing.T) {
	t.Parallel()

	layer := NewLayer()
	ok, err := layer.LoadCached(t.Context(), prefs.NewMemoryStore())
	if err != nil || ok {
		t.Errorf("LoadCached() = %v, %v, want false, nil", ok, err)
	}
	if layer.FromRemote() {
		t.Error("FromRemote() = true with no cache")
	}
}
