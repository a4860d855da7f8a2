package prefs_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/liftoff/internal/db"
	"github.com/garrettladley/liftoff/internal/prefs"
)

func TestSQLiteStore(t *testing.T) {
	t.Parallel()

	sqlDB, err := db.Open(t.Context(), ":memory:", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	store := prefs.NewSQLiteStore(sqlDB)
	ctx := t.Context()

	seen, err := prefs.Bool(ctx, store, prefs.KeyIntroSeen)
	if err != nil || seen {
		t.Fatalf("Bool() on missing key = %v, %v; want false, nil", seen, err)
	}

	if err := prefs.SetBool(ctx, store, prefs.KeyIntroSeen, true); err != nil {
		t.Fatalf("SetBool() error = %v", err)
	}
	if err := prefs.SetInt(ctx, store, prefs.KeyLaunchCount, 3); err != nil {
		t.Fatalf("SetInt() error = %v", err)
	}
	if err := prefs.SetInt(ctx, store, prefs.KeyLaunchCount, 4); err != nil {
		t.Fatalf("SetInt() overwrite error = %v", err)
	}

	got, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	want := map[prefs.Key]string{
		prefs.KeyIntroSeen:   "true",
		prefs.KeyLaunchCount: "4",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}

	if err := store.Delete(ctx, prefs.KeyIntroSeen); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if v, err := prefs.String(ctx, store, prefs.KeyIntroSeen); err != nil || v != "" {
		t.Errorf("String() after delete = %q, %v; want empty, nil", v, err)
	}
}
