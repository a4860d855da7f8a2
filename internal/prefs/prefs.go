package prefs

import (
	"context"
	"errors"
	"strconv"
)

var ErrNotFound = errors.New("pref not found")

type Key string

const (
	KeyIntroSeen           Key = "intro.seen"
	KeyLastUpdateVersion   Key = "update.last_version"
	KeyLaunchCount         Key = "launch.count"
	KeyLastLaunchAt        Key = "launch.last_at"
	KeyExperimentsCache    Key = "experiments.cache"
	KeyExperimentsCachedAt Key = "experiments.cached_at"
)

// Store is a small persistent key/value store for app preferences.
type Store interface {
	Get(ctx context.Context, key Key) (string, error)
	Set(ctx context.Context, key Key, value string) error
	Delete(ctx context.Context, key Key) error
	All(ctx context.Context) (map[Key]string, error)
}

// Bool reads key as a boolean; a missing key is false.
func Bool(ctx context.Context, s Store, key Key) (bool, error) {
	v, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(v)
}

func SetBool(ctx context.Context, s Store, key Key, value bool) error {
	return s.Set(ctx, key, strconv.FormatBool(value))
}

// Int reads key as an integer; a missing key is 0.
func Int(ctx context.Context, s Store, key Key) (int64, error) {
	v, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

func SetInt(ctx context.Context, s Store, key Key, value int64) error {
	return s.Set(ctx, key, strconv.FormatInt(value, 10))
}

// String reads key; a missing key is "".
func String(ctx context.Context, s Store, key Key) (string, error) {
	v, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}
