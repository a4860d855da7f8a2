package windowid

import "github.com/google/uuid"

// UUID identifies a browser window.
type UUID uuid.UUID

// Unavailable addresses every window.
var Unavailable = UUID(uuid.Nil)

func New() UUID {
	return UUID(uuid.New())
}

func Parse(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return Unavailable, err
	}
	return UUID(id), nil
}

func (u UUID) IsUnavailable() bool { return u == Unavailable }

func (u UUID) String() string {
	return uuid.UUID(u).String()
}
