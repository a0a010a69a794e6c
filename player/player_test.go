package player

import (
	"testing"

	"github.com/google/uuid"
)

func TestZeroValueHasNoUUIDString(t *testing.T) {
	var p Player
	if p.UUIDString() != "" {
		t.Errorf("expected empty UUID string for zero value, got %q", p.UUIDString())
	}
	if p.Username != "" {
		t.Errorf("expected empty username for zero value, got %q", p.Username)
	}
}

func TestUUIDStringMatchesCanonicalForm(t *testing.T) {
	id := uuid.New()
	p := Player{Username: "alice", UUID: &id}
	if p.UUIDString() != id.String() {
		t.Errorf("got %q, want %q", p.UUIDString(), id.String())
	}
}
