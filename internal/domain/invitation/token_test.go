package invitation

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	inv := &Invitation{
		ID:        uuid.New(),
		NPOID:     uuid.New(),
		Email:     "staff@example.org",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}

	token, err := SignToken(inv, "test-signing-key")
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}

	id, err := ParseToken(token, "test-signing-key")
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id != inv.ID {
		t.Fatalf("parsed id = %s, want %s", id, inv.ID)
	}
}

func TestTokenRejectsWrongKey(t *testing.T) {
	inv := &Invitation{
		ID:        uuid.New(),
		NPOID:     uuid.New(),
		Email:     "staff@example.org",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}

	token, err := SignToken(inv, "key-one")
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}
	if _, err := ParseToken(token, "key-two"); err == nil {
		t.Fatal("token signed with a different key must not parse")
	}
}

func TestTokenRejectsExpired(t *testing.T) {
	inv := &Invitation{
		ID:        uuid.New(),
		NPOID:     uuid.New(),
		Email:     "staff@example.org",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}

	token, err := SignToken(inv, "test-signing-key")
	if err != nil {
		t.Fatalf("SignToken: %v", err)
	}
	if _, err := ParseToken(token, "test-signing-key"); err == nil {
		t.Fatal("expired token must not parse")
	}
}

func TestTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("not-a-jwt", "test-signing-key"); err == nil {
		t.Fatal("malformed token must not parse")
	}
}
