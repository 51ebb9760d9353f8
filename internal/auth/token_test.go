package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/anuragmoyde/mentor4all-sub000/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager("test-secret", "mentor4all", time.Hour)
	profile := models.Profile{ID: uuid.New(), UserType: models.UserTypeMentor}

	raw, err := tokens.Generate(profile, "ada@example.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	id, err := tokens.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.UserID != profile.ID || id.Email != "ada@example.com" || id.UserType != models.UserTypeMentor {
		t.Fatalf("identity = %+v", id)
	}
}

func TestVerifyRejects(t *testing.T) {
	profile := models.Profile{ID: uuid.New()}
	issuer := NewTokenManager("test-secret", "mentor4all", time.Hour)

	expired := NewTokenManager("test-secret", "mentor4all", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Generate(profile, "")
	if err != nil {
		t.Fatal(err)
	}

	otherSecret, _ := NewTokenManager("other-secret", "mentor4all", time.Hour).Generate(profile, "")
	otherIssuer, _ := NewTokenManager("test-secret", "someone-else", time.Hour).Generate(profile, "")

	tests := map[string]string{
		"expired":      expiredToken,
		"wrong secret": otherSecret,
		"wrong issuer": otherIssuer,
		"garbage":      "not-a-token",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := issuer.Verify(raw); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("Verify error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestIdentityContext(t *testing.T) {
	if _, ok := IdentityFrom(context.Background()); ok {
		t.Fatal("empty context must not carry an identity")
	}
	want := Identity{UserID: uuid.New()}
	got, ok := IdentityFrom(WithIdentity(context.Background(), want))
	if !ok || got.UserID != want.UserID {
		t.Fatalf("IdentityFrom = %+v, %v", got, ok)
	}
	if _, ok := IdentityFrom(WithIdentity(context.Background(), Identity{})); ok {
		t.Fatal("zero identity must not count as authenticated")
	}
}
