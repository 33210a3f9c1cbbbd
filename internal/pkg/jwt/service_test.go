package jwt

import (
	"errors"
	"testing"
	"time"
)

func newTestService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	s := newTestService()
	tok, err := s.GenerateAccessToken(Subject{UserID: 7, Email: "a@b.c", Role: "employer", IsAdmin: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	c, err := s.ValidateAccessToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.UserID != 7 || c.Role != "employer" || !c.IsAdmin || c.TokenType != TokenTypeAccess {
		t.Fatalf("unexpected claims %+v", c)
	}
}

func TestRefreshTokenNotAcceptedAsAccess(t *testing.T) {
	s := newTestService()
	tok, err := s.GenerateRefreshToken(7)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := s.ValidateAccessToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := s.ValidateRefreshToken(tok); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	s := newTestService()
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := s.GenerateAccessToken(Subject{UserID: 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	s.now = time.Now
	if _, err := s.ValidateAccessToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestRejectsMissingUser(t *testing.T) {
	s := newTestService()
	if _, err := s.GenerateAccessToken(Subject{}); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestRejectsGarbage(t *testing.T) {
	s := newTestService()
	if _, err := s.ValidateAccessToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
