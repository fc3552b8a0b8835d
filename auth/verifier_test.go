package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWTVerifier_RoundTrip(t *testing.T) {
	v := NewJWTVerifier([]byte("test-secret"))

	token, err := v.Issue("user-123", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	userID, err := v.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("Verify: got user %q, want %q", userID, "user-123")
	}
}

func TestJWTVerifier_Rejections(t *testing.T) {
	v := NewJWTVerifier([]byte("test-secret"))
	other := NewJWTVerifier([]byte("other-secret"))

	goodToken, err := v.Issue("user-123", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	wrongKeyToken, err := other.Issue("user-123", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	expiredToken, err := v.Issue("user-123", -time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not.a.jwt"},
		{"wrong key", wrongKeyToken},
		{"expired", expiredToken},
		{"truncated", goodToken[:len(goodToken)-5]},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := v.Verify(test.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify(%s): got %v, want ErrInvalidToken", test.name, err)
			}
		})
	}
}

func TestJWTVerifier_MissingUserIDClaim(t *testing.T) {
	// A structurally valid token without the userId claim must not
	// authenticate.
	v := NewJWTVerifier([]byte("test-secret"))
	token, err := v.Issue("", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := v.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify: got %v, want ErrInvalidToken", err)
	}
}
