package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/telmov/inkpress/internal/apperr"
	"github.com/telmov/inkpress/internal/model"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("S3cret!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("Expected an argon2id encoded hash, got %q", hash)
	}

	t.Run("verifies the original password", func(t *testing.T) {
		if !VerifyPassword("S3cret!", hash) {
			t.Error("Correct password did not verify")
		}
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		if VerifyPassword("S3cret", hash) {
			t.Error("Wrong password verified")
		}
	})

	t.Run("rejects garbage encodings", func(t *testing.T) {
		for _, encoded := range []string{"", "plaintext", "$argon2id$v=19$truncated"} {
			if VerifyPassword("S3cret!", encoded) {
				t.Errorf("Encoding %q verified", encoded)
			}
		}
	})

	t.Run("salts differ between hashes", func(t *testing.T) {
		other, err := HashPassword("S3cret!")
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		if other == hash {
			t.Error("Two hashes of the same password were identical")
		}
	})
}

func TestTokenManager(t *testing.T) {
	tm := NewTokenManager("test-signing-key", time.Hour)
	user := &model.User{
		ID:       "u1",
		Username: "alice",
		Roles:    []model.Role{model.RoleAdmin, model.RoleEditor},
	}

	t.Run("issue then verify round-trips the identity", func(t *testing.T) {
		token, err := tm.Issue(user)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		identity, err := tm.Verify(token)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if identity.UserID != "u1" || identity.Username != "alice" {
			t.Errorf("Unexpected identity: %+v", identity)
		}
		if !identity.HasAnyRole(model.RoleAdmin) || !identity.HasAnyRole(model.RoleEditor) {
			t.Errorf("Roles did not round-trip: %v", identity.Roles)
		}
		if identity.HasAnyRole(model.RoleReader) {
			t.Error("Identity gained a role it was never given")
		}
	})

	t.Run("rejects tokens signed with a different key", func(t *testing.T) {
		token, err := NewTokenManager("other-key", time.Hour).Issue(user)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		if _, err := tm.Verify(token); err == nil {
			t.Error("Token under a foreign key verified")
		}
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		token, err := NewTokenManager("test-signing-key", -time.Minute).Issue(user)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		if _, err := tm.Verify(token); err == nil {
			t.Error("Expired token verified")
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := tm.Verify("not.a.token"); err == nil {
			t.Error("Garbage token verified")
		}
	})

	t.Run("refuses to sign without a key", func(t *testing.T) {
		if _, err := NewTokenManager("", time.Hour).Issue(user); err != ErrNeedSigningKey {
			t.Errorf("Expected ErrNeedSigningKey, got %v", err)
		}
	})
}

func TestRequireRole(t *testing.T) {
	editor := model.Identity{UserID: "u1", Roles: []model.Role{model.RoleEditor}}

	if err := RequireRole(editor, model.RoleAdmin, model.RoleEditor); err != nil {
		t.Errorf("Expected editor to pass, got %v", err)
	}
	if err := RequireRole(editor, model.RoleAdmin); !apperr.IsForbidden(err) {
		t.Errorf("Expected Forbidden, got %v", err)
	}
	if err := RequireRole(model.Identity{UserID: "u2"}, model.RoleReader); !apperr.IsForbidden(err) {
		t.Errorf("Expected Forbidden for a role-less identity, got %v", err)
	}
}

func TestRequireUser(t *testing.T) {
	caller := model.Identity{UserID: "u1"}

	if err := RequireUser(caller, "u1"); err != nil {
		t.Errorf("Expected owner to pass, got %v", err)
	}
	if err := RequireUser(caller, "u2"); !apperr.IsForbidden(err) {
		t.Errorf("Expected Forbidden, got %v", err)
	}
}
