package validate

import (
	"testing"

	"github.com/telmov/inkpress/internal/apperr"
)

type form struct {
	Title    string `json:"title" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
}

func TestStruct(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		err := Struct(form{Title: "T", Email: "a@example.com", Password: "long-enough"})
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("failures are keyed by json tag", func(t *testing.T) {
		verr, ok := apperr.AsValidation(Struct(form{}))
		if !ok {
			t.Fatal("Expected a validation error")
		}
		if msgs := verr.Fields["title"]; len(msgs) != 1 || msgs[0] != "must not be empty" {
			t.Errorf("Unexpected title messages: %v", msgs)
		}
	})

	t.Run("json tag options are stripped", func(t *testing.T) {
		verr, ok := apperr.AsValidation(Struct(form{Title: "T", Password: "short"}))
		if !ok {
			t.Fatal("Expected a validation error")
		}
		if _, found := verr.Fields["password"]; !found {
			t.Errorf("Expected the key password, got %v", verr.Fields)
		}
	})

	t.Run("parameterized messages include the param", func(t *testing.T) {
		verr, _ := apperr.AsValidation(Struct(form{Title: "T", Password: "short"}))
		if msgs := verr.Fields["password"]; len(msgs) != 1 || msgs[0] != "must be at least 8 characters long" {
			t.Errorf("Unexpected password messages: %v", msgs)
		}
	})

	t.Run("multiple failures are all reported", func(t *testing.T) {
		verr, _ := apperr.AsValidation(Struct(form{Email: "nope", Password: "x"}))
		for _, key := range []string{"title", "email", "password"} {
			if _, found := verr.Fields[key]; !found {
				t.Errorf("Expected a failure for %s, got %v", key, verr.Fields)
			}
		}
	})

	t.Run("pointer input works too", func(t *testing.T) {
		verr, ok := apperr.AsValidation(Struct(&form{}))
		if !ok {
			t.Fatal("Expected a validation error")
		}
		if _, found := verr.Fields["title"]; !found {
			t.Errorf("Expected the key title, got %v", verr.Fields)
		}
	})
}
