package auth

import (
	"github.com/telmov/inkpress/internal/apperr"
	"github.com/telmov/inkpress/internal/model"
)

// RequireRole fails with a forbidden error unless the caller carries at
// least one of the given roles.
func RequireRole(identity model.Identity, roles ...model.Role) error {
	if !identity.HasAnyRole(roles...) {
		return apperr.Forbidden()
	}
	return nil
}

// RequireUser fails with a forbidden error unless the caller is ownerID.
func RequireUser(identity model.Identity, ownerID model.UserID) error {
	if identity.UserID != ownerID {
		return apperr.Forbidden()
	}
	return nil
}
