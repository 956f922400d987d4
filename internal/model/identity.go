package model

// Identity is the authenticated caller: their user id plus the roles carried
// by their token. It is passed explicitly through the service layer instead
// of living on an ambient request context.
type Identity struct {
	UserID   UserID
	Username string
	Roles    []Role
}

func (id Identity) HasAnyRole(roles ...Role) bool {
	for _, have := range id.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
