package session

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/Greydadalberto/gtp-taskmanagerapp/internal/models"
)

// The group claim arrives in different shapes depending on the identity
// provider configuration: absent, a single string, or an array of strings.
// Everything is normalized here into a RoleSet; a shape we don't recognize
// counts as no roles at all (fail closed).

// groupClaimKeys are checked in order; Cognito pools use the prefixed form.
var groupClaimKeys = []string{"cognito:groups", "groups"}

type RoleSet map[string]bool

func (r RoleSet) Has(role string) bool { return r[role] }

// Identity is an authenticated visitor as the dashboard sees it.
type Identity struct {
	Email string
	Roles RoleSet
}

func (id *Identity) IsAdmin() bool {
	return id != nil && id.Roles.Has(models.RoleAdmin)
}

// NormalizeGroups converts a raw group claim value into a RoleSet.
func NormalizeGroups(raw any) RoleSet {
	roles := RoleSet{}
	switch v := raw.(type) {
	case nil:
	case string:
		if v != "" {
			roles[v] = true
		}
	case []string:
		for _, role := range v {
			if role != "" {
				roles[role] = true
			}
		}
	case []any:
		// JSON arrays decode as []any; non-string members are skipped
		for _, item := range v {
			if role, ok := item.(string); ok && role != "" {
				roles[role] = true
			}
		}
	}
	return roles
}

// IdentityFromClaims extracts the email and role set from token claims.
// The email claim is required; group claims are optional.
func IdentityFromClaims(claims jwt.MapClaims) (*Identity, bool) {
	email, _ := claims["email"].(string)
	if email == "" {
		// some providers only populate sub with the email
		email, _ = claims["sub"].(string)
	}
	if email == "" {
		return nil, false
	}

	roles := RoleSet{}
	for _, key := range groupClaimKeys {
		if raw, present := claims[key]; present {
			roles = NormalizeGroups(raw)
			break
		}
	}
	return &Identity{Email: email, Roles: roles}, true
}
