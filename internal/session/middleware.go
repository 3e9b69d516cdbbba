package session

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie carrying the identity token.
const CookieName = "tm_session"

// Guard verifies identity tokens and gates protected views.
type Guard struct {
	Secret []byte
	// Provider settings for the hosted sign-in/sign-out redirects.
	ProviderDomain string
	ClientID       string
	ReturnURL      string
}

type contextKey string

const identityKey contextKey = "identity"

// IdentityFrom returns the identity the middleware stored on the request
// context, or nil for an unauthenticated request.
func IdentityFrom(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}

// ContextWithIdentity stores an authenticated identity on a context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Authenticate parses the bearer token from the Authorization header or the
// session cookie. A missing, expired or malformed token yields nil: the
// guard then treats the visitor as signed out rather than erroring.
func (g *Guard) Authenticate(r *http.Request) *Identity {
	tokenString := ""
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	} else if cookie, err := r.Cookie(CookieName); err == nil {
		tokenString = cookie.Value
	}
	if tokenString == "" {
		return nil
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return g.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	id, ok := IdentityFromClaims(claims)
	if !ok {
		return nil
	}
	return id
}

// Require wraps a handler with the guard decision for a view. The identity
// is re-evaluated on every request; disallowed visitors get a 303 to where
// they belong and next is never called.
func (g *Guard) Require(view View, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := g.Authenticate(r)
		decision := Decide(id, view)
		if !decision.Allow {
			http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, id)
		next(w, r.WithContext(ctx))
	}
}

// SignInURL builds the provider's hosted sign-in entry point.
func (g *Guard) SignInURL() string {
	return fmt.Sprintf("%s/login?client_id=%s&response_type=code&scope=%s&redirect_uri=%s",
		strings.TrimSuffix(g.ProviderDomain, "/"),
		url.QueryEscape(g.ClientID),
		url.QueryEscape("openid email"),
		url.QueryEscape(g.ReturnURL))
}

// SignOutURL builds the provider-side logout redirect. The local session is
// cleared separately; this only forgets the provider's own session.
func (g *Guard) SignOutURL() string {
	return fmt.Sprintf("%s/logout?client_id=%s&logout_uri=%s",
		strings.TrimSuffix(g.ProviderDomain, "/"),
		url.QueryEscape(g.ClientID),
		url.QueryEscape(g.ReturnURL))
}

// ClearCookie expires the session cookie (local sign-out).
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// SetCookie stores the identity token for subsequent requests.
func SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}
