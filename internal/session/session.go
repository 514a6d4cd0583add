// Package session answers "is there an authenticated admin on this request?".
// Sessions are issued by the external auth service as HS256 access tokens;
// this package only verifies them.
package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the authenticated admin behind a request.
type Session struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// Provider resolves the session of a request, if any.
type Provider interface {
	CurrentSession(r *http.Request) (Session, bool)
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by NewContext, if any.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTProvider reads an access token from the Authorization bearer header or,
// failing that, from a cookie, and verifies it with a shared secret.
type JWTProvider struct {
	secret []byte
	cookie string
}

// NewJWTProvider returns a Provider verifying tokens signed with secret.
// cookie is the name of the cookie checked when no bearer header is present.
func NewJWTProvider(secret, cookie string) *JWTProvider {
	return &JWTProvider{secret: []byte(secret), cookie: cookie}
}

// CurrentSession returns the session for a valid, unexpired token with a subject.
func (p *JWTProvider) CurrentSession(r *http.Request) (Session, bool) {
	raw := tokenFrom(r, p.cookie)
	if raw == "" {
		return Session{}, false
	}

	c := &claims{}
	_, err := jwt.ParseWithClaims(raw, c, func(*jwt.Token) (any, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || c.Subject == "" {
		return Session{}, false
	}

	s := Session{UserID: c.Subject, Email: c.Email}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s, true
}

// Issue signs a token for userID valid for ttl. The auth service normally
// does this; it is used by the dev tooling and tests.
func (p *JWTProvider) Issue(userID, email string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("session.JWTProvider.Issue: user id is required")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(p.secret)
}

func tokenFrom(r *http.Request, cookie string) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie == "" {
		return ""
	}
	if c, err := r.Cookie(cookie); err == nil {
		return c.Value
	}
	return ""
}
