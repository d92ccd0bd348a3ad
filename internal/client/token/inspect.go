package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Info is what can be read from a JWT bearer token without verifying it.
type Info struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that is before now.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// Inspect decodes the claims of a JWT without checking its signature. The
// result is for display only; the server stays the authority. ok is false for
// opaque (non-JWT) tokens.
func Inspect(raw string) (Info, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return Info{}, false
	}

	var info Info
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if info.Subject == "" {
		for _, k := range []string{"id", "_id", "userId"} {
			if s, ok := claims[k].(string); ok && s != "" {
				info.Subject = s
				break
			}
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, true
}
