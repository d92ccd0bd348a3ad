package identity

import "strings"

// Strategy locates one identity-envelope candidate inside a payload object.
type Strategy struct {
	Name   string
	Locate func(payload map[string]any) any
}

// Strategies lists the envelopes in priority order. Earlier entries win even
// when a later one would also match.
var Strategies = []Strategy{
	{Name: "bare", Locate: func(p map[string]any) any { return p }},
	{Name: "user", Locate: func(p map[string]any) any { return p["user"] }},
	{Name: "data", Locate: func(p map[string]any) any { return p["data"] }},
	{Name: "data.user", Locate: func(p map[string]any) any { return field(p["data"], "user") }},
	{Name: "result", Locate: func(p map[string]any) any { return p["result"] }},
	{Name: "result.user", Locate: func(p map[string]any) any { return field(p["result"], "user") }},
}

var tokenKeys = []string{"token", "accessToken", "access_token"}

// tokenEnvelopes are searched in order for one of tokenKeys.
var tokenEnvelopes = []func(p map[string]any) any{
	func(p map[string]any) any { return p },
	func(p map[string]any) any { return p["data"] },
	func(p map[string]any) any { return p["result"] },
	func(p map[string]any) any { return p["user"] },
	func(p map[string]any) any { return field(p["data"], "user") },
	func(p map[string]any) any { return field(p["result"], "user") },
}

// ExtractAuthUser returns the first envelope candidate that is an object with
// a resolvable id, or nil.
func ExtractAuthUser(payload any) *AuthUser {
	user, _ := Match(payload)
	return user
}

// Match is ExtractAuthUser that also reports which strategy matched.
func Match(payload any) (*AuthUser, string) {
	p, ok := object(payload)
	if !ok {
		return nil, ""
	}
	for _, s := range Strategies {
		candidate, ok := object(s.Locate(p))
		if !ok {
			continue
		}
		if user := newAuthUser(candidate); user != nil {
			return user, s.Name
		}
	}
	return nil, ""
}

// ExtractAuthToken returns a trimmed bearer token from the usual envelope
// locations, or "" when none is present.
func ExtractAuthToken(payload any) string {
	p, ok := object(payload)
	if !ok {
		return ""
	}
	for _, locate := range tokenEnvelopes {
		env, ok := object(locate(p))
		if !ok {
			continue
		}
		for _, k := range tokenKeys {
			s, _ := env[k].(string)
			if tok := normalizeToken(s); tok != "" {
				return tok
			}
		}
	}
	return ""
}

func normalizeToken(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 7 && strings.EqualFold(s[:7], "bearer ") {
		s = strings.TrimSpace(s[7:])
	}
	return s
}

// object reports whether v is a JSON object (arrays and scalars are not).
func object(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

func field(v any, key string) any {
	m, ok := object(v)
	if !ok {
		return nil
	}
	return m[key]
}
