package identity

import (
	"bytes"
	"encoding/json"
	"maps"
	"strconv"
	"strings"
)

// idKeys are checked in order; the first non-empty one wins.
var idKeys = []string{"_id", "id", "userId"}

// AuthUser is a normalised identity record. It is only ever built from a
// payload whose id resolved, so a non-nil *AuthUser always has a non-empty ID.
type AuthUser struct {
	ID     string
	Fields map[string]any
}

// Get returns a pass-through field as received from the server.
func (u *AuthUser) Get(key string) (any, bool) {
	if u == nil {
		return nil, false
	}
	v, ok := u.Fields[key]
	return v, ok
}

// String returns a pass-through field when it is a JSON string.
func (u *AuthUser) String(key string) string {
	v, ok := u.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (u *AuthUser) Name() string     { return u.String("name") }
func (u *AuthUser) Email() string    { return u.String("email") }
func (u *AuthUser) Role() string     { return u.String("role") }
func (u *AuthUser) PhotoURL() string { return u.String("photoUrl") }

// Decode parses a response body. Numbers stay json.Number so ids are not
// mangled by float conversion. An empty body decodes to nil.
func Decode(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// newAuthUser builds an AuthUser from an object, or returns nil when no id resolves.
func newAuthUser(obj map[string]any) *AuthUser {
	id := resolveID(obj)
	if id == "" {
		return nil
	}
	return &AuthUser{ID: id, Fields: maps.Clone(obj)}
}

func resolveID(obj map[string]any) string {
	for _, k := range idKeys {
		if id := scalarString(obj[k]); id != "" {
			return id
		}
	}
	return ""
}

// scalarString renders a truthy string or number id; anything else is "".
func scalarString(v any) string {
	switch value := v.(type) {
	case string:
		return strings.TrimSpace(value)
	case json.Number:
		f, err := value.Float64()
		if err != nil || f == 0 {
			return ""
		}
		return value.String()
	case float64:
		if value == 0 {
			return ""
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		if value == 0 {
			return ""
		}
		return strconv.Itoa(value)
	case int64:
		if value == 0 {
			return ""
		}
		return strconv.FormatInt(value, 10)
	default:
		return ""
	}
}
