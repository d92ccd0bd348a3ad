package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/edusession/internal/client/api"
	"github.com/dmitrijs2005/edusession/internal/client/identity"
	"github.com/dmitrijs2005/edusession/internal/client/session"
	"github.com/dmitrijs2005/edusession/internal/client/storage"
	"github.com/dmitrijs2005/edusession/internal/client/token"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errResetUnsupported = errors.New("storage cannot be reset")

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	user, err := a.recon.Login(ctx, email, string(password))
	return a.report(ctx, user, err)
}

// Signup registers a student account and signs in.
func (a *App) Signup(ctx context.Context) error {
	req := api.SignupRequest{}

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Enter name", &req.Name},
		{"Enter email", &req.Email},
		{"Enter class", &req.Class},
		{"Enter branch", &req.Branch},
		{"Enter subject", &req.Subject},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.label, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)
	req.Password = string(password)

	user, err := a.recon.Signup(ctx, req)
	return a.report(ctx, user, err)
}

// Google signs in with an identity-provider profile. A terminal has no
// popup, so the profile fields are typed in.
func (a *App) Google(ctx context.Context) error {
	req := api.GoogleSignupRequest{}

	name, err := getSimpleText(a.reader, "Enter Google display name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter Google email", a.out)
	if err != nil {
		return err
	}
	photo, err := getSimpleText(a.reader, "Enter photo URL (optional)", a.out)
	if err != nil {
		return err
	}
	req.Name, req.Email, req.PhotoURL = name, email, photo

	user, err := a.recon.GoogleSignup(ctx, req)
	return a.report(ctx, user, err)
}

func (a *App) Logout(ctx context.Context) error {
	a.recon.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the published identity and what the stored token claims.
func (a *App) WhoAmI(ctx context.Context) error {
	st := a.recon.State().Current()
	switch st.Status {
	case session.Unknown:
		fmt.Fprintln(a.out, "Session is still being checked.")
		return nil
	case session.Anonymous:
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	u := st.User
	fmt.Fprintf(a.out, "ID:    %s\n", u.ID)
	if v := u.Name(); v != "" {
		fmt.Fprintf(a.out, "Name:  %s\n", v)
	}
	if v := u.Email(); v != "" {
		fmt.Fprintf(a.out, "Email: %s\n", v)
	}
	if v := u.Role(); v != "" {
		fmt.Fprintf(a.out, "Role:  %s\n", v)
	}

	raw := a.tokens.Get(ctx)
	if raw == "" {
		fmt.Fprintln(a.out, "Token: none (cookie session)")
		return nil
	}
	if !a.tokens.Armed() {
		fmt.Fprintln(a.out, "Token: stored but not sent with requests")
	}
	info, ok := token.Inspect(raw)
	if !ok {
		fmt.Fprintln(a.out, "Token: opaque")
		return nil
	}
	if info.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "Token: subject %s, no expiry\n", info.Subject)
		return nil
	}
	state := "valid"
	if info.Expired(time.Now()) {
		state = "expired"
	}
	fmt.Fprintf(a.out, "Token: subject %s, %s until %s\n", info.Subject, state, info.ExpiresAt.Local().Format(time.RFC1123))
	return nil
}

// Reset logs out and wipes the local store, listing the keys it held.
func (a *App) Reset(ctx context.Context) error {
	r, ok := a.kv.(storage.Resettable)
	if !ok {
		fmt.Fprintln(a.out, "Local storage cannot be reset.")
		return errResetUnsupported
	}

	keys, err := r.Keys(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	if len(keys) == 0 {
		fmt.Fprintln(a.out, "Local storage is empty.")
	} else {
		fmt.Fprintln(a.out, "Stored keys:", strings.Join(keys, ", "))
	}

	a.recon.Logout(ctx)
	if err := r.Clear(ctx); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}
	fmt.Fprintln(a.out, "Local session data cleared.")
	return nil
}

func (a *App) report(ctx context.Context, user *identity.AuthUser, err error) error {
	if err != nil {
		var ae *session.ActionError
		switch {
		case !errors.As(err, &ae):
			fmt.Fprintln(a.out, "Error:", err)
		case errors.Is(err, session.ErrSessionNotCreated), errors.Is(err, session.ErrSuperseded):
			fmt.Fprintln(a.out, ae.Message)
		default:
			fmt.Fprintf(a.out, "%s failed: %s\n", ae.Action, ae.Message)
		}
		a.log.Debug(ctx, "auth command failed", "error", err)
		return err
	}

	name := user.Name()
	if name == "" {
		name = user.ID
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", name)
	return nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
