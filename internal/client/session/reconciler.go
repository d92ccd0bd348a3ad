package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/edusession/internal/client/api"
	"github.com/dmitrijs2005/edusession/internal/client/hint"
	"github.com/dmitrijs2005/edusession/internal/client/identity"
	"github.com/dmitrijs2005/edusession/internal/client/token"
	"github.com/dmitrijs2005/edusession/internal/logging"
	"github.com/sethvargo/go-retry"
)

type Options struct {
	MountDebounce  time.Duration
	RequestTimeout time.Duration
	PollAttempts   int
	PollInterval   time.Duration
}

func DefaultOptions() Options {
	return Options{
		MountDebounce:  100 * time.Millisecond,
		RequestTimeout: 10 * time.Second,
		PollAttempts:   3,
		PollInterval:   350 * time.Millisecond,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.MountDebounce < 0 {
		o.MountDebounce = 0
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = d.RequestTimeout
	}
	if o.PollAttempts < 1 {
		o.PollAttempts = 1
	}
	if o.PollInterval <= 0 {
		o.PollInterval = d.PollInterval
	}
	return o
}

type Reconciler struct {
	client api.Client
	tokens *token.Store
	hints  *hint.Store
	state  *Store
	log    logging.Logger
	opts   Options

	// mu serialises commits: token, hint and state change together.
	mu sync.Mutex
	// gen is bumped by every user action so older mount checks can tell
	// they have been superseded.
	gen atomic.Uint64
}

func NewReconciler(client api.Client, tokens *token.Store, hints *hint.Store, state *Store, log logging.Logger, opts Options) *Reconciler {
	return &Reconciler{
		client: client,
		tokens: tokens,
		hints:  hints,
		state:  state,
		log:    log.With("component", "reconciler"),
		opts:   opts.normalized(),
	}
}

// State exposes the read-only projection.
func (r *Reconciler) State() *Store {
	return r.state
}

// Optimistic reports the session hint, for the first render only.
func (r *Reconciler) Optimistic(ctx context.Context) bool {
	return r.hints.Present(ctx)
}

// Mount runs the on-start reconciliation. When a user is already published
// it only refreshes the hint. Otherwise it waits MountDebounce and asks the
// server who we are.
func (r *Reconciler) Mount(ctx context.Context) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := newTask(func() {
		r.mu.Lock()
		cancel()
		r.mu.Unlock()
	})

	if cur := r.state.Current(); cur.LoggedIn() {
		r.hints.Mark(ctx)
		r.log.Debug(ctx, "mount: session already resolved", "user_id", cur.User.ID)
		cancel()
		t.finish(cur, false)
		return t
	}

	gen := r.gen.Load()
	go func() {
		defer cancel()

		timer := time.NewTimer(r.opts.MountDebounce)
		select {
		case <-ctx.Done():
			timer.Stop()
			r.log.Debug(ctx, "mount: cancelled before check")
			t.finish(State{}, false)
			return
		case <-timer.C:
		}

		st, applied := r.checkCurrentUser(ctx, gen)
		t.finish(st, applied)
	}()
	return t
}

func (r *Reconciler) checkCurrentUser(ctx context.Context, gen uint64) (State, bool) {
	reqCtx, cancel := context.WithTimeout(ctx, r.opts.RequestTimeout)
	payload, err := r.client.CurrentUser(reqCtx)
	cancel()

	r.mu.Lock()
	defer r.mu.Unlock()

	if ctx.Err() != nil {
		r.log.Debug(ctx, "mount: response dropped, task cancelled")
		return State{}, false
	}
	if r.gen.Load() != gen {
		r.log.Debug(ctx, "mount: response dropped, superseded by user action")
		return State{}, false
	}

	if err != nil {
		if authoritativeNegative(err) {
			r.log.Info(ctx, "current user rejected", "error", err)
			r.tokens.Clear(ctx)
			r.hints.Clear(ctx)
		} else {
			r.log.Warn(ctx, "current user check failed, keeping session hint", "error", err)
		}
		return r.publish(State{Status: Anonymous}), true
	}

	user := identity.ExtractAuthUser(payload)
	if user == nil {
		r.log.Info(ctx, "current user: no identity in response")
		r.tokens.Clear(ctx)
		r.hints.Clear(ctx)
		return r.publish(State{Status: Anonymous}), true
	}

	if tok := identity.ExtractAuthToken(payload); tok != "" {
		r.tokens.Set(ctx, tok)
	}
	r.hints.Mark(ctx)
	r.log.Info(ctx, "session confirmed", "user_id", user.ID)
	return r.publish(State{Status: Authenticated, User: user}), true
}

// Login authenticates with email and password.
func (r *Reconciler) Login(ctx context.Context, email, password string) (*identity.AuthUser, error) {
	gen := r.gen.Add(1)
	payload, err := r.client.Login(ctx, api.LoginRequest{Email: email, Password: password})
	return r.establish(ctx, gen, "Login", payload, err)
}

// Signup creates a student account and signs in.
func (r *Reconciler) Signup(ctx context.Context, req api.SignupRequest) (*identity.AuthUser, error) {
	gen := r.gen.Add(1)
	req.Role = "student"
	payload, err := r.client.Signup(ctx, req)
	return r.establish(ctx, gen, "Signup", payload, err)
}

// GoogleSignup signs in with a profile from the identity-provider popup.
func (r *Reconciler) GoogleSignup(ctx context.Context, req api.GoogleSignupRequest) (*identity.AuthUser, error) {
	gen := r.gen.Add(1)
	payload, err := r.client.GoogleSignup(ctx, req)
	return r.establish(ctx, gen, "Google sign-in", payload, err)
}

// establish turns an auth response into a confirmed session or a rollback.
// Nothing is committed once a later action has bumped the generation.
func (r *Reconciler) establish(ctx context.Context, gen uint64, action string, payload any, err error) (*identity.AuthUser, error) {
	log := r.log.With("action", action)

	if err != nil {
		log.Warn(ctx, "auth request failed", "error", err)
		r.rollback(ctx, gen)
		return nil, &ActionError{Action: action, Message: api.MessageOf(err), Err: err}
	}

	r.installToken(ctx, gen, payload)

	user := identity.ExtractAuthUser(payload)
	if user == nil {
		log.Debug(ctx, "no identity in auth response, polling current user")
		user = r.pollCurrentUser(ctx, gen, log)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gen.Load() != gen {
		log.Info(ctx, "sign-in superseded, nothing published")
		return nil, &ActionError{
			Action:  action,
			Message: action + " was superseded by a newer session change",
			Err:     ErrSuperseded,
		}
	}

	if user == nil {
		log.Warn(ctx, "auth succeeded but no session was established")
		r.clearLocked(ctx)
		return nil, &ActionError{
			Action:  action,
			Message: action + " succeeded but user session was not created",
			Err:     ErrSessionNotCreated,
		}
	}

	r.hints.Mark(ctx)
	r.publish(State{Status: Authenticated, User: user})

	log.Info(ctx, "signed in", "user_id", user.ID)
	return user, nil
}

// installToken stores a token found in payload unless gen is stale.
func (r *Reconciler) installToken(ctx context.Context, gen uint64, payload any) {
	tok := identity.ExtractAuthToken(payload)
	if tok == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen.Load() != gen {
		return
	}
	r.tokens.Set(ctx, tok)
}

// pollCurrentUser retries the current-user check, one attempt at a time.
// It gives up early when gen goes stale.
func (r *Reconciler) pollCurrentUser(ctx context.Context, gen uint64, log logging.Logger) *identity.AuthUser {
	var (
		user    *identity.AuthUser
		attempt int
	)

	backoff := retry.WithMaxRetries(uint64(r.opts.PollAttempts-1), retry.NewConstant(r.opts.PollInterval))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		reqCtx, cancel := context.WithTimeout(ctx, r.opts.RequestTimeout)
		payload, err := r.client.CurrentUser(reqCtx)
		cancel()
		if r.gen.Load() != gen {
			return ErrSuperseded
		}
		if err != nil {
			log.Debug(ctx, "poll attempt failed", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}

		r.installToken(ctx, gen, payload)
		if u := identity.ExtractAuthUser(payload); u != nil {
			user = u
			return nil
		}
		log.Debug(ctx, "poll attempt returned no identity", "attempt", attempt)
		return retry.RetryableError(errNoIdentity)
	})
	if err != nil {
		log.Debug(ctx, "poll stopped", "attempts", attempt, "error", err)
		return nil
	}
	return user
}

// Logout tells the server (best effort) and always ends Anonymous.
func (r *Reconciler) Logout(ctx context.Context) {
	r.gen.Add(1)

	if err := r.client.LogoutPost(ctx); err != nil {
		r.log.Debug(ctx, "logout POST failed, retrying with GET", "error", err)
		if err := r.client.LogoutGet(ctx); err != nil {
			r.log.Warn(ctx, "server logout failed", "error", err)
		}
	}

	ctx = context.WithoutCancel(ctx)
	r.mu.Lock()
	r.clearLocked(ctx)
	r.mu.Unlock()
	r.log.Info(ctx, "logged out")
}

// rollback clears credentials and publishes Anonymous, unless a later action
// owns the session by now. Local clean-up runs even when ctx is done.
func (r *Reconciler) rollback(ctx context.Context, gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gen.Load() != gen {
		r.log.Debug(ctx, "rollback skipped, superseded")
		return
	}
	r.clearLocked(ctx)
}

// clearLocked must be called with r.mu held.
func (r *Reconciler) clearLocked(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	r.tokens.Clear(ctx)
	r.hints.Clear(ctx)
	r.publish(State{Status: Anonymous})
}

func (r *Reconciler) publish(st State) State {
	r.state.set(st)
	return st
}

// authoritativeNegative: 401, 403 and 503 on the identity check mean "not
// signed in". 503 is included on purpose; other 5xx stay ambiguous.
func authoritativeNegative(err error) bool {
	if errors.Is(err, api.ErrUnauthorized) {
		return true
	}
	code, ok := api.StatusOf(err)
	return ok && code == http.StatusServiceUnavailable
}
