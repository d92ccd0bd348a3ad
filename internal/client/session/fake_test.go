package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/edusession/internal/client/api"
	"github.com/dmitrijs2005/edusession/internal/client/hint"
	"github.com/dmitrijs2005/edusession/internal/client/identity"
	"github.com/dmitrijs2005/edusession/internal/client/storage"
	"github.com/dmitrijs2005/edusession/internal/client/token"
	"github.com/dmitrijs2005/edusession/internal/logging"
	"github.com/stretchr/testify/require"
)

type response struct {
	payload any
	err     error
}

// fakeClient implements api.Client with scripted responses.
type fakeClient struct {
	mu sync.Mutex

	// current is consumed in order; the last entry repeats.
	current      []response
	currentCalls int
	// started receives once per CurrentUser call, release gates its return.
	started chan struct{}
	release chan struct{}
	// authSeen records the Authorization header at each CurrentUser call.
	authSeen []string
	headers  *api.Headers

	login      response
	signup     response
	google     response
	lastSignup api.SignupRequest
	lastLogin  api.LoginRequest

	logoutPostErr error
	logoutGetErr  error
	logoutCalls   []string
}

func (f *fakeClient) CurrentUser(ctx context.Context) (any, error) {
	f.mu.Lock()
	f.currentCalls++
	if f.headers != nil {
		f.authSeen = append(f.authSeen, f.headers.Get(token.AuthorizationHeader))
	}
	var r response
	if len(f.current) > 0 {
		r = f.current[0]
		if len(f.current) > 1 {
			f.current = f.current[1:]
		}
	}
	started, release := f.started, f.release
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	return r.payload, r.err
}

func (f *fakeClient) Login(_ context.Context, req api.LoginRequest) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLogin = req
	return f.login.payload, f.login.err
}

func (f *fakeClient) Signup(_ context.Context, req api.SignupRequest) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSignup = req
	return f.signup.payload, f.signup.err
}

func (f *fakeClient) GoogleSignup(_ context.Context, _ api.GoogleSignupRequest) (any, error) {
	return f.google.payload, f.google.err
}

func (f *fakeClient) LogoutPost(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls = append(f.logoutCalls, "POST")
	return f.logoutPostErr
}

func (f *fakeClient) LogoutGet(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls = append(f.logoutCalls, "GET")
	return f.logoutGetErr
}

func (f *fakeClient) Ping(context.Context) error { return nil }

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.currentCalls
}

type harness struct {
	client  *fakeClient
	kv      *storage.MemoryKV
	headers *api.Headers
	tokens  *token.Store
	hints   *hint.Store
	state   *Store
	rec     *Reconciler
}

func testOptions() Options {
	return Options{
		MountDebounce:  time.Millisecond,
		RequestTimeout: time.Second,
		PollAttempts:   3,
		PollInterval:   5 * time.Millisecond,
	}
}

func newHarness(t *testing.T, client *fakeClient, opts Options) *harness {
	t.Helper()
	kv := storage.NewMemoryKV()
	headers := api.NewHeaders()
	client.headers = headers
	log := logging.Discard()

	h := &harness{
		client:  client,
		kv:      kv,
		headers: headers,
		tokens:  token.NewStore(kv, headers, log),
		hints:   hint.NewStore(kv, log),
		state:   NewStore(),
	}
	h.rec = NewReconciler(client, h.tokens, h.hints, h.state, log, opts)
	return h
}

func (h *harness) waitMount(t *testing.T, task *Task) (State, bool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	st, applied, err := task.Wait(ctx)
	require.NoError(t, err)
	return st, applied
}

func obj(s string) any {
	v, err := identity.Decode([]byte(s))
	if err != nil {
		panic(err)
	}
	return v
}
