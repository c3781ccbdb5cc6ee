// Package session owns the client's view of who is logged in. The
// Coordinator reconciles the server session with remembered credentials at
// startup and is the only place that changes the session state.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/medmate/internal/client/client"
	"github.com/dmitrijs2005/medmate/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/medmate/internal/logging"
)

type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Snapshot is a read-only copy of the session.
type Snapshot struct {
	State   State
	User    *client.User
	Loading bool
}

// Listener is called with the new snapshot after every transition. It must
// not call back into the Coordinator's mutating methods.
type Listener func(Snapshot)

// AuthAPI is the slice of the backend the Coordinator needs.
type AuthAPI interface {
	CheckAuth(ctx context.Context) (*client.CheckAuthResponse, error)
	Login(ctx context.Context, username, password string, remember bool) (*client.User, error)
	Register(ctx context.Context, username, email, password string) (*client.User, error)
	Logout(ctx context.Context) error
}

type Coordinator struct {
	api    AuthAPI
	store  credentials.Store
	logger logging.Logger

	startOnce sync.Once

	mu        sync.RWMutex
	state     State
	user      *client.User
	loading   bool
	listeners map[int]Listener
	nextID    int
}

func NewCoordinator(api AuthAPI, store credentials.Store, logger logging.Logger) *Coordinator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Coordinator{
		api:       api,
		store:     store,
		logger:    logger,
		state:     StateUnknown,
		loading:   true,
		listeners: make(map[int]Listener),
	}
}

func (c *Coordinator) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

func (c *Coordinator) snapshotLocked() Snapshot {
	s := Snapshot{State: c.state, Loading: c.loading}
	if c.user != nil {
		u := *c.user
		s.User = &u
	}
	return s
}

// Subscribe registers fn and returns a function that removes it.
func (c *Coordinator) Subscribe(fn Listener) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Start settles the initial state. Only the first call does any work; later
// calls wait for it and return the current snapshot. Errors are logged and
// never returned: a failed check or silent login leaves the session
// anonymous.
func (c *Coordinator) Start(ctx context.Context) Snapshot {
	c.startOnce.Do(func() { c.start(ctx) })
	return c.Snapshot()
}

func (c *Coordinator) start(ctx context.Context) {
	status, err := c.api.CheckAuth(ctx)
	if err != nil {
		c.logger.Warn(ctx, "session check failed", "error", err)
	}
	if err == nil && status.Authenticated && status.User != nil {
		c.set(StateAuthenticated, status.User)
		return
	}

	creds, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Warn(ctx, "stored credentials unreadable", "error", err)
		c.erase(ctx)
		c.set(StateAnonymous, nil)
		return
	}
	if creds == nil {
		c.set(StateAnonymous, nil)
		return
	}

	user, err := c.api.Login(ctx, creds.Username, creds.Password, true)
	if err != nil {
		c.logger.Info(ctx, "silent login failed, forgetting stored credentials", "username", creds.Username, "error", err)
		c.erase(ctx)
		c.set(StateAnonymous, nil)
		return
	}
	c.logger.Info(ctx, "silent login succeeded", "username", user.Username)
	c.set(StateAuthenticated, user)
}

// Login authenticates and, when remember is set, persists the credentials
// for the next start. A failure to persist is logged and does not fail the
// login. Without remember, a record kept for a different user is erased so a
// later start cannot bring that user back.
func (c *Coordinator) Login(ctx context.Context, username, password string, remember bool) (*client.User, error) {
	user, err := c.api.Login(ctx, username, password, remember)
	if err != nil {
		return nil, err
	}
	if remember {
		if err := c.store.Save(ctx, credentials.StoredCredentials{Username: username, Password: password}); err != nil {
			c.logger.Warn(ctx, "could not remember credentials", "username", username, "error", err)
		}
	} else {
		c.forgetOthers(ctx, user.Username)
	}
	c.set(StateAuthenticated, user)
	return user, nil
}

// Register authenticates the new account. Nothing is remembered, and a record
// kept for another user is erased as in Login.
func (c *Coordinator) Register(ctx context.Context, username, email, password string) (*client.User, error) {
	user, err := c.api.Register(ctx, username, email, password)
	if err != nil {
		return nil, err
	}
	c.forgetOthers(ctx, user.Username)
	c.set(StateAuthenticated, user)
	return user, nil
}

// forgetOthers erases the stored record unless it belongs to username.
func (c *Coordinator) forgetOthers(ctx context.Context, username string) {
	creds, err := c.store.Load(ctx)
	if err == nil && creds != nil && strings.EqualFold(creds.Username, username) {
		return
	}
	if err == nil && creds == nil {
		return
	}
	c.logger.Info(ctx, "forgetting credentials remembered for another user", "username", username)
	c.erase(ctx)
}

// Logout ends the server session first. If that fails nothing local changes
// and the error is returned.
func (c *Coordinator) Logout(ctx context.Context) error {
	if err := c.api.Logout(ctx); err != nil {
		return err
	}
	c.set(StateAnonymous, nil)
	if err := c.store.Erase(ctx); err != nil {
		return fmt.Errorf("erasing stored credentials: %w", err)
	}
	return nil
}

// Refresh re-reads the server session, e.g. after a purchase changed the
// credit balance. On error the state is left as it was.
func (c *Coordinator) Refresh(ctx context.Context) (Snapshot, error) {
	status, err := c.api.CheckAuth(ctx)
	if err != nil {
		return c.Snapshot(), err
	}
	if status.Authenticated && status.User != nil {
		c.set(StateAuthenticated, status.User)
	} else {
		c.set(StateAnonymous, nil)
	}
	return c.Snapshot(), nil
}

// ClearLocal drops the session and stored credentials without calling the
// server, for when the account itself is gone.
func (c *Coordinator) ClearLocal(ctx context.Context) error {
	c.set(StateAnonymous, nil)
	return c.store.Erase(ctx)
}

// Expire marks the session anonymous when err says the server no longer
// recognises it. It reports whether it did so. Stored credentials are kept.
func (c *Coordinator) Expire(err error) bool {
	if !errors.Is(err, client.ErrUnauthorized) {
		return false
	}
	if c.Snapshot().State != StateAuthenticated {
		return false
	}
	c.set(StateAnonymous, nil)
	return true
}

func (c *Coordinator) erase(ctx context.Context) {
	if err := c.store.Erase(ctx); err != nil {
		c.logger.Error(ctx, "could not erase stored credentials", "error", err)
	}
}

func (c *Coordinator) set(state State, user *client.User) {
	c.mu.Lock()
	c.state = state
	c.user = nil
	if user != nil {
		u := *user
		c.user = &u
	}
	c.loading = false
	snap := c.snapshotLocked()
	listeners := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}
