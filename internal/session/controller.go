package session

import (
	"context"
	"log"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// State is the session state machine: Anonymous or Authenticated.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Controller owns the process-wide session state. The state is derived purely
// from token presence: no validity check is made against the auth service, so
// a stale token is only discovered when a later API call fails.
type Controller struct {
	mu       sync.Mutex
	store    TokenStore
	state    State
	token    string
	username string
}

// NewController initializes the controller from the persisted token store.
func NewController(ctx context.Context, store TokenStore) *Controller {
	c := &Controller{store: store, state: Anonymous}

	token, err := store.Load(ctx)
	if err != nil {
		log.Printf("WARN: failed to read persisted session token: %v", err)
		return c
	}
	if token != "" {
		c.state = Authenticated
		c.token = token
	}
	return c
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsAuthenticated reports whether a session token is present.
func (c *Controller) IsAuthenticated() bool {
	return c.State() == Authenticated
}

// Token returns the current session token, or "" when anonymous.
func (c *Controller) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// LoginSucceeded persists the issued token and transitions to Authenticated.
func (c *Controller) LoginSucceeded(ctx context.Context, token, username string) error {
	if err := c.store.Save(ctx, token); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Authenticated
	c.token = token
	c.username = username
	return nil
}

// Logout clears the persisted token and transitions to Anonymous.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Anonymous
	c.token = ""
	c.username = ""
	return nil
}

// Username returns a best-effort display name: the username captured at login,
// or, after a restart, a name decoded from the stored token's claims. The
// decode is unverified and the result is used for display only.
func (c *Controller) Username() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.username != "" {
		return c.username
	}
	if c.token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.token, claims); err != nil {
		return ""
	}
	if name, ok := claims["username"].(string); ok && name != "" {
		return name
	}
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}
