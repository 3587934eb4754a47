package auth

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var (
	// ErrInvalidCredentials is the generic failure for a wrong username or secret.
	ErrInvalidCredentials = errors.New("username or password is incorrect")
	// ErrTooManyAttempts is returned when a visitor exhausted their login budget.
	ErrTooManyAttempts = errors.New("too many login attempts, try again in a minute")
)

const (
	defaultAttemptsPerMinute = 5

	// An idle client's bucket has refilled long before it is dropped.
	staleClientAfter = 10 * time.Minute
	pruneEvery       = 5 * time.Minute
)

// State is a visitor's position in the gate.
type State int

const (
	Unauthenticated State = iota
	AwaitingCredentials
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case AwaitingCredentials:
		return "awaiting-credentials"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// clientLimiter is one client's login budget and when it was last used.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Gate decides whether a visitor may see the page. Login attempts are budgeted
// per client address, so discarding the session cookie does not reset them.
type Gate struct {
	store  *Store
	perMin int
	now    func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastPrune time.Time
}

// NewGate builds a gate over store. A nil or empty store disables the gate.
func NewGate(store *Store, attemptsPerMinute int) *Gate {
	if attemptsPerMinute <= 0 {
		attemptsPerMinute = defaultAttemptsPerMinute
	}
	return &Gate{
		store:   store,
		perMin:  attemptsPerMinute,
		now:     time.Now,
		clients: make(map[string]*clientLimiter),
	}
}

// allow spends one attempt from client's budget.
func (g *Gate) allow(client string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if now.Sub(g.lastPrune) >= pruneEvery {
		for key, cl := range g.clients {
			if now.Sub(cl.lastSeen) > staleClientAfter {
				delete(g.clients, key)
			}
		}
		g.lastPrune = now
	}

	cl, ok := g.clients[client]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(g.perMin)), g.perMin),
		}
		g.clients[client] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// trackedClients reports how many client budgets are held.
func (g *Gate) trackedClients() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.clients)
}

// Enabled reports whether credentials are required.
func (g *Gate) Enabled() bool {
	return g != nil && g.store.Enabled()
}

// NewAccess starts a visitor at the beginning of the gate, or already
// authenticated when the gate is disabled.
func (g *Gate) NewAccess() *Access {
	a := &Access{state: Unauthenticated}
	if !g.Enabled() {
		a.state = Authenticated
	}
	return a
}

// Submit checks credentials for a, charging the attempt to client. On success
// the visitor is authenticated for the rest of the session; the credentials
// themselves are not kept.
func (g *Gate) Submit(a *Access, client, user, secret string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == Authenticated {
		return nil
	}
	if g.Enabled() && !g.allow(client) {
		a.state = AwaitingCredentials
		return ErrTooManyAttempts
	}
	if !g.Enabled() || !g.store.Verify(user, secret) {
		a.state = AwaitingCredentials
		return ErrInvalidCredentials
	}
	a.state = Authenticated
	return nil
}

// Access is one visitor's progress through the gate.
type Access struct {
	mu    sync.Mutex
	state State
}

// State returns the current gate state.
func (a *Access) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Authenticated is shorthand for State() == Authenticated.
func (a *Access) Authenticated() bool {
	return a.State() == Authenticated
}

// Prompt moves an unauthenticated visitor to awaiting-credentials when the
// login form is shown.
func (a *Access) Prompt() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == Unauthenticated {
		a.state = AwaitingCredentials
	}
}
