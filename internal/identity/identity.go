// Package identity manages the registered-user registry and the single
// active session, both persisted through the store. Secrets are compared
// verbatim; this is a simulated sign-in, not an authentication system.
package identity

import (
	"errors"
	"sync"

	"github.com/ZairBalam/soundshop/internal/store"
)

const (
	registryKey = "soundshop_users"
	sessionKey  = "soundshop_user"
)

var (
	ErrAlreadyExists      = errors.New("identity already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Identity is the public view of a signed-in user.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type record struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
	Name   string `json:"name"`
}

type Ledger struct {
	mu      sync.Mutex
	store   *store.Store
	current *Identity
}

// NewLedger restores the session pointer from the store; an absent or
// corrupt pointer starts the ledger anonymous.
func NewLedger(st *store.Store) *Ledger {
	l := &Ledger{store: st}
	var saved Identity
	if st.GetJSON(sessionKey, &saved) && saved.Email != "" {
		l.current = &saved
	}
	return l
}

// Register appends a new identity and signs it in. Duplicate emails are
// rejected with ErrAlreadyExists; the email match is case-sensitive.
func (l *Ledger) Register(email, secret, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.registry()
	for _, r := range records {
		if r.Email == email {
			return ErrAlreadyExists
		}
	}

	records = append(records, record{Email: email, Secret: secret, Name: name})
	if err := l.store.SetJSON(registryKey, records); err != nil {
		return err
	}
	return l.setSession(Identity{Email: email, Name: name})
}

// Login matches the exact (email, secret) pair against the registry. On
// mismatch the current session, whatever it is, is left untouched.
func (l *Ledger) Login(email, secret string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, r := range l.registry() {
		if r.Email == email && r.Secret == secret {
			return l.setSession(Identity{Email: r.Email, Name: r.Name})
		}
	}
	return ErrInvalidCredentials
}

// Logout clears the session pointer. The registry is untouched.
func (l *Ledger) Logout() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = nil
	return l.store.Remove(sessionKey)
}

func (l *Ledger) Current() (Identity, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return Identity{}, false
	}
	return *l.current, true
}

func (l *Ledger) IsAuthenticated() bool {
	_, ok := l.Current()
	return ok
}

func (l *Ledger) registry() []record {
	var records []record
	l.store.GetJSON(registryKey, &records)
	return records
}

func (l *Ledger) setSession(id Identity) error {
	if err := l.store.SetJSON(sessionKey, id); err != nil {
		return err
	}
	l.current = &id
	return nil
}
