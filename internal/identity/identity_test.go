package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZairBalam/soundshop/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestRegister_SignsInAndPersists(t *testing.T) {
	st := newTestStore(t)
	l := NewLedger(st)

	require.NoError(t, l.Register("a@x.com", "p", "A"))

	assert.True(t, l.IsAuthenticated())
	user, ok := l.Current()
	require.True(t, ok)
	assert.Equal(t, Identity{Email: "a@x.com", Name: "A"}, user)

	restored := NewLedger(st)
	user, ok = restored.Current()
	require.True(t, ok)
	assert.Equal(t, "a@x.com", user.Email)
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	l := NewLedger(newTestStore(t))

	require.NoError(t, l.Register("a@x.com", "p", "A"))
	err := l.Register("a@x.com", "p2", "B")
	require.ErrorIs(t, err, ErrAlreadyExists)

	// first identity must be unchanged
	require.NoError(t, l.Logout())
	require.NoError(t, l.Login("a@x.com", "p"))
	user, _ := l.Current()
	assert.Equal(t, "A", user.Name)
}

func TestLogin_ExactMatchRequired(t *testing.T) {
	l := NewLedger(newTestStore(t))
	require.NoError(t, l.Register("a@x.com", "p", "A"))
	require.NoError(t, l.Logout())

	require.ErrorIs(t, l.Login("a@x.com", "wrong"), ErrInvalidCredentials)
	assert.False(t, l.IsAuthenticated())

	require.ErrorIs(t, l.Login("A@x.com", "p"), ErrInvalidCredentials)

	require.NoError(t, l.Login("a@x.com", "p"))
	assert.True(t, l.IsAuthenticated())
}

func TestLogin_FailureLeavesSessionUntouched(t *testing.T) {
	l := NewLedger(newTestStore(t))
	require.NoError(t, l.Register("a@x.com", "p", "A"))

	require.ErrorIs(t, l.Login("a@x.com", "wrong"), ErrInvalidCredentials)

	user, ok := l.Current()
	require.True(t, ok, "failed login must not clear the session")
	assert.Equal(t, "a@x.com", user.Email)
}

func TestLogout_ClearsSessionKeepsRegistry(t *testing.T) {
	st := newTestStore(t)
	l := NewLedger(st)
	require.NoError(t, l.Register("a@x.com", "p", "A"))

	require.NoError(t, l.Logout())
	assert.False(t, l.IsAuthenticated())

	restored := NewLedger(st)
	assert.False(t, restored.IsAuthenticated())
	require.NoError(t, restored.Login("a@x.com", "p"))
}

func TestNewLedger_CorruptSessionStartsAnonymous(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Set("soundshop_user", "{oops"))

	l := NewLedger(st)
	assert.False(t, l.IsAuthenticated())
}
