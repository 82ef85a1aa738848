package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZairBalam/soundshop/internal/cart"
	"github.com/ZairBalam/soundshop/internal/catalog"
	"github.com/ZairBalam/soundshop/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func testLines() []cart.Line {
	return []cart.Line{
		{
			Product:  catalog.Product{ID: "g1", Name: "Player Stratocaster", Brand: "Fender", Price: 1000, Stock: 3, Images: []string{"a.jpg"}, Tags: []string{"electric"}},
			Quantity: 2,
		},
	}
}

func testTotals() cart.Totals {
	return cart.Totals{Subtotal: 2000, Tax: 320, Shipping: 149, Total: 2469}
}

func testAddress() Address {
	return Address{Name: "Ana Reyes", Phone: "5551234567", Street: "Av. Sonora 120", City: "CDMX", PostalCode: "06700"}
}

func TestPlace_CreatesPendingOrderAndAppendsHistory(t *testing.T) {
	l := NewLedger(newTestStore(t))

	before := len(l.History())

	ord, err := l.Place(testLines(), testTotals(), testAddress())
	require.NoError(t, err)

	assert.NotEmpty(t, ord.ID)
	assert.Equal(t, StatusPending, ord.Status)
	assert.False(t, ord.CreatedAt.IsZero())
	assert.Equal(t, testTotals(), ord.Totals)
	assert.Equal(t, testAddress(), ord.Address)

	history := l.History()
	require.Len(t, history, before+1)
	assert.Equal(t, ord.ID, history[0].ID)
}

func TestPlace_SnapshotIsImmuneToLaterMutation(t *testing.T) {
	l := NewLedger(newTestStore(t))

	lines := testLines()
	ord, err := l.Place(lines, testTotals(), testAddress())
	require.NoError(t, err)

	lines[0].Quantity = 99
	lines[0].Product.Price = 1
	lines[0].Product.Tags[0] = "mutated"

	history := l.History()
	require.Len(t, history, 1)
	assert.Equal(t, 2, history[0].Lines[0].Quantity)
	assert.Equal(t, 1000.0, history[0].Lines[0].Product.Price)
	assert.Equal(t, "electric", history[0].Lines[0].Product.Tags[0])
	assert.Equal(t, ord.ID, history[0].ID)
}

func TestHistory_ReturnsDetachedCopies(t *testing.T) {
	l := NewLedger(newTestStore(t))

	_, err := l.Place(testLines(), testTotals(), testAddress())
	require.NoError(t, err)

	history := l.History()
	require.Len(t, history, 1)
	history[0].Lines[0].Quantity = 99
	history[0].Lines[0].Product.Tags[0] = "mutated"

	again := l.History()
	assert.Equal(t, 2, again[0].Lines[0].Quantity)
	assert.Equal(t, "electric", again[0].Lines[0].Product.Tags[0])
}

func TestHistory_MostRecentFirst(t *testing.T) {
	l := NewLedger(newTestStore(t))
	ids := []string{"first", "second", "third"}
	i := 0
	l.newID = func() string { id := ids[i]; i++; return id }

	for range ids {
		_, err := l.Place(testLines(), testTotals(), testAddress())
		require.NoError(t, err)
	}

	history := l.History()
	require.Len(t, history, 3)
	assert.Equal(t, "third", history[0].ID)
	assert.Equal(t, "second", history[1].ID)
	assert.Equal(t, "first", history[2].ID)
}

func TestLedger_PersistenceRoundTrip(t *testing.T) {
	st := newTestStore(t)

	l := NewLedger(st)
	l.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }
	ord, err := l.Place(testLines(), testTotals(), testAddress())
	require.NoError(t, err)

	restored := NewLedger(st)
	history := restored.History()
	require.Len(t, history, 1)
	assert.Equal(t, ord.ID, history[0].ID)
	assert.Equal(t, ord.Totals, history[0].Totals)
	assert.True(t, ord.CreatedAt.Equal(history[0].CreatedAt))
	require.Len(t, history[0].Lines, 1)
	assert.Equal(t, "g1", history[0].Lines[0].Product.ID)
}

func TestNewLedger_CorruptStateStartsEmpty(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Set("soundshop_orders", "[{broken"))

	l := NewLedger(st)
	assert.Empty(t, l.History())
}
