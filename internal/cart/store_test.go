package cart

import (
	"testing"

	"futur-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, price int64, qty int) domain.LineItem {
	return domain.LineItem{
		ID:        id,
		Name:      "Jacket " + id,
		UnitPrice: decimal.NewFromInt(price),
		Quantity:  qty,
	}
}

func assertTotal(t *testing.T, s *Store, want string) {
	t.Helper()
	assert.True(t, s.Total().Equal(decimal.RequireFromString(want)), "total = %s, want %s", s.Total(), want)
}

func TestStoreScenario(t *testing.T) {
	s := NewStore(nil)

	// empty cart, add one
	require.NoError(t, s.AddItem(item("j1", 199, 1)))
	assertTotal(t, s, "199")
	assert.Equal(t, 1, s.ItemCount())

	// same id again merges into one line
	require.NoError(t, s.AddItem(item("j1", 199, 2)))
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "j1", items[0].ID)
	assert.Equal(t, 3, items[0].Quantity)
	assertTotal(t, s, "597")

	s.UpdateQuantity("j1", 1)
	got, ok := s.Item("j1")
	require.True(t, ok)
	assert.Equal(t, 1, got.Quantity)
	assertTotal(t, s, "199")

	s.RemoveItem("j1")
	assert.Empty(t, s.Items())
	assertTotal(t, s, "0")
	assert.Equal(t, 0, s.ItemCount())
}

func TestStore_AddItem(t *testing.T) {
	t.Run("twice with quantity one yields quantity two", func(t *testing.T) {
		s := NewStore(nil)
		require.NoError(t, s.AddItem(item("a", 10, 1)))
		require.NoError(t, s.AddItem(item("a", 10, 1)))

		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("merge keeps the first unit price", func(t *testing.T) {
		s := NewStore(nil)
		require.NoError(t, s.AddItem(item("a", 10, 1)))
		require.NoError(t, s.AddItem(item("a", 99, 1)))

		got, _ := s.Item("a")
		assert.True(t, got.UnitPrice.Equal(decimal.NewFromInt(10)))
		assertTotal(t, s, "20")
	})

	t.Run("missing quantity counts as one", func(t *testing.T) {
		s := NewStore(nil)
		require.NoError(t, s.AddItem(item("a", 10, 0)))
		require.NoError(t, s.AddItem(item("a", 10, -4)))

		got, _ := s.Item("a")
		assert.Equal(t, 2, got.Quantity)
	})

	t.Run("new ids append in insertion order", func(t *testing.T) {
		s := NewStore(nil)
		for _, id := range []string{"c", "a", "b"} {
			require.NoError(t, s.AddItem(item(id, 1, 1)))
		}
		require.NoError(t, s.AddItem(item("a", 1, 1)))

		var ids []string
		for _, it := range s.Items() {
			ids = append(ids, it.ID)
		}
		assert.Equal(t, []string{"c", "a", "b"}, ids)
	})

	t.Run("rejects invalid items", func(t *testing.T) {
		s := NewStore(nil)
		assert.ErrorIs(t, s.AddItem(item("", 10, 1)), domain.ErrInvalidLineItem)
		assert.ErrorIs(t, s.AddItem(item("x", -1, 1)), domain.ErrInvalidLineItem)
		assert.Empty(t, s.Items())
	})
}

func TestStore_AddThenRemoveReturnsToEmpty(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.AddItem(item("x", 42, 3)))
	s.RemoveItem("x")

	assert.Empty(t, s.Items())
	assertTotal(t, s, "0")
}

func TestStore_ReAddedItemMovesToEnd(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.AddItem(item("a", 1, 1)))
	require.NoError(t, s.AddItem(item("b", 1, 1)))
	s.RemoveItem("a")
	require.NoError(t, s.AddItem(item("a", 1, 1)))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
}

func TestStore_UpdateQuantity(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		q       int
		wantLen int
		wantQty int
	}{
		{name: "zero removes", id: "a", q: 0, wantLen: 0},
		{name: "negative removes", id: "a", q: -1, wantLen: 0},
		{name: "sets exact quantity", id: "a", q: 7, wantLen: 1, wantQty: 7},
		{name: "unknown id is a no-op", id: "missing", q: 5, wantLen: 1, wantQty: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(nil)
			require.NoError(t, s.AddItem(item("a", 5, 2)))

			s.UpdateQuantity(tt.id, tt.q)

			items := s.Items()
			require.Len(t, items, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantQty, items[0].Quantity)
			}
		})
	}
}

func TestStore_RemoveUnknownIsNoop(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.AddItem(item("a", 5, 1)))
	s.RemoveItem("zzz")
	assert.Len(t, s.Items(), 1)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore([]domain.LineItem{item("a", 5, 1), item("b", 7, 2)})
	s.Clear()

	assert.Empty(t, s.Items())
	assertTotal(t, s, "0")
	assert.Equal(t, 0, s.ItemCount())
}

func TestStore_NotifiesEveryMutation(t *testing.T) {
	rec := &recorder{}
	s := NewStore([]domain.LineItem{item("seed", 1, 1)}, rec)
	assert.Empty(t, rec.calls, "seeding must not notify")

	require.NoError(t, s.AddItem(item("a", 5, 1)))
	s.UpdateQuantity("a", 4)
	s.RemoveItem("seed")
	s.UpdateQuantity("missing", 2)
	s.Clear()

	require.Len(t, rec.calls, 5)
	assert.Len(t, rec.calls[0], 2)
	assert.Equal(t, 4, rec.calls[1][1].Quantity)
	assert.Len(t, rec.calls[2], 1)
	assert.Len(t, rec.calls[3], 1)
	assert.Empty(t, rec.calls[4])
}

func TestStore_SetOpenDoesNotNotify(t *testing.T) {
	rec := &recorder{}
	s := NewStore(nil, rec)

	s.SetOpen(true)

	assert.True(t, s.IsOpen())
	assert.True(t, s.View().IsOpen)
	assert.Empty(t, rec.calls)
}

func TestStore_SnapshotsAreIsolated(t *testing.T) {
	cfg := domain.JacketConfiguration{Style: "bomber", Material: "leather", Size: "L"}
	it := item("jacket-bomber-1", 259, 1)
	it.Configuration = domain.NewJacketConfiguration(cfg)

	s := NewStore(nil)
	require.NoError(t, s.AddItem(it))

	items := s.Items()
	items[0].Quantity = 99
	items[0].Configuration.Jacket.Size = "XS"

	got, _ := s.Item("jacket-bomber-1")
	assert.Equal(t, 1, got.Quantity)
	assert.Equal(t, domain.SizeCode("L"), got.Configuration.Jacket.Size)
}

func TestStore_View(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.AddItem(item("a", 10, 2)))
	require.NoError(t, s.AddItem(domain.LineItem{ID: "b", UnitPrice: decimal.RequireFromString("0.35"), Quantity: 3}))

	v := s.View()
	assert.Len(t, v.Items, 2)
	assert.Equal(t, 5, v.ItemCount)
	assert.True(t, v.Total.Equal(decimal.RequireFromString("21.05")))
	assert.False(t, v.IsOpen)
}

func TestStore_AddItemWithin(t *testing.T) {
	rec := &recorder{}
	s := NewStore(nil, rec)

	require.NoError(t, s.AddItemWithin(item("a", 10, 3), 5))
	require.NoError(t, s.AddItemWithin(item("a", 10, 2), 5))

	err := s.AddItemWithin(item("a", 10, 1), 5)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	got, _ := s.Item("a")
	assert.Equal(t, 5, got.Quantity)
	assert.Len(t, rec.calls, 2, "rejected add does not notify")

	assert.ErrorIs(t, s.AddItemWithin(item("b", 10, 6), 5), domain.ErrInvalidQuantity)
	_, ok := s.Item("b")
	assert.False(t, ok)
}

func TestStore_DeductKeepsLinesAddedAfterSnapshot(t *testing.T) {
	rec := &recorder{}
	s := NewStore([]domain.LineItem{item("a", 10, 2), item("b", 5, 1)}, rec)
	ordered := s.Items()

	// mutations racing the checkout
	require.NoError(t, s.AddItem(item("a", 10, 1)))
	require.NoError(t, s.AddItem(item("c", 7, 1)))
	rec.calls = nil

	s.Deduct(ordered)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "c", items[1].ID)
	assertTotal(t, s, "17")
	assert.Len(t, rec.calls, 1, "deduct notifies once")
}

func TestStore_DeductRemovesLinesReducedMeanwhile(t *testing.T) {
	s := NewStore([]domain.LineItem{item("a", 10, 3)})
	ordered := s.Items()

	s.UpdateQuantity("a", 1)
	s.Deduct(ordered)
	s.Deduct([]domain.LineItem{item("gone", 1, 1)})

	assert.Empty(t, s.Items())
}
