package cart

import (
	"context"
	"testing"
	"time"

	"futur-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "cart", KeyFor(""))
	assert.Equal(t, "cart:abc", KeyFor("abc"))
}

func TestCodec_RoundTrip(t *testing.T) {
	jacket := item("jacket-cyber-0a1b2c3d4e5f", 0, 2)
	jacket.UnitPrice = decimal.RequireFromString("379.00")
	jacket.Image = "/images/jackets/cyber-preview.jpg"
	jacket.Configuration = domain.NewJacketConfiguration(domain.JacketConfiguration{
		Style:     "cyber",
		Material:  "latex",
		Size:      "L",
		Color:     "#101010",
		TextColor: "#ff00ff",
		BackText:  "NEON",
		Serial:    "CX-0042",
	})
	original := []domain.LineItem{item("1", 349, 1), jacket, {ID: "cheap", UnitPrice: decimal.RequireFromString("0.10"), Quantity: 12}}

	data, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, decoded, len(original))
	for i := range original {
		assert.True(t, original[i].Equal(decoded[i]), "item %d differs: %+v vs %+v", i, original[i], decoded[i])
	}
}

func TestEncode_EmptyCart(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{{{`},
		{name: "object instead of list", data: `{"id":"a"}`},
		{name: "null", data: `null`},
		{name: "missing id", data: `[{"name":"x","unitPrice":"1","quantity":1}]`},
		{name: "zero quantity", data: `[{"id":"a","unitPrice":"1","quantity":0}]`},
		{name: "negative price", data: `[{"id":"a","unitPrice":"-5","quantity":1}]`},
		{name: "duplicate ids", data: `[{"id":"a","unitPrice":"1","quantity":1},{"id":"a","unitPrice":"1","quantity":2}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.ErrorIs(t, err, domain.ErrDeserialization)
		})
	}
}

func TestDecode_AcceptsNumericPrices(t *testing.T) {
	items, err := Decode([]byte(`[{"id":"a","name":"A","unitPrice":199,"quantity":2}]`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Subtotal().Equal(decimal.NewFromInt(398)))
}

func TestPersister_WritesEveryMutation(t *testing.T) {
	kv := newMemKV()
	s := NewStore(nil, NewPersister(kv, "cart", time.Second))

	require.NoError(t, s.AddItem(item("a", 10, 1)))
	require.NoError(t, s.AddItem(item("b", 20, 1)))
	s.UpdateQuantity("a", 3)

	raw, ok := kv.raw("cart")
	require.True(t, ok)
	items, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 3, kv.setCall)

	s.Clear()
	raw, _ = kv.raw("cart")
	assert.JSONEq(t, `[]`, string(raw))
}

func TestPersister_FailureIsSwallowed(t *testing.T) {
	kv := newMemKV()
	kv.setErr = errDiskFull
	s := NewStore(nil, NewPersister(kv, "cart", time.Second))

	require.NoError(t, s.AddItem(item("a", 10, 1)))
	require.NoError(t, s.AddItem(item("a", 10, 1)))

	assert.Equal(t, 2, s.ItemCount(), "in-memory cart keeps working")
	assertTotal(t, s, "20")
	_, ok := kv.raw("cart")
	assert.False(t, ok)
	assert.Equal(t, 2, kv.setCall)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("absent key yields empty cart", func(t *testing.T) {
		items := Load(ctx, newMemKV(), "cart")
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("storage error yields empty cart", func(t *testing.T) {
		kv := newMemKV()
		kv.getErr = errDiskFull
		assert.Empty(t, Load(ctx, kv, "cart"))
	})

	t.Run("malformed content yields empty cart", func(t *testing.T) {
		kv := newMemKV()
		require.NoError(t, kv.Set(ctx, "cart", []byte(`not json`)))
		assert.Empty(t, Load(ctx, kv, "cart"))
	})

	t.Run("invariant violation discards the whole list", func(t *testing.T) {
		kv := newMemKV()
		require.NoError(t, kv.Set(ctx, "cart", []byte(`[{"id":"a","unitPrice":"1","quantity":1},{"id":"b","unitPrice":"1","quantity":-2}]`)))
		assert.Empty(t, Load(ctx, kv, "cart"))
	})

	t.Run("valid content is restored in order", func(t *testing.T) {
		kv := newMemKV()
		data, err := Encode([]domain.LineItem{item("b", 2, 1), item("a", 1, 5)})
		require.NoError(t, err)
		require.NoError(t, kv.Set(ctx, "cart", data))

		items := Load(ctx, kv, "cart")
		require.Len(t, items, 2)
		assert.Equal(t, "b", items[0].ID)
		assert.Equal(t, 5, items[1].Quantity)
	})
}

func TestOpen_HydratesAndPersistsToSameKey(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()

	first := Open(ctx, kv, "cart:s1", time.Second)
	require.NoError(t, first.AddItem(item("a", 10, 2)))

	second := Open(ctx, kv, "cart:s1", time.Second)
	assert.Equal(t, 2, second.ItemCount())
	assertTotal(t, second, "20")

	other := Open(ctx, kv, "cart:s2", time.Second)
	assert.Empty(t, other.Items())
}
