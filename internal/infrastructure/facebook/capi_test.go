package facebook

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"futur-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *CAPIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewCAPIClient("pixel", "token", "v19.0", "TEST123")
	require.NotNil(t, c)
	c.baseURL = srv.URL
	c.backoff = time.Millisecond
	c.httpClient = srv.Client()
	return c
}

func TestNewCAPIClient_DisabledWithoutCredentials(t *testing.T) {
	c := NewCAPIClient("", "", "v19.0", "")
	assert.Nil(t, c)

	// nil client swallows everything
	assert.NoError(t, c.SendEvent(context.Background(), Event{EventName: "Purchase"}))
	c.TrackPurchase(context.Background(), &domain.Order{})
	c.TrackAddToCart(context.Background(), "s", domain.LineItem{}, "USD")
}

func TestHashSHA256_Normalizes(t *testing.T) {
	assert.Equal(t, HashSHA256("ada@example.com"), HashSHA256("  ADA@Example.com "))
	assert.Equal(t, "", HashSHA256(""))
	assert.Len(t, HashSHA256("x"), 64)
}

func TestSendEvent_PostsPayload(t *testing.T) {
	var got EventPayload
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusOK)
	})

	err := c.SendEvent(context.Background(), Event{EventName: "AddToCart", ActionSource: "website"})
	require.NoError(t, err)

	assert.Equal(t, "/v19.0/pixel/events", path)
	require.Len(t, got.Data, 1)
	assert.Equal(t, "AddToCart", got.Data[0].EventName)
	assert.Equal(t, "TEST123", got.TestEventCode)
}

func TestSendEvent_RetriesServerErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.SendEvent(context.Background(), Event{EventName: "Purchase"}))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSendEvent_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad pixel"}`))
	})

	err := c.SendEvent(context.Background(), Event{EventName: "Purchase"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestTrackPurchase_HashesPII(t *testing.T) {
	received := make(chan EventPayload, 1)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var p EventPayload
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &p)
		received <- p
	})

	c.TrackPurchase(context.Background(), &domain.Order{
		ID:          "o-1",
		SessionID:   "s-1",
		TotalAmount: decimal.RequireFromString("289.50"),
		ItemCount:   1,
		Currency:    "USD",
		Items:       []domain.LineItem{{ID: "1", UnitPrice: decimal.RequireFromString("289.50"), Quantity: 1}},
		Shipping:    domain.ShippingInfo{Name: "Ada Lovelace", Email: "ada@example.com", City: "London", Zip: "N1"},
		CreatedAt:   time.Now(),
	})

	select {
	case p := <-received:
		require.Len(t, p.Data, 1)
		ev := p.Data[0]
		assert.Equal(t, "Purchase", ev.EventName)
		assert.Equal(t, "o-1", ev.EventID)
		assert.Equal(t, HashSHA256("ada@example.com"), ev.UserData.Email)
		assert.Equal(t, HashSHA256("Ada"), ev.UserData.FirstName)
		assert.Equal(t, 289.5, ev.CustomData.Value)
	case <-time.After(5 * time.Second):
		t.Fatal("purchase event was not sent")
	}
}
