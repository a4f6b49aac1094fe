package facebook

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"futur-backend/internal/domain"
	"futur-backend/pkg/logger"

	"github.com/goccy/go-json"
)

const defaultGraphURL = "https://graph.facebook.com"

// HashSHA256 returns a hex-encoded SHA256 hash of the normalized input string.
func HashSHA256(input string) string {
	if input == "" {
		return ""
	}
	normalized := strings.ToLower(strings.TrimSpace(input))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

// CAPIClient handles server-side event tracking to the Facebook Conversions
// API. A nil client is valid and drops every event.
type CAPIClient struct {
	pixelID     string
	accessToken string
	apiVersion  string
	baseURL     string
	testCode    string
	backoff     time.Duration
	httpClient  *http.Client
}

// NewCAPIClient creates a new Facebook CAPI client, or nil when the pixel is
// not configured.
func NewCAPIClient(pixelID, accessToken, apiVersion, testCode string) *CAPIClient {
	if pixelID == "" || accessToken == "" {
		logger.Info().Msg("[CAPI] Facebook Pixel ID or Access Token not configured. CAPI disabled.")
		return nil
	}
	return &CAPIClient{
		pixelID:     pixelID,
		accessToken: accessToken,
		apiVersion:  apiVersion,
		baseURL:     defaultGraphURL,
		testCode:    testCode,
		backoff:     time.Second,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// UserData represents the user information for event matching
type UserData struct {
	Email      string `json:"em,omitempty"` // SHA256 hashed
	FirstName  string `json:"fn,omitempty"` // SHA256 hashed
	City       string `json:"ct,omitempty"` // SHA256 hashed
	Zip        string `json:"zp,omitempty"` // SHA256 hashed
	ExternalID string `json:"external_id,omitempty"`
	ClientIP   string `json:"client_ip_address,omitempty"`
	UserAgent  string `json:"client_user_agent,omitempty"`
}

type CustomData struct {
	Currency    string        `json:"currency,omitempty"`
	Value       float64       `json:"value,omitempty"`
	ContentName string        `json:"content_name,omitempty"`
	ContentType string        `json:"content_type,omitempty"`
	ContentIDs  []string      `json:"content_ids,omitempty"`
	Contents    []ContentItem `json:"contents,omitempty"`
	NumItems    int           `json:"num_items,omitempty"`
	OrderID     string        `json:"order_id,omitempty"`
}

type ContentItem struct {
	ID       string  `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"item_price,omitempty"`
}

type Event struct {
	EventName    string     `json:"event_name"`
	EventTime    int64      `json:"event_time"`
	ActionSource string     `json:"action_source"`
	UserData     UserData   `json:"user_data"`
	CustomData   CustomData `json:"custom_data,omitempty"`
	EventID      string     `json:"event_id,omitempty"` // For deduplication with browser events
}

type EventPayload struct {
	Data          []Event `json:"data"`
	TestEventCode string  `json:"test_event_code,omitempty"`
}

// SendEvent posts a single event with simple retry logic.
func (c *CAPIClient) SendEvent(ctx context.Context, event Event) error {
	if c == nil {
		return nil
	}

	jsonData, err := json.Marshal(EventPayload{Data: []Event{event}, TestEventCode: c.testCode})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s/events?access_token=%s", c.baseURL, c.apiVersion, c.pixelID, c.accessToken)

	var lastErr error
	for i := 0; i < 3; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(i) * c.backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("CAPI request failed: %w", err)
			continue
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			logger.Debug().Str("event", event.EventName).Msg("[CAPI] Event sent")
			return nil
		}
		lastErr = fmt.Errorf("CAPI error (status %d): %s", resp.StatusCode, string(body))

		// 4xx other than 429 is a payload problem, retrying will not help
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			break
		}
	}

	return lastErr
}

// TrackAddToCart reports a line item added to a session's cart.
func (c *CAPIClient) TrackAddToCart(ctx context.Context, sessionID string, item domain.LineItem, currency string) {
	if c == nil {
		return
	}
	price := item.UnitPrice.InexactFloat64()
	event := Event{
		EventName:    "AddToCart",
		EventTime:    time.Now().Unix(),
		ActionSource: "website",
		UserData:     UserData{ExternalID: HashSHA256(sessionID)},
		CustomData: CustomData{
			Currency:    currency,
			Value:       item.Subtotal().InexactFloat64(),
			ContentName: item.Name,
			ContentType: "product",
			ContentIDs:  []string{item.ID},
			Contents:    []ContentItem{{ID: item.ID, Quantity: item.Quantity, Price: price}},
			NumItems:    item.Quantity,
		},
	}
	c.sendAsync(ctx, event)
}

// TrackPurchase reports a placed order. PII is hashed before it leaves.
func (c *CAPIClient) TrackPurchase(ctx context.Context, order *domain.Order) {
	if c == nil {
		return
	}

	items := make([]ContentItem, len(order.Items))
	ids := make([]string, len(order.Items))
	for i, it := range order.Items {
		items[i] = ContentItem{ID: it.ID, Quantity: it.Quantity, Price: it.UnitPrice.InexactFloat64()}
		ids[i] = it.ID
	}

	event := Event{
		EventName:    "Purchase",
		EventTime:    order.CreatedAt.Unix(),
		ActionSource: "website",
		UserData: UserData{
			Email:      HashSHA256(order.Shipping.Email),
			FirstName:  HashSHA256(firstWord(order.Shipping.Name)),
			City:       HashSHA256(order.Shipping.City),
			Zip:        HashSHA256(order.Shipping.Zip),
			ExternalID: HashSHA256(order.SessionID),
		},
		CustomData: CustomData{
			Currency:   order.Currency,
			Value:      order.TotalAmount.InexactFloat64(),
			OrderID:    order.ID,
			Contents:   items,
			ContentIDs: ids,
			NumItems:   order.ItemCount,
		},
		EventID: order.ID,
	}
	c.sendAsync(ctx, event)
}

// sendAsync keeps analytics off the request path.
func (c *CAPIClient) sendAsync(ctx context.Context, event Event) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := c.SendEvent(sendCtx, event); err != nil {
			logger.Warn().Err(err).Str("event", event.EventName).Msg("[CAPI] Failed to send event")
		}
	}()
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
