package domain

import "context"

// AnalyticsTracker receives storefront conversion events. Implementations
// must not block the caller.
type AnalyticsTracker interface {
	TrackAddToCart(ctx context.Context, sessionID string, item LineItem, currency string)
	TrackPurchase(ctx context.Context, order *Order)
}

// ImageUploader stores a processed image and returns its public URL.
type ImageUploader interface {
	UploadBuffer(ctx context.Context, data []byte, contentType string) (string, error)
}
