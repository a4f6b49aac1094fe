package pricing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"futur-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/gowebpki/jcs"
)

const fingerprintLength = 12

// Fingerprint identifies a configuration independently of field order: the
// configuration is rendered as canonical JSON (RFC 8785) and hashed.
func Fingerprint(cfg domain.JacketConfiguration) (string, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal configuration: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalize configuration: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])[:fingerprintLength], nil
}

// LineItemID derives the cart line id of a configured jacket. Equal
// configurations share an id; any differing option yields a different one.
func LineItemID(cfg domain.JacketConfiguration) (string, error) {
	fp, err := Fingerprint(cfg)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("jacket-%s-%s", cfg.Style, fp), nil
}
