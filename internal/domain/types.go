package domain

// --- Shared Types ---

type contextKey string

// SessionContextKey carries the cart session id set by the session middleware.
const SessionContextKey contextKey = "cartSession"
