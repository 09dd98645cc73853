package domain

type CtxKey string

const (
	// KeyUserID holds the authenticated numeric identifier forwarded by
	// the gateway in the X-User-ID header.
	KeyUserID CtxKey = "UserID"
)
