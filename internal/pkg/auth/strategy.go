package auth

import "time"

// Identity is what a verified bearer credential resolves to.
type Identity struct {
	UserID  int64
	IsAdmin bool
}

// Strategy issues and verifies bearer tokens.
type Strategy interface {
	IssueToken(identity Identity) (string, error)
	ParseToken(token string) (Identity, error)
	Name() string
}

// Options tunes token issuance.
type Options struct {
	TTL time.Duration
}
