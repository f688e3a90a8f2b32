package store

import (
	"time"

	"golang.org/x/oauth2"
)

// CredentialVersion is the record layout written by SaveCredential.
const CredentialVersion = 1

// Credential is an OAuth token saved for one account.
type Credential struct {
	SavedAt time.Time     `json:"saved_at"`
	Token   *oauth2.Token `json:"token"`
	Account string        `json:"account"`
	Scopes  []string      `json:"scopes,omitempty"`
	Version int           `json:"version"`
}

// DB is the database storage interface.
type DB interface {
	// GetCredential returns the credential saved for account
	GetCredential(account string) (*Credential, error)
	// SaveCredential creates the credential or overwrites it if it exists
	// already
	SaveCredential(cred *Credential) error
	// DeleteCredential forgets the credential for account
	DeleteCredential(account string) error
	// Close ends the database connection
	Close() error
}
