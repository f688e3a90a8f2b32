// Package store keeps the calendar credentials in a bbolt database. The
// database stays open for as long as the timer runs, so its file lock also
// keeps a second instance from starting.
package store

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/selfremember/internal/osutil"
)

const (
	credentialBucket = "credentials"
	metaBucket       = "meta"
	schemaVersionKey = "schema_version"
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// GetCredential returns the credential saved for account.
func (c *Client) GetCredential(account string) (*Credential, error) {
	var cred Credential

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(credentialBucket)).Get([]byte(account))
		if len(b) == 0 {
			return errNoCredential.Fmt(account)
		}

		return json.Unmarshal(b, &cred)
	})
	if err != nil {
		return nil, err
	}

	return &cred, nil
}

// SaveCredential creates or overwrites the credential for cred.Account.
func (c *Client) SaveCredential(cred *Credential) error {
	if cred.Account == "" {
		return errNoAccount
	}

	cred.Version = CredentialVersion

	if cred.SavedAt.IsZero() {
		cred.SavedAt = time.Now()
	}

	value, err := json.Marshal(cred)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(credentialBucket)).Put([]byte(cred.Account), value)
	})
}

// DeleteCredential removes the credential for account. Deleting a missing
// credential is not an error.
func (c *Client) DeleteCredential(account string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(credentialBucket)).Delete([]byte(account))
	})
}

// openDB creates or opens a database and locks it.
func openDB(dbPath string) (*bolt.DB, error) {
	db, err := bolt.Open(
		dbPath,
		osutil.FilePermission,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient opens the database at dbPath, creating the buckets and
// upgrading old records as needed.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	c := &Client{db}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{credentialBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return c.migrate(tx)
	})
	if err != nil {
		_ = db.Close()

		return nil, errMigration.Wrap(err)
	}

	return c, nil
}

// Locked reports whether another process holds the database at dbPath.
func Locked(dbPath string) (bool, error) {
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	db, err := bolt.Open(dbPath, osutil.FilePermission, &bolt.Options{
		Timeout:  100 * time.Millisecond,
		ReadOnly: true,
	})
	if err == nil {
		return false, db.Close()
	}

	if errors.Is(err, bolt.ErrTimeout) {
		return true, nil
	}

	return false, err
}
