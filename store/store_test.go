package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
	"golang.org/x/oauth2"
)

func newTestClient(t *testing.T) (*Client, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "selfremember.db")

	c, err := NewClient(path)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c, path
}

func TestCredentialLifecycle(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.GetCredential("google")
	assert.ErrorIs(t, err, ErrNoCredential)

	expiry := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	cred := &Credential{
		Account: "google",
		Scopes:  []string{"https://www.googleapis.com/auth/calendar.events"},
		Token: &oauth2.Token{
			AccessToken:  "access",
			RefreshToken: "refresh",
			TokenType:    "Bearer",
			Expiry:       expiry,
		},
	}

	require.NoError(t, c.SaveCredential(cred))

	got, err := c.GetCredential("google")
	require.NoError(t, err)

	assert.Equal(t, CredentialVersion, got.Version)
	assert.Equal(t, "refresh", got.Token.RefreshToken)
	assert.True(t, got.Token.Expiry.Equal(expiry))
	assert.Equal(t, cred.Scopes, got.Scopes)
	assert.False(t, got.SavedAt.IsZero())

	require.NoError(t, c.DeleteCredential("google"))
	require.NoError(t, c.DeleteCredential("google"))

	_, err = c.GetCredential("google")
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestSaveCredentialNeedsAccount(t *testing.T) {
	c, _ := newTestClient(t)

	err := c.SaveCredential(&Credential{Token: &oauth2.Token{}})
	assert.ErrorIs(t, err, errNoAccount)
}

func TestMigrateBareToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selfremember.db")

	db, err := bolt.Open(path, 0o600, nil)
	require.NoError(t, err)

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(credentialBucket))
		if err != nil {
			return err
		}

		return b.Put(
			[]byte("google"),
			[]byte(`{"access_token":"old","token_type":"Bearer","refresh_token":"r"}`),
		)
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	c, err := NewClient(path)
	require.NoError(t, err)

	defer c.Close()

	got, err := c.GetCredential("google")
	require.NoError(t, err)

	assert.Equal(t, CredentialVersion, got.Version)
	assert.Equal(t, "google", got.Account)
	assert.Equal(t, "old", got.Token.AccessToken)
	assert.Equal(t, "r", got.Token.RefreshToken)

	err = c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(metaBucket)).Get([]byte(schemaVersionKey))
		assert.Equal(t, "1", string(v))

		return nil
	})
	require.NoError(t, err)
}

func TestLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selfremember.db")

	locked, err := Locked(path)
	require.NoError(t, err)
	assert.False(t, locked, "missing database")

	c, err := NewClient(path)
	require.NoError(t, err)

	locked, err = Locked(path)
	require.NoError(t, err)
	assert.True(t, locked)

	_, err = NewClient(path)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, c.Close())

	locked, err = Locked(path)
	require.NoError(t, err)
	assert.False(t, locked)
}
