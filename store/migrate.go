package store

import (
	"encoding/json"
	"strconv"
	"time"

	"go.etcd.io/bbolt"
	"golang.org/x/oauth2"
)

// schemaVersion is bumped whenever a migration is added.
const schemaVersion = 1

// migrateCredentials wraps bare tokens written by earlier releases in a
// versioned Credential record.
func migrateCredentials(tx *bbolt.Tx) error {
	bucket := tx.Bucket([]byte(credentialBucket))

	type probe struct {
		Version int `json:"version"`
	}

	updates := make(map[string][]byte)

	err := bucket.ForEach(func(k, v []byte) error {
		var p probe

		if err := json.Unmarshal(v, &p); err != nil {
			return err
		}

		if p.Version >= CredentialVersion {
			return nil
		}

		var tok oauth2.Token

		if err := json.Unmarshal(v, &tok); err != nil {
			return err
		}

		cred := Credential{
			Version: CredentialVersion,
			Account: string(k),
			Token:   &tok,
			SavedAt: time.Now(),
		}

		b, err := json.Marshal(cred)
		if err != nil {
			return err
		}

		updates[string(k)] = b

		return nil
	})
	if err != nil {
		return err
	}

	for k, v := range updates {
		if err := bucket.Put([]byte(k), v); err != nil {
			return err
		}
	}

	return nil
}

func (c *Client) migrate(tx *bbolt.Tx) error {
	meta := tx.Bucket([]byte(metaBucket))

	current := 0

	if v := meta.Get([]byte(schemaVersionKey)); v != nil {
		n, err := strconv.Atoi(string(v))
		if err != nil {
			return err
		}

		current = n
	}

	if current >= schemaVersion {
		return nil
	}

	if err := migrateCredentials(tx); err != nil {
		return err
	}

	return meta.Put([]byte(schemaVersionKey), []byte(strconv.Itoa(schemaVersion)))
}
