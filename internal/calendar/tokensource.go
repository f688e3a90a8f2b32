package calendar

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/ayoisaiah/selfremember/store"
)

// Account is the key the Google token is stored under.
const Account = "google"

// SaveToken stores tok as the calendar credential.
func SaveToken(db store.DB, tok *oauth2.Token) error {
	return db.SaveCredential(&store.Credential{
		Account: Account,
		Token:   tok,
		Scopes:  []string{Scope},
		SavedAt: time.Now(),
	})
}

// TokenSource returns a source that refreshes the saved token with cfg and
// writes every refreshed token back to db.
func TokenSource(
	ctx context.Context,
	cfg *oauth2.Config,
	db store.DB,
) (oauth2.TokenSource, error) {
	cred, err := db.GetCredential(Account)
	if errors.Is(err, store.ErrNoCredential) {
		return nil, ErrNotAuthorised
	}

	if err != nil {
		return nil, err
	}

	p := &persistingSource{
		base: cfg.TokenSource(ctx, cred.Token),
		db:   db,
		last: cred.Token,
	}

	return oauth2.ReuseTokenSource(cred.Token, p), nil
}

type persistingSource struct {
	base oauth2.TokenSource
	db   store.DB
	last *oauth2.Token
	mu   sync.Mutex
}

func (p *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := p.base.Token()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.last != nil && p.last.AccessToken == tok.AccessToken {
		return tok, nil
	}

	p.last = tok

	if err := SaveToken(p.db, tok); err != nil {
		slog.Warn("saving refreshed calendar token failed", slog.Any("error", err))
	}

	return tok, nil
}
