package calendar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/ayoisaiah/selfremember/internal/osutil"
)

const callbackPath = "/oauth2/callback"

// OAuthConfig reads the client file downloaded from the Google Cloud
// console.
func OAuthConfig(secretPath string) (*oauth2.Config, error) {
	b, err := os.ReadFile(secretPath)
	if err != nil {
		return nil, errReadSecret.Fmt(secretPath).Wrap(err)
	}

	cfg, err := google.ConfigFromJSON(b, Scope)
	if err != nil {
		return nil, errParseSecret.Fmt(secretPath).Wrap(err)
	}

	return cfg, nil
}

// Authorizer runs the installed-app consent flow with a loopback redirect.
type Authorizer struct {
	Config *oauth2.Config
	// OpenURL opens the consent page. Defaults to the system browser.
	OpenURL func(url string) error
	// Out receives the consent URL in case the browser does not open.
	Out io.Writer
}

type callback struct {
	err  error
	code string
}

// Authorize blocks until the user grants or denies access, or ctx ends.
func (a *Authorizer) Authorize(ctx context.Context) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, errConsent.Wrap(err)
	}

	cfg := *a.Config
	cfg.RedirectURL = "http://" + ln.Addr().String() + callbackPath

	state := uuid.NewString()
	results := make(chan callback, 1)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get(callbackPath, func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()

		var res callback

		switch {
		case q.Get("state") != state:
			res.err = errStateMismatch
		case q.Get("error") != "":
			res.err = errConsent.Wrap(errors.New(q.Get("error")))
		default:
			res.code = q.Get("code")
		}

		if res.err != nil {
			http.Error(w, res.err.Error(), http.StatusBadRequest)
		} else {
			_, _ = io.WriteString(w, "selfremember is connected to your calendar. You can close this tab.\n")
		}

		select {
		case results <- res:
		default:
		}
	})

	srv := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		_ = srv.Serve(ln)
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	url := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	if a.Out != nil {
		fmt.Fprintf(a.Out, "Open this link to authorise selfremember:\n\n%s\n\n", url)
	}

	open := a.OpenURL
	if open == nil {
		open = osutil.Open
	}

	_ = open(url)

	var res callback

	select {
	case <-ctx.Done():
		return nil, errConsent.Wrap(ctx.Err())
	case res = <-results:
	}

	if res.err != nil {
		return nil, res.err
	}

	tok, err := cfg.Exchange(ctx, res.code)
	if err != nil {
		return nil, errExchange.Wrap(err)
	}

	return tok, nil
}
