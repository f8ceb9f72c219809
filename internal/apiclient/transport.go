package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
)

// ErrSessionExpired is returned when a 401 could not be recovered by a
// silent refresh. The configured auth-failure hook has already fired
// by the time a caller sees it.
var ErrSessionExpired = errors.New("session expired")

type attemptKey struct{}

// withAttempt returns a derived context carrying the retry attempt
// counter. The counter travels with the request descriptor instead of
// being flagged on a shared mutable request.
func withAttempt(ctx context.Context, n int) context.Context {
	return context.WithValue(ctx, attemptKey{}, n)
}

func attemptFrom(ctx context.Context) int {
	n, _ := ctx.Value(attemptKey{}).(int)
	return n
}

// retryTransport recovers exactly one 401 per request: it refreshes
// the session silently and replays the original request once. A 401
// from the auth endpoints themselves is a business result (bad
// credentials, expired refresh token) and passes through, as does a
// second 401 on a replay.
type retryTransport struct {
	base         http.RoundTripper
	jar          http.CookieJar
	refresh      func(ctx context.Context) error
	onAuthFail   func()
	exemptPrefix string
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	if strings.HasPrefix(req.URL.Path, t.exemptPrefix) || attemptFrom(req.Context()) > 0 {
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if err := t.refresh(req.Context()); err != nil {
		if t.onAuthFail != nil {
			t.onAuthFail()
		}
		return nil, ErrSessionExpired
	}

	retry := req.Clone(withAttempt(req.Context(), attemptFrom(req.Context())+1))
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}

	// The refresh rotated the access cookie; the cloned request still
	// carries the stale one.
	retry.Header.Del("Cookie")
	for _, c := range t.jar.Cookies(retry.URL) {
		retry.AddCookie(c)
	}

	return t.base.RoundTrip(retry)
}
