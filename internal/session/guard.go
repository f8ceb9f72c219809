package session

import "net/url"

const defaultLoginPath = "/login"

// Authenticator is the slice of the Manager the guard needs.
type Authenticator interface {
	IsAuthenticated() bool
}

// Guard protects views that require a logged-in user. When the session
// is not authenticated it yields a redirect to the login page carrying
// the originating location, so login can send the user back.
type Guard struct {
	sessions  Authenticator
	loginPath string
}

type GuardOption func(*Guard)

func WithLoginPath(path string) GuardOption {
	return func(g *Guard) { g.loginPath = path }
}

func NewGuard(sessions Authenticator, opts ...GuardOption) *Guard {
	g := &Guard{
		sessions:  sessions,
		loginPath: defaultLoginPath,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check reports whether the target location may be shown. When it may
// not, redirect holds the login location to navigate to instead.
func (g *Guard) Check(target string) (redirect string, ok bool) {
	if g.sessions.IsAuthenticated() {
		return "", true
	}

	v := url.Values{}
	v.Set("from", target)
	return g.loginPath + "?" + v.Encode(), false
}
