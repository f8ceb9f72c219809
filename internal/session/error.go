package session

import "errors"

var ErrNotAuthenticated = errors.New("not authenticated")
