package request

import (
	"net/http"

	"github.com/jonwraymond/opentok/session"
)

// CreateSession composes the session creation call. opts is already
// validated by session.NewOptions.
func CreateSession(opts session.Options) Request {
	return formRequest(http.MethodPost, opts.FormValues(), "session/create")
}
