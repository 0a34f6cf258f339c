package relay

import "net/http"

// Doer dispatches HTTP requests. *http.Client satisfies it.
//
//go:generate mockgen -source=doer.go -destination=mock_doer.go -package=relay
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}
