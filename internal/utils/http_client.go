package utils

import "github.com/go-resty/resty/v2"

// HTTPClient embeds *resty.Client so callers get the full resty API
// plus the application defaults baked in by [NewHTTPClient].
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent resty client identifying itself
// as cardsync. Base URL, timeout and retry policy are left to the
// caller; the artifact adapter sets its own.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetHeader("User-Agent", "cardsync")

	return &HTTPClient{Client: client}
}
