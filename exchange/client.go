package exchange

import (
	"net/http"
)

// BuildHTTPClient returns a client that follows redirects with the default
// policy. A zero Timeout leaves the request unbounded.
func BuildHTTPClient(options *Options) (*http.Client, error) {
	client := http.Client{
		Timeout: options.Timeout,
	}

	var transp http.RoundTripper
	if options.Transport == nil {
		transp = http.DefaultTransport.(*http.Transport).Clone()
	} else {
		transp = options.Transport
	}
	client.Transport = transp

	return &client, nil
}
