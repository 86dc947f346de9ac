package exchange

import (
	"net/http"
	"time"
)

type Options struct {
	Timeout   time.Duration
	Transport http.RoundTripper
}
