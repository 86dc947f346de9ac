package exchange

import (
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nojima/rq/input"
	"github.com/pkg/errors"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	StatusText string
	Header     http.Header
	Body       string
	Size       int64
	Elapsed    time.Duration
}

// ContentType returns the Content-Type header and whether it was sent.
func (r *Response) ContentType() (string, bool) {
	values := r.Header.Values("Content-Type")
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// SendRequest performs exactly one request and reads the whole response.
func SendRequest(spec *input.RequestSpec, options *Options) (*Response, error) {
	client, err := BuildHTTPClient(options)
	if err != nil {
		return nil, err
	}
	r, err := BuildHTTPRequest(spec)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := client.Do(r)
	if err != nil {
		return nil, errors.Wrap(err, "sending HTTP request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}
	elapsed := time.Since(start)

	text := string(body)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}

	return &Response{
		StatusCode: resp.StatusCode,
		StatusText: reasonPhrase(resp),
		Header:     resp.Header,
		Body:       text,
		Size:       int64(len(body)),
		Elapsed:    elapsed,
	}, nil
}

// reasonPhrase prefers the canonical phrase and falls back to the one sent
// by the server for codes net/http does not know.
func reasonPhrase(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	if i := strings.IndexByte(resp.Status, ' '); i >= 0 {
		return strings.TrimSpace(resp.Status[i+1:])
	}
	return ""
}
