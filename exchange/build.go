package exchange

import (
	"io"
	"net/http"
	"strings"

	"github.com/nojima/rq/input"
	"github.com/nojima/rq/version"
	"github.com/pkg/errors"
)

func BuildHTTPRequest(spec *input.RequestSpec) (*http.Request, error) {
	var body io.Reader
	if spec.HasBody {
		body = strings.NewReader(spec.Body)
	}

	r, err := http.NewRequest(string(spec.Method), spec.URL, body)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for '%s'", spec.URL)
	}
	if spec.HasBody {
		r.Header.Set("Content-Type", "application/json")
	}
	r.Header.Set("User-Agent", "rq/"+version.Current().String())
	return r, nil
}
