package input

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

type UsageError string

func (e *UsageError) Error() string {
	return string(*e)
}

func NewUsageError(message string) error {
	u := UsageError(message)
	return errors.WithStack(&u)
}

// Options controls how Resolve consults the environment.
type Options struct {
	ReadStdin bool
}

// Resolve turns an Invocation into a RequestSpec. Body files and stdin are
// read here, so every body error surfaces before the request is sent.
func Resolve(in *Invocation, stdin io.Reader, options *Options) (*RequestSpec, error) {
	if in.URL == "" {
		return nil, NewUsageError("URL is required")
	}
	if in.Verbosity < 0 {
		return nil, NewUsageError("verbosity must not be negative")
	}

	source, err := ClassifyBody(in.Body, in.BodyTokens, options.ReadStdin)
	if err != nil {
		return nil, err
	}
	body, hasBody, err := ResolveBody(source, stdin)
	if err != nil {
		return nil, err
	}

	return &RequestSpec{
		URL:       NormalizeURL(in.URL),
		Method:    in.Method(),
		Body:      body,
		HasBody:   hasBody,
		Verbosity: in.Verbosity,
	}, nil
}

// Method returns the method selected by the invocation. A subcommand always
// overrides the root flags.
func (in *Invocation) Method() Method {
	if in.Mode == SubcommandMode && in.Subcommand != "" {
		return in.Subcommand
	}
	return in.MethodFlags.Method()
}

// Method applies the fixed precedence POST > PUT > DELETE > PATCH > GET.
func (f MethodFlags) Method() Method {
	switch {
	case f.Post:
		return MethodPost
	case f.Put:
		return MethodPut
	case f.Delete:
		return MethodDelete
	case f.Patch:
		return MethodPatch
	default:
		return MethodGet
	}
}

func (f MethodFlags) Count() int {
	n := 0
	for _, set := range []bool{f.Get, f.Post, f.Put, f.Delete, f.Patch} {
		if set {
			n++
		}
	}
	return n
}

// ParseSubcommand maps a subcommand name to its method.
func ParseSubcommand(s string) (Method, bool) {
	switch s {
	case "get":
		return MethodGet, true
	case "post":
		return MethodPost, true
	case "put":
		return MethodPut, true
	case "delete":
		return MethodDelete, true
	case "patch":
		return MethodPatch, true
	default:
		return "", false
	}
}

// NormalizeURL prefixes https:// to URLs without an http or https scheme.
func NormalizeURL(s string) string {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	return "https://" + s
}
