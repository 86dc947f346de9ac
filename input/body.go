package input

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// ClassifyBody decides where the request body comes from. The explicit
// --body value wins over everything else; stdin is only a candidate when
// neither --body nor positional tokens were given.
func ClassifyBody(explicit *string, tokens []string, readStdin bool) (BodySource, error) {
	if explicit != nil {
		return BodySource{SourceType: ExplicitBody, Raw: *explicit}, nil
	}

	switch len(tokens) {
	case 0:
		if readStdin {
			return BodySource{SourceType: StdinBody}, nil
		}
		return BodySource{SourceType: NoBody}, nil
	case 1:
		if strings.HasPrefix(tokens[0], "@") {
			return BodySource{SourceType: FileBody, Path: tokens[0][1:]}, nil
		}
		return BodySource{SourceType: RawBody, Raw: tokens[0]}, nil
	}

	fields := make([]Field, 0, len(tokens))
	for _, token := range tokens {
		field, err := parseField(token)
		if err != nil {
			return BodySource{}, err
		}
		fields = append(fields, field)
	}
	return BodySource{SourceType: KeyValueBody, Fields: fields}, nil
}

func parseField(s string) (Field, error) {
	i := strings.Index(s, "=")
	if i < 0 {
		return Field{}, errors.Errorf("invalid body item (expected key=value): %s", s)
	}
	return Field{Name: s[:i], Value: s[i+1:]}, nil
}

// ResolveBody produces the request payload described by source. The second
// return value is false when the request carries no body.
func ResolveBody(source BodySource, stdin io.Reader) (string, bool, error) {
	switch source.SourceType {
	case NoBody:
		return "", false, nil
	case ExplicitBody, RawBody:
		return source.Raw, true, nil
	case FileBody:
		data, err := os.ReadFile(source.Path)
		if err != nil {
			return "", false, errors.Wrapf(err, "reading body file '%s'", source.Path)
		}
		return string(data), true, nil
	case StdinBody:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", false, errors.Wrap(err, "failed to read stdin")
		}
		if len(data) == 0 {
			return "", false, nil
		}
		return string(data), true, nil
	case KeyValueBody:
		body, err := buildJSONObject(source.Fields)
		if err != nil {
			return "", false, err
		}
		return body, true, nil
	default:
		return "", false, errors.Errorf("unknown body source: %v", source.SourceType)
	}
}

// buildJSONObject keeps the order in which keys first appeared. A repeated
// key replaces the earlier value in place.
func buildJSONObject(fields []Field) (string, error) {
	var names []string
	values := make(map[string][]byte, len(fields))
	for _, field := range fields {
		value, err := jsonValue(field.Value)
		if err != nil {
			return "", errors.Wrapf(err, "encoding value of '%s'", field.Name)
		}
		if _, ok := values[field.Name]; !ok {
			names = append(names, field.Name)
		}
		values[field.Name] = value
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalString(name)
		if err != nil {
			return "", errors.Wrapf(err, "encoding key '%s'", name)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(values[name])
	}
	buf.WriteByte('}')
	return buf.String(), nil
}

// jsonValue uses s as a JSON literal when it parses as one and falls back to
// a JSON string otherwise.
func jsonValue(s string) ([]byte, error) {
	if gjson.Valid(s) {
		return pretty.Ugly([]byte(s)), nil
	}
	return marshalString(s)
}

func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
