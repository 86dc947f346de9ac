package input

import (
	"os"
	"reflect"
	"strings"
	"testing"
)

func makeTempFile(t *testing.T, content string) string {
	tmpfile, err := os.CreateTemp("", "rq-test-")
	if err != nil {
		t.Fatalf("failed to create temporary file: %v", err)
	}
	defer tmpfile.Close()
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		os.Remove(tmpfile.Name())
		t.Fatalf("failed to write to temporary file: %v", err)
	}
	return tmpfile.Name()
}

func TestClassifyBody(t *testing.T) {
	testCases := []struct {
		title          string
		explicit       *string
		tokens         []string
		readStdin      bool
		expectedSource BodySource
		shouldBeError  bool
	}{
		{
			title:          "Nothing",
			expectedSource: BodySource{SourceType: NoBody},
		},
		{
			title:          "Stdin",
			readStdin:      true,
			expectedSource: BodySource{SourceType: StdinBody},
		},
		{
			title:          "Explicit body wins over tokens",
			explicit:       stringPtr(`{"a":1}`),
			tokens:         []string{"b=2", "c=3"},
			readStdin:      true,
			expectedSource: BodySource{SourceType: ExplicitBody, Raw: `{"a":1}`},
		},
		{
			title:          "Explicit empty body",
			explicit:       stringPtr(""),
			expectedSource: BodySource{SourceType: ExplicitBody, Raw: ""},
		},
		{
			title:          "File reference",
			tokens:         []string{"@payload.json"},
			expectedSource: BodySource{SourceType: FileBody, Path: "payload.json"},
		},
		{
			title:          "Raw token",
			tokens:         []string{`{"raw":true}`},
			readStdin:      true,
			expectedSource: BodySource{SourceType: RawBody, Raw: `{"raw":true}`},
		},
		{
			title:  "Key value pairs",
			tokens: []string{"a=1", "b=x=y", "c="},
			expectedSource: BodySource{
				SourceType: KeyValueBody,
				Fields: []Field{
					{Name: "a", Value: "1"},
					{Name: "b", Value: "x=y"},
					{Name: "c", Value: ""},
				},
			},
		},
		{
			title:         "Token without separator",
			tokens:        []string{"a=1", "bogus"},
			shouldBeError: true,
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			source, err := ClassifyBody(tt.explicit, tt.tokens, tt.readStdin)
			if (err != nil) != tt.shouldBeError {
				t.Fatalf("unexpected error: shouldBeError=%v, err=%v", tt.shouldBeError, err)
			}
			if err != nil {
				return
			}
			if !reflect.DeepEqual(source, tt.expectedSource) {
				t.Errorf("unexpected body source: expected=%+v, actual=%+v", tt.expectedSource, source)
			}
		})
	}
}

func TestClassifyBody_ErrorNamesToken(t *testing.T) {
	_, err := ClassifyBody(nil, []string{"a=1", "bogus"}, false)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("error should name the token: err=%v", err)
	}
}

func TestResolveBody(t *testing.T) {
	fileName := makeTempFile(t, "{\"from\": \"file\"}\n")
	defer os.Remove(fileName)

	testCases := []struct {
		title           string
		source          BodySource
		stdin           string
		expectedBody    string
		expectedHasBody bool
	}{
		{
			title:  "No body",
			source: BodySource{SourceType: NoBody},
		},
		{
			title:           "Explicit",
			source:          BodySource{SourceType: ExplicitBody, Raw: "a=1 b=2"},
			expectedBody:    "a=1 b=2",
			expectedHasBody: true,
		},
		{
			title:           "Raw",
			source:          BodySource{SourceType: RawBody, Raw: "hello"},
			expectedBody:    "hello",
			expectedHasBody: true,
		},
		{
			title:           "File",
			source:          BodySource{SourceType: FileBody, Path: fileName},
			expectedBody:    "{\"from\": \"file\"}\n",
			expectedHasBody: true,
		},
		{
			title:           "Stdin",
			source:          BodySource{SourceType: StdinBody},
			stdin:           "from stdin\n",
			expectedBody:    "from stdin\n",
			expectedHasBody: true,
		},
		{
			title:  "Empty stdin",
			source: BodySource{SourceType: StdinBody},
			stdin:  "",
		},
		{
			title: "Key value pairs",
			source: BodySource{
				SourceType: KeyValueBody,
				Fields: []Field{
					{Name: "a", Value: "1"},
					{Name: "b", Value: "hello"},
				},
			},
			expectedBody:    `{"a":1,"b":"hello"}`,
			expectedHasBody: true,
		},
		{
			title: "JSON literals",
			source: BodySource{
				SourceType: KeyValueBody,
				Fields: []Field{
					{Name: "z", Value: "true"},
					{Name: "y", Value: "null"},
					{Name: "x", Value: `[1, 2, "three"]`},
					{Name: "w", Value: `{"nested": {"k": 3.5}}`},
					{Name: "v", Value: `"quoted"`},
					{Name: "u", Value: "-2e3"},
				},
			},
			expectedBody:    `{"z":true,"y":null,"x":[1,2,"three"],"w":{"nested":{"k":3.5}},"v":"quoted","u":-2e3}`,
			expectedHasBody: true,
		},
		{
			title: "Fallback to strings",
			source: BodySource{
				SourceType: KeyValueBody,
				Fields: []Field{
					{Name: "name", Value: "a <b> & c"},
					{Name: "broken", Value: `{"a":`},
					{Name: "empty", Value: ""},
				},
			},
			expectedBody:    `{"name":"a <b> & c","broken":"{\"a\":","empty":""}`,
			expectedHasBody: true,
		},
		{
			title: "Repeated key keeps first position",
			source: BodySource{
				SourceType: KeyValueBody,
				Fields: []Field{
					{Name: "a", Value: "1"},
					{Name: "b", Value: "2"},
					{Name: "a", Value: "3"},
				},
			},
			expectedBody:    `{"a":3,"b":2}`,
			expectedHasBody: true,
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			body, hasBody, err := ResolveBody(tt.source, strings.NewReader(tt.stdin))
			if err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}
			if hasBody != tt.expectedHasBody {
				t.Errorf("unexpected hasBody: expected=%v, actual=%v", tt.expectedHasBody, hasBody)
			}
			if body != tt.expectedBody {
				t.Errorf("unexpected body: expected=%s, actual=%s", tt.expectedBody, body)
			}
		})
	}
}

func TestResolveBody_MissingFile(t *testing.T) {
	_, _, err := ResolveBody(BodySource{SourceType: FileBody, Path: "payload.json"}, strings.NewReader(""))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "payload.json") {
		t.Errorf("error should name the path: err=%v", err)
	}
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, os.ErrClosed
}

func TestResolveBody_StdinError(t *testing.T) {
	_, _, err := ResolveBody(BodySource{SourceType: StdinBody}, failingReader{})
	if err == nil {
		t.Fatalf("expected error when stdin cannot be read")
	}
}
