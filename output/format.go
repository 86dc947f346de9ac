package output

import (
	"bytes"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Width 0 puts every array element on its own line.
var formatOptions = &pretty.Options{
	Width:  0,
	Prefix: "",
	Indent: "  ",
}

// FormatBody re-indents body when it is valid JSON. Anything else is
// returned unchanged; the second result reports which case applied.
func FormatBody(body string) (string, bool) {
	if !gjson.Valid(body) {
		return body, false
	}
	formatted := pretty.PrettyOptions([]byte(body), formatOptions)
	return string(bytes.TrimRight(formatted, "\n")), true
}
