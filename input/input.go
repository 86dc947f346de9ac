package input

type Method string

const (
	MethodGet    = Method("GET")
	MethodPost   = Method("POST")
	MethodPut    = Method("PUT")
	MethodDelete = Method("DELETE")
	MethodPatch  = Method("PATCH")
)

// MethodFlags holds the mutually exclusive method switches of the root form.
type MethodFlags struct {
	Get    bool
	Post   bool
	Put    bool
	Delete bool
	Patch  bool
}

type Mode int

const (
	RootMode Mode = iota
	SubcommandMode
)

// Invocation is the command line after flag parsing, before any body or URL
// resolution has taken place.
type Invocation struct {
	Mode        Mode
	Subcommand  Method // used only when Mode == SubcommandMode
	MethodFlags MethodFlags
	URL         string
	Body        *string // value of --body, nil when absent
	BodyTokens  []string
	Verbosity   int
}

// RequestSpec describes the single request to perform.
type RequestSpec struct {
	URL       string
	Method    Method
	Body      string
	HasBody   bool
	Verbosity int
}

type BodySourceType int

const (
	NoBody BodySourceType = iota
	ExplicitBody
	KeyValueBody
	FileBody
	RawBody
	StdinBody
)

type BodySource struct {
	SourceType BodySourceType
	Raw        string  // used only when SourceType is ExplicitBody or RawBody
	Fields     []Field // used only when SourceType == KeyValueBody
	Path       string  // used only when SourceType == FileBody
}

type Field struct {
	Name  string
	Value string
}
