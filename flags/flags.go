package flags

import (
	"io"
	"os"
	"regexp"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/nojima/rq/exchange"
	"github.com/nojima/rq/input"
	"github.com/nojima/rq/output"
	"github.com/pborman/getopt"
	"github.com/pkg/errors"
)

var reNumber = regexp.MustCompile(`^[0-9.]+$`)

// noBody is a special value that indicates user did not specify --body
const noBody = "\000"

type FlagSet interface {
	PrintUsage(w io.Writer)
}

type OptionSet struct {
	InputOptions    input.Options
	ExchangeOptions exchange.Options
	OutputOptions   output.Options
}

// Action tells the caller what to do once flags are parsed.
type Action int

const (
	ActionRequest Action = iota
	ActionHelp
	ActionVersion
	ActionLicenses
)

type Result struct {
	Action     Action
	Invocation *input.Invocation
	OptionSet  *OptionSet
}

type terminalInfo struct {
	stdinIsTerminal  bool
	stdoutIsTerminal bool
	stderrIsTerminal bool
}

// Parse parses os.Args style arguments (program name first). The returned
// FlagSet is the one whose usage matches the failure, and is non-nil even
// when err is a usage error.
func Parse(args []string) (FlagSet, *Result, error) {
	return parse(args, terminalInfo{
		stdinIsTerminal:  isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		stderrIsTerminal: isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()),
	})
}

// ParseWithTerminal is Parse with terminal detection supplied by the caller.
func ParseWithTerminal(args []string, stdinIsTerminal, stdoutIsTerminal, stderrIsTerminal bool) (FlagSet, *Result, error) {
	return parse(args, terminalInfo{
		stdinIsTerminal:  stdinIsTerminal,
		stdoutIsTerminal: stdoutIsTerminal,
		stderrIsTerminal: stderrIsTerminal,
	})
}

func parse(args []string, terminal terminalInfo) (FlagSet, *Result, error) {
	program := "rq"
	if len(args) > 0 {
		program = args[0]
		args = args[1:]
	}

	in := input.Invocation{}
	body := noBody
	var help, showVersion, showLicenses bool
	timeout := "0"

	newRootSet := func() *getopt.Set {
		s := getopt.New()
		s.SetProgram(program)
		s.SetParameters("[get|post|put|delete|patch] URL [--] [BODY_ITEM ...]")
		s.BoolVarLong(&in.MethodFlags.Get, "get", 'g', "GET request (default)")
		s.BoolVarLong(&in.MethodFlags.Post, "post", 'p', "POST request")
		s.BoolVarLong(&in.MethodFlags.Put, "put", 'u', "PUT request")
		s.BoolVarLong(&in.MethodFlags.Delete, "delete", 'd', "DELETE request")
		s.BoolVarLong(&in.MethodFlags.Patch, "patch", 'x', "PATCH request")
		s.StringVarLong(&body, "body", 'b', "request body (JSON string or raw text)", "BODY")
		s.IntVarLong(&in.Verbosity, "verbose", 'v', "verbosity level (0 by default)", "N")
		s.StringVarLong(&timeout, "timeout", 0, "timeout seconds that you allow the whole operation to take", "T")
		s.BoolVarLong(&help, "help", 'h', "show this help message")
		s.BoolVarLong(&showVersion, "version", 0, "print version and exit")
		s.BoolVarLong(&showLicenses, "licenses", 0, "print licenses of third-party libraries and exit")
		return s
	}

	rootSet := newRootSet()
	if err := rootSet.Getopt(append([]string{program}, args...), nil); err != nil {
		return rootSet, nil, input.NewUsageError(err.Error())
	}

	var usage FlagSet = rootSet
	positional := rootSet.Args()
	if len(positional) > 0 {
		if method, ok := input.ParseSubcommand(positional[0]); ok {
			// the subcommand owns --body and --verbose
			in.Mode = input.SubcommandMode
			in.Subcommand = method
			in.Verbosity = 0
			body = noBody
			name := positional[0]
			usage = newSubcommandSet(program, name, &body, &in.Verbosity, &help)
			rest, err := parseInterspersed(program, positional[1:], func() *getopt.Set {
				return newSubcommandSet(program, name, &body, &in.Verbosity, &help)
			})
			if err != nil {
				return usage, nil, err
			}
			positional = rest
		} else {
			rest, err := parseInterspersed(program, positional[1:], newRootSet)
			if err != nil {
				return usage, nil, err
			}
			positional = append([]string{positional[0]}, rest...)
		}
	}

	switch {
	case help:
		return usage, &Result{Action: ActionHelp}, nil
	case showVersion:
		return usage, &Result{Action: ActionVersion}, nil
	case showLicenses:
		return usage, &Result{Action: ActionLicenses}, nil
	}

	if in.Mode == input.RootMode && in.MethodFlags.Count() > 1 {
		return usage, nil, input.NewUsageError("only one of --get, --post, --put, --delete and --patch may be given")
	}
	switch {
	case len(positional) == 0:
		return usage, nil, input.NewUsageError("URL is required")
	case in.Mode == input.RootMode && len(positional) > 1:
		return usage, nil, input.NewUsageError("unexpected argument: " + positional[1])
	}
	if in.Verbosity < 0 {
		return usage, nil, input.NewUsageError("value of --verbose must not be negative")
	}
	in.URL = positional[0]
	in.BodyTokens = positional[1:]
	if body != noBody {
		in.Body = &body
	}

	// Parse --timeout
	d, err := parseDurationOrSeconds(timeout)
	if err != nil {
		return usage, nil, err
	}

	optionSet := &OptionSet{
		InputOptions: input.Options{
			ReadStdin: !terminal.stdinIsTerminal,
		},
		ExchangeOptions: exchange.Options{
			Timeout: d,
		},
		OutputOptions: output.Options{
			EnableColor:       terminal.stdoutIsTerminal,
			EnableStderrColor: terminal.stderrIsTerminal,
		},
	}
	return usage, &Result{
		Action:     ActionRequest,
		Invocation: &in,
		OptionSet:  optionSet,
	}, nil
}

// newSubcommandSet binds the options a subcommand accepts. Body items
// starting with "-" must follow "--".
func newSubcommandSet(program, name string, body *string, verbosity *int, help *bool) *getopt.Set {
	s := getopt.New()
	s.SetProgram(program + " " + name)
	s.SetParameters("URL [--] [BODY_ITEM ...]")
	s.StringVarLong(body, "body", 'b', "request body (JSON string or raw text)", "BODY")
	s.IntVarLong(verbosity, "verbose", 'v', "verbosity level (0 by default)", "N")
	s.BoolVarLong(help, "help", 'h', "show this help message")
	return s
}

// parseInterspersed lets options appear anywhere among the positional
// arguments. getopt stops at the first non-option, so parsing restarts
// after each positional with a fresh set bound to the same variables.
// Everything after "--" is positional.
func parseInterspersed(program string, args []string, newSet func() *getopt.Set) ([]string, error) {
	var positional []string
	for len(args) > 0 {
		s := newSet()
		argv := append([]string{program}, args...)
		if err := s.Getopt(argv, nil); err != nil {
			return nil, input.NewUsageError(err.Error())
		}
		rest := s.Args()
		consumed := len(argv) - len(rest)
		if consumed > 1 && argv[consumed-1] == "--" {
			positional = append(positional, rest...)
			break
		}
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
	return positional, nil
}

func parseDurationOrSeconds(timeout string) (time.Duration, error) {
	if reNumber.MatchString(timeout) {
		timeout += "s"
	}
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return time.Duration(0), errors.Errorf("Value of --timeout must be a number or duration string: %v", timeout)
	}
	return d, nil
}
