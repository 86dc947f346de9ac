package rq

import (
	"bufio"
	"io"
	"net/http"
	"os"

	"github.com/nojima/rq/exchange"
	"github.com/nojima/rq/flags"
	"github.com/nojima/rq/input"
	"github.com/nojima/rq/output"
	"github.com/nojima/rq/version"
	"github.com/pkg/errors"
)

// Options overrides the process environment. Zero values fall back to
// os.Args, the standard streams and terminal detection on them.
type Options struct {
	Args      []string
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Transport http.RoundTripper

	// Terminal, when non-nil, replaces terminal detection of the standard streams.
	Terminal *Terminal
}

type Terminal struct {
	StdinIsTerminal  bool
	StdoutIsTerminal bool
	StderrIsTerminal bool
}

func Main(options *Options) error {
	args := options.Args
	if args == nil {
		args = os.Args
	}
	stdin := options.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	stdout := options.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := options.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	// Parse flags
	var flagSet flags.FlagSet
	var result *flags.Result
	var err error
	if options.Terminal != nil {
		flagSet, result, err = flags.ParseWithTerminal(args,
			options.Terminal.StdinIsTerminal,
			options.Terminal.StdoutIsTerminal,
			options.Terminal.StderrIsTerminal)
	} else {
		flagSet, result, err = flags.Parse(args)
	}
	if _, ok := errors.Cause(err).(*input.UsageError); ok {
		flagSet.PrintUsage(stderr)
		return err
	}
	if err != nil {
		return err
	}

	switch result.Action {
	case flags.ActionHelp:
		flagSet.PrintUsage(stdout)
		return nil
	case flags.ActionVersion:
		_, err := io.WriteString(stdout, "rq "+version.Current().String()+"\n")
		return err
	case flags.ActionLicenses:
		version.PrintLicenses(stdout)
		return nil
	}

	// Resolve body and URL
	optionSet := result.OptionSet
	spec, err := input.Resolve(result.Invocation, stdin, &optionSet.InputOptions)
	if _, ok := errors.Cause(err).(*input.UsageError); ok {
		flagSet.PrintUsage(stderr)
		return err
	}
	if err != nil {
		return err
	}

	// Send request and receive response
	exchangeOptions := optionSet.ExchangeOptions
	if options.Transport != nil {
		exchangeOptions.Transport = options.Transport
	}
	resp, err := exchange.SendRequest(spec, &exchangeOptions)
	if err != nil {
		return err
	}

	// Print response
	writer := bufio.NewWriter(stdout)
	printer := output.NewPrinter(output.PrinterConfig{
		Writer:      writer,
		EnableColor: optionSet.OutputOptions.EnableColor,
	})
	if spec.Verbosity >= 1 {
		if err := printer.PrintRequestLine(string(spec.Method), spec.URL); err != nil {
			return err
		}
	}
	if err := printer.PrintResponse(resp); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return errors.Wrap(err, "writing response")
	}
	if spec.Verbosity >= 2 {
		summary := output.NewPrinter(output.PrinterConfig{
			Writer:      stderr,
			EnableColor: optionSet.OutputOptions.EnableStderrColor,
		})
		if err := summary.PrintSummary(resp); err != nil {
			return err
		}
	}
	return nil
}
