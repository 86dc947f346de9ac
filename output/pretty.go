package output

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/logrusorgru/aurora"
	"github.com/nojima/rq/exchange"
	"github.com/pkg/errors"
	"github.com/tidwall/pretty"
)

type Printer struct {
	writer        io.Writer
	enableColor   bool
	aurora        aurora.Aurora
	headerPalette *HeaderPalette
}

type HeaderPalette struct {
	Method       aurora.Color
	URL          aurora.Color
	StatusLabel  aurora.Color
	StatusCode   aurora.Color
	StatusText   aurora.Color
	FieldName    aurora.Color
	SummaryLabel aurora.Color
}

var defaultHeaderPalette = HeaderPalette{
	Method:       aurora.CyanFg | aurora.BoldFm,
	URL:          aurora.WhiteFg,
	StatusLabel:  aurora.GreenFg,
	StatusCode:   aurora.BlueFg | aurora.BoldFm,
	StatusText:   aurora.GreenFg,
	FieldName:    aurora.GreenFg,
	SummaryLabel: aurora.CyanFg,
}

type PrinterConfig struct {
	Writer      io.Writer
	EnableColor bool
}

func NewPrinter(config PrinterConfig) *Printer {
	return &Printer{
		writer:        config.Writer,
		enableColor:   config.EnableColor,
		aurora:        aurora.NewAurora(config.EnableColor),
		headerPalette: &defaultHeaderPalette,
	}
}

func (p *Printer) PrintRequestLine(method, url string) error {
	_, err := fmt.Fprintf(p.writer, "%s %s\n",
		p.aurora.Colorize(method, p.headerPalette.Method),
		p.aurora.Colorize(url, p.headerPalette.URL))
	return errors.Wrap(err, "printing request line")
}

func (p *Printer) PrintStatusLine(statusCode int, statusText string) error {
	_, err := fmt.Fprintf(p.writer, "%s %s %s\n",
		p.aurora.Colorize("Status", p.headerPalette.StatusLabel),
		p.aurora.Colorize(strconv.Itoa(statusCode), p.headerPalette.StatusCode),
		p.aurora.Colorize(statusText, p.headerPalette.StatusText))
	return errors.Wrap(err, "printing status line")
}

func (p *Printer) PrintContentType(contentType string) error {
	_, err := fmt.Fprintf(p.writer, "%s %s\n",
		p.aurora.Colorize("Content-Type", p.headerPalette.FieldName),
		contentType)
	return errors.Wrap(err, "printing content type")
}

// PrintBody writes the formatted body followed by a newline. JSON is
// syntax-highlighted when color is enabled.
func (p *Printer) PrintBody(body string) error {
	formatted, isJSON := FormatBody(body)
	if isJSON && p.enableColor {
		formatted = string(pretty.Color([]byte(formatted), nil))
	}
	_, err := fmt.Fprintf(p.writer, "%s\n", formatted)
	return errors.Wrap(err, "printing response body")
}

func (p *Printer) PrintResponse(resp *exchange.Response) error {
	if err := p.PrintStatusLine(resp.StatusCode, resp.StatusText); err != nil {
		return err
	}
	if contentType, ok := resp.ContentType(); ok {
		if err := p.PrintContentType(contentType); err != nil {
			return err
		}
	}
	return p.PrintBody(resp.Body)
}

// PrintSummary reports the transfer size and duration.
func (p *Printer) PrintSummary(resp *exchange.Response) error {
	_, err := fmt.Fprintf(p.writer, "%s %s in %v\n",
		p.aurora.Colorize("Received", p.headerPalette.SummaryLabel),
		bytefmt.ByteSize(uint64(resp.Size)),
		resp.Elapsed.Round(time.Millisecond))
	return errors.Wrap(err, "printing summary")
}
