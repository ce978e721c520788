// Package presenter prints user-facing CLI output: status lines, section
// headers, tool results and validation reports, with color support and a
// quiet mode.
package presenter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/marrick66/spec-agent-skills/pkg/tools/renderers"
	"github.com/marrick66/spec-agent-skills/pkg/types/tools"
)

// Presenter defines the interface for consistent CLI output
type Presenter interface {
	Error(err error, context string)
	Success(message string)
	Warning(message string)
	Info(message string)
	Section(title string)
	Raw(text string)
	ToolResult(result tools.StructuredToolResult)
	Validation(report ValidationReport)
	Separator()
	SetQuiet(quiet bool)
	IsQuiet() bool
}

// ValidationReport summarizes the outcome of validating skill directories.
type ValidationReport struct {
	Valid   []string
	Invalid map[string]error
}

// TerminalPresenter implements Presenter for terminal output
type TerminalPresenter struct {
	output      io.Writer
	errorOutput io.Writer
	colorMode   ColorMode
	quiet       bool
	renderers   *renderers.RendererRegistry
}

// ColorMode selects when colored output is used
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// New creates a TerminalPresenter writing to stdout and stderr
func New() *TerminalPresenter {
	return NewWithOptions(os.Stdout, os.Stderr, detectColorMode())
}

// NewWithOptions creates a TerminalPresenter with custom settings
func NewWithOptions(output, errorOutput io.Writer, colorMode ColorMode) *TerminalPresenter {
	switch colorMode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	}

	return &TerminalPresenter{
		output:      output,
		errorOutput: errorOutput,
		colorMode:   colorMode,
		renderers:   renderers.NewRendererRegistry(),
	}
}

// detectColorMode honours NO_COLOR and AGENTSKILLS_COLOR.
func detectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorNever
	}

	switch os.Getenv("AGENTSKILLS_COLOR") {
	case "always", "force":
		return ColorAlways
	case "never", "off":
		return ColorNever
	default:
		return ColorAuto
	}
}

// Error displays an error message to stderr. Errors are shown in quiet
// mode too.
func (p *TerminalPresenter) Error(err error, context string) {
	if err == nil {
		return
	}

	errorColor := color.New(color.FgRed, color.Bold)
	if context != "" {
		errorColor.Fprintf(p.errorOutput, "[ERROR] %s: %v\n", context, err)
	} else {
		errorColor.Fprintf(p.errorOutput, "[ERROR] %v\n", err)
	}
}

func (p *TerminalPresenter) Success(message string) {
	if p.quiet {
		return
	}
	color.New(color.FgGreen, color.Bold).Fprintf(p.output, "✓ %s\n", message)
}

func (p *TerminalPresenter) Warning(message string) {
	if p.quiet {
		return
	}
	color.New(color.FgYellow, color.Bold).Fprintf(p.output, "⚠ %s\n", message)
}

func (p *TerminalPresenter) Info(message string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.output, "%s\n", message)
}

// Section displays a bold title underlined with dashes.
func (p *TerminalPresenter) Section(title string) {
	if p.quiet {
		return
	}

	headerColor := color.New(color.Bold)
	headerColor.Fprintf(p.output, "%s\n", title)
	headerColor.Fprintf(p.output, "%s\n", strings.Repeat("-", len(title)))
}

// Raw writes text as-is. It is the command's payload, so quiet mode does
// not suppress it.
func (p *TerminalPresenter) Raw(text string) {
	fmt.Fprint(p.output, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(p.output)
	}
}

// ToolResult renders a structured tool result. Failures go to stderr.
func (p *TerminalPresenter) ToolResult(result tools.StructuredToolResult) {
	text := p.renderers.Render(result)
	if !result.Success {
		color.New(color.FgRed).Fprintln(p.errorOutput, text)
		return
	}
	p.Raw(text)
}

// Validation prints one line per skill directory followed by a summary.
func (p *TerminalPresenter) Validation(report ValidationReport) {
	okColor := color.New(color.FgGreen)
	badColor := color.New(color.FgRed)

	if !p.quiet {
		for _, name := range report.Valid {
			okColor.Fprintf(p.output, "  ✓ %s\n", name)
		}
	}
	for _, name := range sortedKeys(report.Invalid) {
		badColor.Fprintf(p.errorOutput, "  ✗ %s: %v\n", name, report.Invalid[name])
	}

	if len(report.Invalid) == 0 {
		p.Success(fmt.Sprintf("%d skill(s) valid", len(report.Valid)))
		return
	}
	badColor.Add(color.Bold).Fprintf(p.errorOutput, "%d valid, %d invalid\n", len(report.Valid), len(report.Invalid))
}

// Separator displays a faint horizontal rule
func (p *TerminalPresenter) Separator() {
	if p.quiet {
		return
	}
	color.New(color.Faint).Fprintf(p.output, "%s\n", strings.Repeat("-", 60))
}

func (p *TerminalPresenter) SetQuiet(quiet bool) {
	p.quiet = quiet
}

func (p *TerminalPresenter) IsQuiet() bool {
	return p.quiet
}

var defaultPresenter = New()

// Error displays an error using the default presenter.
func Error(err error, context string) { defaultPresenter.Error(err, context) }

// Success displays a success message using the default presenter.
func Success(message string) { defaultPresenter.Success(message) }

// Warning displays a warning using the default presenter.
func Warning(message string) { defaultPresenter.Warning(message) }

// Info displays an informational message using the default presenter.
func Info(message string) { defaultPresenter.Info(message) }

// Section displays a section header using the default presenter.
func Section(title string) { defaultPresenter.Section(title) }

// Raw writes text using the default presenter.
func Raw(text string) { defaultPresenter.Raw(text) }

// ToolResult renders a tool result using the default presenter.
func ToolResult(result tools.StructuredToolResult) { defaultPresenter.ToolResult(result) }

// Validation prints a validation report using the default presenter.
func Validation(report ValidationReport) { defaultPresenter.Validation(report) }

// Separator displays a separator using the default presenter.
func Separator() { defaultPresenter.Separator() }

// SetQuiet toggles quiet mode on the default presenter.
func SetQuiet(quiet bool) { defaultPresenter.SetQuiet(quiet) }

// IsQuiet reports whether the default presenter is quiet.
func IsQuiet() bool { return defaultPresenter.IsQuiet() }
