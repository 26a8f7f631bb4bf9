package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/olekukonko/tablewriter"

	"github.com/agbru/threadsum/internal/config"
	apperrors "github.com/agbru/threadsum/internal/errors"
	"github.com/agbru/threadsum/internal/format"
	"github.com/agbru/threadsum/internal/orchestration"
	"github.com/agbru/threadsum/internal/ui"
)

// PresenterOptions tunes how a report is rendered.
type PresenterOptions struct {
	// Details adds per-worker durations and the total elapsed time.
	Details bool
	// Color enables ANSI colors from the active ui theme.
	Color bool
}

// NewPresenter returns the presenter for the given output format.
func NewPresenter(outputFormat string, opts PresenterOptions) (orchestration.ResultPresenter, error) {
	switch outputFormat {
	case config.FormatText, "":
		return TextPresenter{Options: opts}, nil
	case config.FormatTable:
		return TablePresenter{Options: opts}, nil
	case config.FormatJSON:
		return JSONPresenter{}, nil
	default:
		return nil, apperrors.ValidationError{Field: "format", Message: fmt.Sprintf("unknown format %q", outputFormat)}
	}
}

// TextPresenter prints one line per worker under a header, then the winner.
// The line layout is the program's historical output and scripts parse it.
type TextPresenter struct {
	Options PresenterOptions
}

var _ orchestration.ResultPresenter = TextPresenter{}

// PresentReport writes the text report.
func (p TextPresenter) PresentReport(r orchestration.Report, out io.Writer) error {
	c := colorizer(p.Options.Color)
	fmt.Fprintf(out, "Resultados por hilo (suma de %d numeros entre %d y %d):\n", r.Samples, r.Min, r.Max)
	for _, s := range r.Summaries {
		line := fmt.Sprintf("  Hilo #%d -> total = %d", s.ID, s.Total)
		if p.Options.Details {
			line += c(ui.ColorCyan(), fmt.Sprintf("  (%s)", format.FormatExecutionDuration(s.Duration)))
		}
		fmt.Fprintln(out, line)
	}
	_, err := fmt.Fprintf(out, "\n%s\n",
		c(ui.ColorGreen(), fmt.Sprintf("El hilo con mayor puntaje es el #%d con %d puntos.", r.Best.ID, r.Best.Total)))
	if err != nil {
		return err
	}
	if p.Options.Details {
		fmt.Fprintf(out, "Tiempo total: %s\n", format.FormatExecutionDuration(r.Elapsed))
	}
	return nil
}

// TablePresenter renders the report as an ASCII table.
type TablePresenter struct {
	Options PresenterOptions
}

var _ orchestration.ResultPresenter = TablePresenter{}

// PresentReport writes the table report.
func (p TablePresenter) PresentReport(r orchestration.Report, out io.Writer) error {
	fmt.Fprintf(out, "%d workers x %d samples in [%d, %d]\n", r.Threads, r.Samples, r.Min, r.Max)

	table := tablewriter.NewWriter(out)
	header := []string{"Worker", "Total", "Best"}
	if p.Options.Details {
		header = append(header, "Duration")
	}
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)

	for _, s := range r.Summaries {
		mark := ""
		if s.ID == r.Best.ID {
			mark = "*"
		}
		row := []string{strconv.Itoa(s.ID), format.FormatUint(s.Total), mark}
		if p.Options.Details {
			row = append(row, format.FormatExecutionDuration(s.Duration))
		}
		table.Append(row)
	}
	table.Render()

	c := colorizer(p.Options.Color)
	_, err := fmt.Fprintf(out, "Best: %s\n", c(ui.ColorGreen(), fmt.Sprintf("#%d (%s)", r.Best.ID, format.FormatUint(r.Best.Total))))
	return err
}

// JSONPresenter renders the report as indented JSON.
type JSONPresenter struct{}

var _ orchestration.ResultPresenter = JSONPresenter{}

// PresentReport writes the JSON report.
func (JSONPresenter) PresentReport(r orchestration.Report, out io.Writer) error {
	data, err := sonic.ConfigStd.MarshalIndent(r, "", "  ")
	if err != nil {
		return apperrors.WrapError(err, "encoding report")
	}
	data = append(data, '\n')
	_, err = out.Write(data)
	return err
}

// FormatQuietResult formats the winner for quiet mode: "<id> <total>".
func FormatQuietResult(best orchestration.Summary) string {
	return fmt.Sprintf("%d %d", best.ID, best.Total)
}

// DisplayQuietResult prints only the winner, for scripting.
func DisplayQuietResult(out io.Writer, best orchestration.Summary) {
	fmt.Fprintln(out, FormatQuietResult(best))
}

func colorizer(enabled bool) func(code, s string) string {
	if !enabled {
		return func(_, s string) string { return s }
	}
	return ui.Colorize
}
