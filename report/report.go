package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/amonclus/percolate/ensemble"
	"github.com/amonclus/percolate/percolation"
)

// Format selects an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ErrUnknownFormat indicates a format name ParseFormat does not know.
var ErrUnknownFormat = errors.New("report: unknown format")

// ParseFormat accepts table, csv, json and yaml (case-insensitive; "yml" is
// an alias for yaml).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("ParseFormat(%q): %w", s, ErrUnknownFormat)
	}
}

// Sweep is a single sweep together with the facts needed to interpret it.
type Sweep struct {
	Mode       percolation.Mode     `json:"mode" yaml:"mode"`
	N          int                  `json:"n" yaml:"n"`
	Edges      int                  `json:"edges" yaml:"edges"`
	Step       float64              `json:"step" yaml:"step"`
	Seed       int64                `json:"seed" yaml:"seed"`
	Percolated bool                 `json:"percolated" yaml:"percolated"`
	CriticalQ  float64              `json:"q_c" yaml:"q_c"`
	Elapsed    time.Duration        `json:"elapsed" yaml:"elapsed"`
	Results    []percolation.Result `json:"results" yaml:"results"`
}

// Ensemble is an ensemble summary with an optional β fit.
type Ensemble struct {
	*ensemble.Summary `yaml:",inline"`
	Fit               *ensemble.BetaFit `json:"beta_fit,omitempty" yaml:"beta_fit,omitempty"`
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF99"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
)

// WriteSweep renders s in format f.
func WriteSweep(w io.Writer, f Format, s Sweep) error {
	switch f {
	case FormatTable:
		return sweepTable(w, s)
	case FormatCSV:
		return sweepCSV(w, s.Results)
	case FormatJSON:
		return writeJSON(w, s)
	case FormatYAML:
		return writeYAML(w, s)
	default:
		return fmt.Errorf("WriteSweep: %q: %w", f, ErrUnknownFormat)
	}
}

// WriteSummary renders e in format f.
func WriteSummary(w io.Writer, f Format, e Ensemble) error {
	if e.Summary == nil {
		return errors.New("WriteSummary: nil summary")
	}
	switch f {
	case FormatTable:
		return summaryTable(w, e)
	case FormatCSV:
		return curveCSV(w, e.Curve)
	case FormatJSON:
		return writeJSON(w, e)
	case FormatYAML:
		return writeYAML(w, e)
	default:
		return fmt.Errorf("WriteSummary: %q: %w", f, ErrUnknownFormat)
	}
}

func sweepTable(w io.Writer, s Sweep) error {
	rows := make([][]string, 0, len(s.Results))
	for _, r := range s.Results {
		rows = append(rows, []string{
			fmtFloat(r.Q),
			humanize.Comma(int64(r.Components)),
			humanize.Comma(int64(r.LargestCluster)),
			strconv.FormatFloat(r.NormalizedLargest, 'f', 4, 64),
		})
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s percolation", s.Mode)))
	fmt.Fprintf(&b, "  N=%s  edges=%s  step=%s  seed=%d\n",
		humanize.Comma(int64(s.N)), humanize.Comma(int64(s.Edges)), fmtFloat(s.Step), s.Seed)
	b.WriteString(newTable([]string{"q", "components", "largest", "nsc"}, rows))
	b.WriteString("\n")
	if s.Percolated {
		fmt.Fprintf(&b, "q_c = %s\n", fmtFloat(s.CriticalQ))
	} else {
		b.WriteString("no percolation detected\n")
	}
	if s.Elapsed > 0 {
		fmt.Fprintf(&b, "elapsed %s\n", s.Elapsed.Round(time.Microsecond))
	}

	_, err := io.WriteString(w, b.String())

	return err
}

func summaryTable(w io.Writer, e Ensemble) error {
	s := e.Summary
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s percolation ensemble", s.Mode)))
	fmt.Fprintf(&b, "  N=%s  edges=%s  step=%s  seed=%d\n",
		humanize.Comma(int64(s.N)), humanize.Comma(int64(s.Edges)), fmtFloat(s.Step), s.Seed)

	stats := [][]string{
		{"runs", humanize.Comma(int64(s.Runs))},
		{"percolated", humanize.Comma(int64(s.Percolated))},
		{"mean q_c", strconv.FormatFloat(s.MeanQc, 'f', 6, 64)},
		{"variance q_c", strconv.FormatFloat(s.VarianceQc, 'e', 3, 64)},
		{"stderr q_c", strconv.FormatFloat(s.StdErrQc, 'e', 3, 64)},
	}
	if s.Stabilized {
		stats = append(stats, []string{"stabilised at run", humanize.Comma(int64(s.StabilizedAt))})
	}
	if e.Fit != nil {
		stats = append(stats,
			[]string{"beta", fmt.Sprintf("%.4f ± %.4f", e.Fit.Beta, e.Fit.BetaErr)},
			[]string{"A", strconv.FormatFloat(e.Fit.A, 'f', 4, 64)},
			[]string{"R²", strconv.FormatFloat(e.Fit.R2, 'f', 4, 64)},
			[]string{"fit points", strconv.Itoa(e.Fit.Points)},
		)
	}
	b.WriteString(newTable([]string{"statistic", "value"}, stats))
	b.WriteString("\n")

	curve := make([][]string, 0, len(s.Curve))
	for _, p := range s.Curve {
		curve = append(curve, []string{
			fmtFloat(p.Q),
			strconv.FormatFloat(p.MeanComponents, 'f', 2, 64),
			strconv.FormatFloat(p.MeanLargest, 'f', 2, 64),
			strconv.FormatFloat(p.MeanNormalized, 'f', 4, 64),
			strconv.FormatFloat(p.StdNormalized, 'f', 4, 64),
		})
	}
	b.WriteString(newTable([]string{"q", "components", "largest", "nsc", "σ nsc"}, curve))
	b.WriteString("\n")
	if s.Elapsed > 0 {
		fmt.Fprintf(&b, "elapsed %s\n", s.Elapsed.Round(time.Millisecond))
	}

	_, err := io.WriteString(w, b.String())

	return err
}

func newTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func sweepCSV(w io.Writer, results []percolation.Result) error {
	cw := csv.NewWriter(w)
	// csv.Writer keeps the first write error; cw.Error reports it after Flush.
	_ = cw.Write([]string{"q", "components", "largest_cluster", "nsc"})
	for _, r := range results {
		_ = cw.Write([]string{
			fmtFloat(r.Q),
			strconv.Itoa(r.Components),
			strconv.Itoa(r.LargestCluster),
			fmtFloat(r.NormalizedLargest),
		})
	}
	cw.Flush()

	return cw.Error()
}

func curveCSV(w io.Writer, curve []ensemble.CurvePoint) error {
	cw := csv.NewWriter(w)
	// Write errors surface through cw.Error below.
	_ = cw.Write([]string{"q", "mean_components", "mean_largest", "mean_nsc", "std_nsc"})
	for _, p := range curve {
		_ = cw.Write([]string{
			fmtFloat(p.Q),
			fmtFloat(p.MeanComponents),
			fmtFloat(p.MeanLargest),
			fmtFloat(p.MeanNormalized),
			fmtFloat(p.StdNormalized),
		})
	}
	cw.Flush()

	return cw.Error()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}

// fmtFloat prints the shortest representation that parses back to f.
func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
