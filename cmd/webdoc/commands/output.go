package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"git.home.luguber.info/inful/webdoc/internal/eventstore"
	"git.home.luguber.info/inful/webdoc/internal/generator"
	"git.home.luguber.info/inful/webdoc/internal/templates"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Width(16)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3FB950"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#D29922"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

// renderResult draws the summary box printed after a generation run.
func renderResult(res *generator.Result) string {
	status := okStyle.Render("success")
	if len(res.BrokenLinks) > 0 {
		status = warnStyle.Render(fmt.Sprintf("%d broken link(s)", len(res.BrokenLinks)))
	}
	lines := []string{
		titleStyle.Render("Documentation generated"),
		"",
		row("Template", res.TemplateName),
		row("Pages", fmt.Sprint(res.Metadata.PageCount)),
		row("Features", fmt.Sprint(res.Metadata.FeatureCount)),
		row("Files", fmt.Sprint(res.FilesGenerated)),
		row("Output", res.OutputDir),
		row("Run", res.RunID),
		row("Status", status),
	}
	for _, bl := range res.BrokenLinks {
		lines = append(lines, "  "+warnStyle.Render(fmt.Sprintf("%s -> %s", bl.Source, bl.Target)))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func renderTemplates(summaries []templates.Summary) string {
	lines := []string{titleStyle.Render("Templates"), ""}
	for _, s := range summaries {
		origin := "custom"
		if s.Builtin {
			origin = "builtin"
		}
		lines = append(lines,
			lipgloss.JoinHorizontal(lipgloss.Top,
				labelStyle.Render(s.Name),
				fmt.Sprintf("v%s  %-8s %-15s %s", s.Version, origin, s.Style, s.Description)))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func renderHistory(runs []*eventstore.RunSummary) string {
	if len(runs) == 0 {
		return "No generation runs recorded."
	}
	lines := []string{titleStyle.Render("Generation history"), ""}
	for _, r := range runs {
		status := okStyle.Render(r.Status)
		detail := fmt.Sprintf("%d files, %d broken links", r.FilesGenerated, r.BrokenLinks)
		if r.Status == eventstore.RunStatusFailed {
			status = errStyle.Render(r.Status)
			detail = fmt.Sprintf("%s: %s", r.ErrorStage, r.ErrorMessage)
		}
		lines = append(lines, fmt.Sprintf("%s  %-12s %-10s %-8s %s",
			r.StartedAt.Local().Format(time.DateTime),
			r.Template,
			status,
			r.Duration.Round(time.Millisecond),
			detail))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// relativeFiles shortens absolute output paths for display.
func relativeFiles(res *generator.Result) []string {
	base, err := filepath.Abs(res.OutputDir)
	if err != nil {
		base = res.OutputDir
	}
	out := make([]string, 0, len(res.Files))
	for _, f := range res.Files {
		if rel, err := filepath.Rel(base, f); err == nil {
			f = rel
		}
		out = append(out, filepath.ToSlash(f))
	}
	return out
}

func rawJSON(b []byte) any {
	if json.Valid(b) {
		return json.RawMessage(b)
	}
	return string(b)
}
