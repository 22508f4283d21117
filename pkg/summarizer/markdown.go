package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a Markdown report.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate headings and labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{translate: func(s string) string { return s }}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Postprocess Summary"))

	fmt.Fprintf(&b, "## %s\n\n", t("Input"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	row(&b, t("File"), s.Input.Path)
	row(&b, t("Size"), fmt.Sprintf("%dx%d", s.Input.Width, s.Input.Height))
	row(&b, t("Format"), s.Input.Format)
	if s.Input.FPS > 0 {
		row(&b, t("Frame Rate"), fmt.Sprintf("%.3f fps", s.Input.FPS))
	}
	row(&b, t("Frames"), fmt.Sprintf("%d", s.Input.Frames))
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Filter"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	row(&b, t("Filter Chain"), "`"+s.Filter.Spec+"`")
	row(&b, t("Luma Filters"), listOrNone(s.Filter.LumaFilters, t))
	row(&b, t("Chroma Filters"), listOrNone(s.Filter.ChromaFilters, t))
	row(&b, t("CPU"), s.Filter.CPU)
	row(&b, t("Flags"), fmt.Sprintf("0x%08x", s.Filter.Flags))
	row(&b, t("Workers"), fmt.Sprintf("%d", s.Filter.Workers))
	if s.Filter.Scaler != "" {
		row(&b, t("Scaler"), s.Filter.Scaler)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Output"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	row(&b, t("File"), s.Output.Path)
	row(&b, t("Frames Written"), fmt.Sprintf("%d", s.Output.Frames))
	row(&b, t("Bytes Written"), formatBytes(s.Output.Bytes))
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Timing"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	row(&b, t("Wall Time"), formatDuration(s.Timing.Wall))
	row(&b, t("Filter Time"), formatDuration(s.Timing.FilterTotal))
	row(&b, t("Mean per Frame"), formatDuration(s.Timing.FilterMean))
	row(&b, t("Fastest Frame"), formatDuration(s.Timing.Fastest))
	row(&b, t("Slowest Frame"), formatDuration(s.Timing.Slowest))
	row(&b, t("Throughput"), fmt.Sprintf("%.1f fps", s.Timing.FPS))
	b.WriteString("\n")

	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format(time.RFC3339))
	if f.version != "" {
		footer += fmt.Sprintf(" (ffpp %s)", f.version)
	}
	b.WriteString(footer + "\n")

	return b.String()
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", label, value)
}

func listOrNone(items []string, t func(string) string) string {
	if len(items) == 0 {
		return t("none")
	}
	return strings.Join(items, ", ")
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2f s", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.2f ms", float64(d)/float64(time.Millisecond))
	default:
		return fmt.Sprintf("%d µs", d.Microseconds())
	}
}

// formatBytes renders a byte count with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}

var _ Formatter = (*MarkdownFormatter)(nil)
