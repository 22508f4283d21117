package postproc

import (
	"fmt"
	"strings"
)

// Filter describes one filter of the chain syntax.
type Filter struct {
	Short       string
	Long        string
	Description string
	// ChromaDefault reports whether the filter runs on chroma without the c option.
	ChromaDefault bool
}

// Filters lists every filter in chain order of precedence.
func Filters() []Filter {
	out := make([]Filter, len(filters))
	for i, f := range filters {
		out[i] = Filter{Short: f.short, Long: f.long, Description: f.help, ChromaDefault: f.chromDefault}
	}
	return out
}

// Help returns a description of the chain syntax and every filter.
func Help() string {
	var b strings.Builder
	b.WriteString("<filterName>[:<option>[:<option>...]][[,|/][-]<filterName>[:<option>...]]...\n")
	b.WriteString("long form example:\n")
	b.WriteString("vdeblock:autoq/hdeblock:autoq/linblenddeint    default,-vdeblock\n")
	b.WriteString("short form example:\n")
	b.WriteString("vb:a/hb:a/lb                                   de,-vb\n")
	b.WriteString("more examples:\n")
	b.WriteString("tn:64:128:256\n\n")

	b.WriteString("Filters                        Options\n")
	b.WriteString("short  long name       short   long option     Description\n")
	b.WriteString("*      *               a       autoq           CPU power dependent enabler\n")
	b.WriteString("                       c       chrom           chrominance filtering enabled\n")
	b.WriteString("                       y       nochrom         chrominance filtering disabled\n")
	b.WriteString("                       n       noluma          luma filtering disabled\n")
	for _, f := range filters {
		fmt.Fprintf(&b, "%-6s %-15s %s\n", f.short, f.long, f.help)
		switch f.mask {
		case hDeblock, vDeblock:
			b.WriteString("       1. difference factor: default=32, higher -> more deblocking\n")
			b.WriteString("       2. flatness threshold: default=39, lower -> more deblocking\n")
			b.WriteString("                     the h & v deblocking filters share these\n")
			b.WriteString("                     so you can't set different thresholds for h / v\n")
		case levelFix:
			b.WriteString("                       f       fullyrange      stretch luminance to (0..255)\n")
		case tempNoise:
			b.WriteString("       1. <= 2. <= 3. larger -> stronger filtering\n")
		case forceQuant:
			b.WriteString("       <quantizer> force quantizer\n")
		}
	}
	for _, a := range aliases {
		fmt.Fprintf(&b, "%-22s %s\n", strings.Join(a.names, "/"), a.expansion)
	}
	b.WriteString("Usage:\n")
	b.WriteString("<filterName>[:<option>[:<option>...]][[,|/][-]<filterName>[:<option>...]]...\n")
	return b.String()
}
