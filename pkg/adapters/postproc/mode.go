package postproc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/user/ffpp/pkg/ports"
)

var (
	// ErrUnknownFilter is returned when a filter chain names a filter that does not exist.
	ErrUnknownFilter = errors.New("postproc: unknown filter")

	// ErrUnknownOption is returned for options a filter does not understand.
	ErrUnknownOption = errors.New("postproc: unknown filter option")
)

const (
	filterDelimiters = ",/"
	optionDelimiters = ":|"
)

// filterSet is a bit set of filters enabled for one kind of plane.
type filterSet uint32

const (
	hDeblock filterSet = 1 << iota
	vDeblock
	hADeblock
	vADeblock
	hX1Filter
	vX1Filter
	dering
	levelFix
	linearBlendDeint
	linearIpolDeint
	cubicIpolDeint
	medianDeint
	ffmpegDeint
	lowpass5Deint
	tempNoise
	forceQuant
	bitExact
)

func (s filterSet) has(f filterSet) bool { return s&f != 0 }

type filterInfo struct {
	short, long  string
	chromDefault bool
	minLumQ      int // minimum quality to enable on luma with autoq
	minChromQ    int // minimum quality to enable on chroma with autoq
	mask         filterSet
	help         string
}

var filters = []filterInfo{
	{"hb", "hdeblock", true, 1, 3, hDeblock, "horizontal deblocking filter"},
	{"vb", "vdeblock", true, 2, 4, vDeblock, "vertical deblocking filter"},
	{"h1", "x1hdeblock", true, 1, 3, hX1Filter, "experimental horizontal deblocking filter"},
	{"v1", "x1vdeblock", true, 2, 4, vX1Filter, "experimental vertical deblocking filter"},
	{"ha", "ahdeblock", true, 1, 3, hADeblock, "accurate horizontal deblocking filter"},
	{"va", "avdeblock", true, 2, 4, vADeblock, "accurate vertical deblocking filter"},
	{"dr", "dering", true, 5, 6, dering, "deringing filter"},
	{"al", "autolevels", false, 1, 2, levelFix, "automatic brightness / contrast"},
	{"lb", "linblenddeint", true, 1, 4, linearBlendDeint, "linear blend deinterlacer"},
	{"li", "linipoldeint", true, 1, 4, linearIpolDeint, "linear interpolating deinterlacer"},
	{"ci", "cubicipoldeint", true, 1, 4, cubicIpolDeint, "cubic interpolating deinterlacer"},
	{"md", "mediandeint", true, 1, 4, medianDeint, "median deinterlacer"},
	{"fd", "ffmpegdeint", true, 1, 4, ffmpegDeint, "ffmpeg deinterlacer"},
	{"l5", "lowpass5", true, 1, 4, lowpass5Deint, "FIR lowpass deinterlacer"},
	{"tn", "tmpnoise", true, 7, 8, tempNoise, "temporal noise reducer"},
	{"fq", "forcequant", true, 0, 0, forceQuant, "force quantizer"},
	{"be", "bitexact", true, 0, 0, bitExact, "bit-exact output"},
}

var aliases = []struct {
	names     []string
	expansion string
}{
	{[]string{"de", "default"}, "hb:a,vb:a,dr:a"},
	{[]string{"fa", "fast"}, "h1:a,v1:a,dr:a"},
	{[]string{"ac"}, "ha:a:128:7,va:a,dr:a"},
}

// Defaults for the numeric filter options.
const (
	defaultBaseDcDiff        = 256 / 8
	defaultFlatnessThreshold = 56 - 16 - 1
	defaultForcedQuant       = 15
	defaultMinAllowedY       = 16
	defaultMaxAllowedY       = 234
	maxClippedThreshold      = 0.01
)

var defaultMaxTmpNoise = [3]int{700, 1500, 3000}

// Mode is a parsed filter chain.
type Mode struct {
	spec string

	luma   filterSet
	chroma filterSet

	baseDcDiff        int
	flatnessThreshold int
	forcedQuant       int
	minAllowedY       int
	maxAllowedY       int
	maxTmpNoise       [3]int
}

// String returns the chain with empty entries removed.
func (m *Mode) String() string { return m.spec }

// LumaFilters returns the long names of the filters enabled on the luma plane.
func (m *Mode) LumaFilters() []string { return m.luma.names() }

// ChromaFilters returns the long names of the filters enabled on the chroma planes.
func (m *Mode) ChromaFilters() []string { return m.chroma.names() }

// Temporal reports whether the chain carries state from frame to frame, so
// output depends on the order frames are filtered in.
func (m *Mode) Temporal() bool { return (m.luma | m.chroma).has(tempNoise) }

func (s filterSet) names() []string {
	var out []string
	for _, f := range filters {
		if s.has(f.mask) {
			out = append(out, f.long)
		}
	}
	return out
}

// ParseMode parses a filter chain such as "hb:a,vb:a,dr:a" or "de,-dr".
//
// Filters are separated by ',' or '/', options by ':' or '|'. A leading '-'
// disables a filter enabled earlier in the chain. The "a" option enables a
// filter only when quality reaches its minimum for the plane kind. Empty
// entries are ignored.
func ParseMode(spec string, quality int) (*Mode, error) {
	quality = max(0, min(quality, ports.QualityMax))

	m := &Mode{
		baseDcDiff:        defaultBaseDcDiff,
		flatnessThreshold: defaultFlatnessThreshold,
		forcedQuant:       defaultForcedQuant,
		minAllowedY:       defaultMinAllowedY,
		maxAllowedY:       defaultMaxAllowedY,
		maxTmpNoise:       defaultMaxTmpNoise,
	}

	var kept []string
	for _, token := range strings.FieldsFunc(spec, isAny(filterDelimiters)) {
		if err := m.apply(token, quality); err != nil {
			return nil, err
		}
		kept = append(kept, token)
	}
	m.spec = strings.Join(kept, ",")
	return m, nil
}

func isAny(set string) func(rune) bool {
	return func(r rune) bool { return strings.ContainsRune(set, r) }
}

func (m *Mode) apply(token string, quality int) error {
	parts := strings.FieldsFunc(token, isAny(optionDelimiters))
	if len(parts) == 0 {
		return nil
	}
	name, options := parts[0], parts[1:]

	enable := true
	if strings.HasPrefix(name, "-") {
		enable = false
		name = name[1:]
	}

	for _, a := range aliases {
		for _, n := range a.names {
			if n != name {
				continue
			}
			if len(options) > 0 {
				return fmt.Errorf("%w: %q on alias %q", ErrUnknownOption, strings.Join(options, ":"), name)
			}
			for _, sub := range strings.Split(a.expansion, ",") {
				if !enable {
					sub = "-" + sub
				}
				if err := m.apply(sub, quality); err != nil {
					return err
				}
			}
			return nil
		}
	}

	var f *filterInfo
	for i := range filters {
		if filters[i].short == name || filters[i].long == name {
			f = &filters[i]
			break
		}
	}
	if f == nil {
		return fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}

	q := 1000000 // without autoq every filter passes the quality gate
	luma := true
	chrom := -1 // filter default
	var unknown []string
	for _, opt := range options {
		switch opt {
		case "a", "autoq":
			q = quality
		case "y", "nochrom":
			chrom = 0
		case "c", "chrom":
			chrom = 1
		case "n", "noluma":
			luma = false
		default:
			unknown = append(unknown, opt)
		}
	}

	m.luma &^= f.mask
	m.chroma &^= f.mask
	if enable {
		if luma && q >= f.minLumQ {
			m.luma |= f.mask
		}
		if (chrom == 1 || (chrom == -1 && f.chromDefault)) && q >= f.minChromQ {
			m.chroma |= f.mask
		}
		unknown = m.applyNumeric(f.mask, unknown)
	}

	if len(unknown) > 0 {
		return fmt.Errorf("%w: %q for %s", ErrUnknownOption, strings.Join(unknown, ":"), f.long)
	}
	return nil
}

// applyNumeric consumes the filter specific options and returns the rest.
func (m *Mode) applyNumeric(mask filterSet, opts []string) []string {
	switch mask {
	case levelFix:
		rest := opts[:0:0]
		for _, o := range opts {
			if o == "f" || o == "fullyrange" {
				m.minAllowedY, m.maxAllowedY = 0, 255
				continue
			}
			rest = append(rest, o)
		}
		return rest

	case tempNoise:
		vals, rest := leadingInts(opts, 3)
		copy(m.maxTmpNoise[:], vals)
		return rest

	case hDeblock, vDeblock, hADeblock, vADeblock:
		vals, rest := leadingInts(opts, 2)
		if len(vals) > 0 {
			m.baseDcDiff = vals[0]
		}
		if len(vals) > 1 {
			m.flatnessThreshold = vals[1]
		}
		return rest

	case forceQuant:
		vals, rest := leadingInts(opts, 1)
		if len(vals) > 0 {
			m.forcedQuant = vals[0]
		}
		return rest
	}
	return opts
}

// leadingInts parses up to n integers (decimal, 0x hex or 0 octal) from the
// front of opts.
func leadingInts(opts []string, n int) ([]int, []string) {
	var vals []int
	for len(opts) > 0 && len(vals) < n {
		v, err := strconv.ParseInt(opts[0], 0, 32)
		if err != nil {
			break
		}
		vals = append(vals, int(v))
		opts = opts[1:]
	}
	return vals, opts
}
