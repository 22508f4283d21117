package video

import "strings"

// CPUFlags is the host's view of the available SIMD tiers.
// The bit layout follows the Avisynth CPUF_* constants.
type CPUFlags uint32

const (
	CPUForce      CPUFlags = 0x01
	CPUFPU        CPUFlags = 0x02
	CPUMMX        CPUFlags = 0x04
	CPUIntegerSSE CPUFlags = 0x08 // PIII, Athlon
	CPUSSE        CPUFlags = 0x10
	CPUSSE2       CPUFlags = 0x20 // PIV, Hammer
	CPU3DNow      CPUFlags = 0x40
	CPU3DNowExt   CPUFlags = 0x80 // Athlon
	CPUSSE3       CPUFlags = 0x100
	CPUSSSE3      CPUFlags = 0x200
	CPUSSE41      CPUFlags = 0x400
	CPUSSE42      CPUFlags = 0x800
)

var cpuFlagNames = []struct {
	flag CPUFlags
	name string
}{
	{CPUFPU, "fpu"},
	{CPUMMX, "mmx"},
	{CPUIntegerSSE, "isse"},
	{CPUSSE, "sse"},
	{CPUSSE2, "sse2"},
	{CPU3DNow, "3dnow"},
	{CPU3DNowExt, "3dnowext"},
	{CPUSSE3, "sse3"},
	{CPUSSSE3, "ssse3"},
	{CPUSSE41, "sse4.1"},
	{CPUSSE42, "sse4.2"},
}

// Has reports whether every bit of mask is set.
func (f CPUFlags) Has(mask CPUFlags) bool {
	return f&mask == mask
}

// Names lists the set capabilities in ascending bit order.
func (f CPUFlags) Names() []string {
	var names []string
	for _, n := range cpuFlagNames {
		if f&n.flag != 0 {
			names = append(names, n.name)
		}
	}
	return names
}

// String joins Names with commas, or returns "none".
func (f CPUFlags) String() string {
	names := f.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// CPUFlagByName looks up a single capability by its short name.
func CPUFlagByName(name string) (CPUFlags, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range cpuFlagNames {
		if n.name == name {
			return n.flag, true
		}
	}
	return 0, false
}
