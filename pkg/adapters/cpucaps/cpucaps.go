// Package cpucaps detects and parses host CPU capabilities.
package cpucaps

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/klauspost/cpuid/v2"

	"github.com/user/ffpp/pkg/video"
)

// ErrUnknownCapability is returned by Parse for names it does not know.
var ErrUnknownCapability = errors.New("cpucaps: unknown capability")

var featureTable = []struct {
	flag     video.CPUFlags
	features []cpuid.FeatureID // any one of them
}{
	{video.CPUMMX, []cpuid.FeatureID{cpuid.MMX}},
	{video.CPUIntegerSSE, []cpuid.FeatureID{cpuid.SSE, cpuid.MMXEXT}},
	{video.CPUSSE, []cpuid.FeatureID{cpuid.SSE}},
	{video.CPUSSE2, []cpuid.FeatureID{cpuid.SSE2}},
	{video.CPU3DNow, []cpuid.FeatureID{cpuid.AMD3DNOW}},
	{video.CPU3DNowExt, []cpuid.FeatureID{cpuid.AMD3DNOWEXT}},
	{video.CPUSSE3, []cpuid.FeatureID{cpuid.SSE3}},
	{video.CPUSSSE3, []cpuid.FeatureID{cpuid.SSSE3}},
	{video.CPUSSE41, []cpuid.FeatureID{cpuid.SSE4}},
	{video.CPUSSE42, []cpuid.FeatureID{cpuid.SSE42}},
}

// Detect returns the capabilities of the running CPU.
func Detect() video.CPUFlags {
	return fromCPU(cpuid.CPU, runtime.GOARCH)
}

func fromCPU(cpu cpuid.CPUInfo, arch string) video.CPUFlags {
	var flags video.CPUFlags
	if arch == "386" || arch == "amd64" {
		flags |= video.CPUFPU
	}
	for _, e := range featureTable {
		for _, id := range e.features {
			if cpu.Has(id) {
				flags |= e.flag
				break
			}
		}
	}
	return flags
}

// Parse reads a capability list such as "mmx,isse,sse2". "auto" detects the
// host, "none" or an empty string selects no capabilities.
func Parse(s string) (video.CPUFlags, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "auto":
		return Detect(), nil
	case "", "none":
		return 0, nil
	}

	var flags video.CPUFlags
	for _, name := range strings.Split(s, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		f, ok := video.CPUFlagByName(name)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownCapability, name)
		}
		flags |= f
	}
	return flags, nil
}

// Names lists the capabilities in flags, for display.
func Names(flags video.CPUFlags) []string {
	return flags.Names()
}

// Describe returns the brand string and the detected capability list.
func Describe() string {
	return fmt.Sprintf("%s (%s)", cpuid.CPU.BrandName, Detect())
}
