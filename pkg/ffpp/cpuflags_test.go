package ffpp

import (
	"testing"

	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

func TestTranslateCPUFlags(t *testing.T) {
	tests := []struct {
		name string
		host video.CPUFlags
		want ports.PPFlags
	}{
		{"none", 0, 0},
		{"mmx", video.CPUMMX, ports.PPCPUCapsMMX},
		{"integer sse", video.CPUIntegerSSE, ports.PPCPUCapsMMX2},
		{"3dnow ext", video.CPU3DNowExt, ports.PPCPUCaps3DNow},
		{"sse2", video.CPUSSE2, ports.PPCPUCapsSSE2},
		{"plain 3dnow dropped", video.CPU3DNow, 0},
		{"sse dropped", video.CPUSSE, 0},
		{"newer sets dropped", video.CPUSSE3 | video.CPUSSSE3 | video.CPUSSE41 | video.CPUSSE42, 0},
		{"force and fpu dropped", video.CPUForce | video.CPUFPU, 0},
		{
			"all mapped",
			video.CPUMMX | video.CPUIntegerSSE | video.CPU3DNowExt | video.CPUSSE2,
			ports.PPCPUCapsMMX | ports.PPCPUCapsMMX2 | ports.PPCPUCaps3DNow | ports.PPCPUCapsSSE2,
		},
		{
			"typical x86-64",
			video.CPUFPU | video.CPUMMX | video.CPUIntegerSSE | video.CPUSSE | video.CPUSSE2 | video.CPUSSE3,
			ports.PPCPUCapsMMX | ports.PPCPUCapsMMX2 | ports.PPCPUCapsSSE2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateCPUFlags(tt.host)
			if got != tt.want {
				t.Errorf("TranslateCPUFlags(%v) = 0x%08x, want 0x%08x", tt.host, uint32(got), uint32(tt.want))
			}
			if got.FormatClass() != 0 {
				t.Errorf("TranslateCPUFlags(%v) set format bits 0x%02x", tt.host, uint32(got.FormatClass()))
			}
		})
	}
}

// Each host bit maps independently: translating a union equals the union of
// the translations.
func TestTranslateCPUFlags_PerBit(t *testing.T) {
	for a := 0; a < 12; a++ {
		for b := 0; b < 12; b++ {
			fa, fb := video.CPUFlags(1)<<a, video.CPUFlags(1)<<b
			got := TranslateCPUFlags(fa | fb)
			want := TranslateCPUFlags(fa) | TranslateCPUFlags(fb)
			if got != want {
				t.Errorf("bits %d|%d: got 0x%08x, want 0x%08x", a, b, uint32(got), uint32(want))
			}
		}
	}
}
