package cpucaps

import (
	"testing"

	"github.com/klauspost/cpuid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/ffpp/pkg/video"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want video.CPUFlags
	}{
		{"", 0},
		{"none", 0},
		{"mmx", video.CPUMMX},
		{"mmx,isse,sse2", video.CPUMMX | video.CPUIntegerSSE | video.CPUSSE2},
		{" MMX , 3dnowext ,", video.CPUMMX | video.CPU3DNowExt},
		{"sse4.1,sse4.2", video.CPUSSE41 | video.CPUSSE42},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Parse("mmx,avx9000")
	assert.ErrorIs(t, err, ErrUnknownCapability)
}

func TestParse_Auto(t *testing.T) {
	got, err := Parse("auto")
	require.NoError(t, err)
	assert.Equal(t, Detect(), got)
}

func TestFromCPU(t *testing.T) {
	var cpu cpuid.CPUInfo
	assert.Equal(t, video.CPUFlags(0), fromCPU(cpu, "arm64"))
	assert.Equal(t, video.CPUFPU, fromCPU(cpu, "amd64"))
}

func TestDetect_Consistent(t *testing.T) {
	flags := Detect()
	if flags.Has(video.CPUSSE) {
		assert.True(t, flags.Has(video.CPUIntegerSSE), "SSE implies integer SSE")
	}
	if cpuid.CPU.Supports(cpuid.SSE2) {
		assert.True(t, flags.Has(video.CPUSSE2))
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"mmx", "sse2"}, Names(video.CPUMMX|video.CPUSSE2))
	assert.Empty(t, Names(0))
}
