package postproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/ffpp/pkg/ports"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name       string
		spec       string
		quality    int
		wantLuma   filterSet
		wantChroma filterSet
	}{
		{"single", "hb", ports.QualityMax, hDeblock, hDeblock},
		{"long name", "hdeblock", ports.QualityMax, hDeblock, hDeblock},
		{"default alias", "de", ports.QualityMax, hDeblock | vDeblock | dering, hDeblock | vDeblock | dering},
		{"fast alias", "fa", ports.QualityMax, hX1Filter | vX1Filter | dering, hX1Filter | vX1Filter | dering},
		{"ac alias", "ac", ports.QualityMax, hADeblock | vADeblock | dering, hADeblock | vADeblock | dering},
		{"trailing separator", "hb:a,vb:a,", ports.QualityMax, hDeblock | vDeblock, hDeblock | vDeblock},
		{"slash separator", "hb/vb", ports.QualityMax, hDeblock | vDeblock, hDeblock | vDeblock},
		{"disable", "de,-dr", ports.QualityMax, hDeblock | vDeblock, hDeblock | vDeblock},
		{"disable alias", "de,lb,-de", ports.QualityMax, linearBlendDeint, linearBlendDeint},
		{"nochrom", "hb:y", ports.QualityMax, hDeblock, 0},
		{"noluma", "hb:n", ports.QualityMax, 0, hDeblock},
		{"autolevels luma only", "al", ports.QualityMax, levelFix, 0},
		{"autolevels chrom", "al:c", ports.QualityMax, levelFix, levelFix},
		{"autoq gates dering", "dr:a", 4, 0, 0},
		{"autoq luma only", "dr:a", 5, dering, 0},
		{"autoq tmpnoise above max", "tn:a", ports.QualityMax, 0, 0},
		{"tmpnoise without autoq", "tn", ports.QualityMax, tempNoise, tempNoise},
		{"autoq quality zero", "de", 0, 0, 0},
		{"pipe option delimiter", "hb|a", ports.QualityMax, hDeblock, hDeblock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMode(tt.spec, tt.quality)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLuma, m.luma, "luma %v", m.LumaFilters())
			assert.Equal(t, tt.wantChroma, m.chroma, "chroma %v", m.ChromaFilters())
		})
	}
}

func TestParseMode_Errors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"xx", ErrUnknownFilter},
		{"hb,bogus", ErrUnknownFilter},
		{"-", ErrUnknownFilter},
		{"hb:zz", ErrUnknownOption},
		{"de:a", ErrUnknownOption},
		{"dr:5", ErrUnknownOption},
		{"-hb:32", ErrUnknownOption},
		{"tn:1:2:3:4", ErrUnknownOption},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := ParseMode(tt.spec, ports.QualityMax)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseMode_NumericOptions(t *testing.T) {
	m, err := ParseMode("hb:a:64:20,tn:100:200:300,fq:4,al:f", ports.QualityMax)
	require.NoError(t, err)

	assert.Equal(t, 64, m.baseDcDiff)
	assert.Equal(t, 20, m.flatnessThreshold)
	assert.Equal(t, [3]int{100, 200, 300}, m.maxTmpNoise)
	assert.Equal(t, 4, m.forcedQuant)
	assert.Equal(t, 0, m.minAllowedY)
	assert.Equal(t, 255, m.maxAllowedY)

	m, err = ParseMode("ac", ports.QualityMax)
	require.NoError(t, err)
	assert.Equal(t, 128, m.baseDcDiff)
	assert.Equal(t, 7, m.flatnessThreshold)

	m, err = ParseMode("hb:0x20", ports.QualityMax)
	require.NoError(t, err)
	assert.Equal(t, 32, m.baseDcDiff)
}

func TestParseMode_Defaults(t *testing.T) {
	m, err := ParseMode("tn:50", ports.QualityMax)
	require.NoError(t, err)

	assert.Equal(t, 32, m.baseDcDiff)
	assert.Equal(t, 39, m.flatnessThreshold)
	assert.Equal(t, 15, m.forcedQuant)
	assert.Equal(t, 16, m.minAllowedY)
	assert.Equal(t, 234, m.maxAllowedY)
	assert.Equal(t, [3]int{50, 1500, 3000}, m.maxTmpNoise)
}

func TestParseMode_String(t *testing.T) {
	m, err := ParseMode("hb:a,,vb:a,", ports.QualityMax)
	require.NoError(t, err)
	assert.Equal(t, "hb:a,vb:a", m.String())
	assert.Equal(t, []string{"hdeblock", "vdeblock"}, m.LumaFilters())
}

func TestHelp(t *testing.T) {
	h := Help()
	for _, f := range Filters() {
		assert.Contains(t, h, f.Long)
	}
	assert.Contains(t, h, "hb:a,vb:a,dr:a")
	assert.Len(t, Filters(), len(filters))
}

func TestMode_Temporal(t *testing.T) {
	for spec, want := range map[string]bool{
		"de":        false,
		"de,tn":     true,
		"tn,-tn":    false,
		"tn:a":      false,
		"hb:c,tn:y": true,
	} {
		m, err := ParseMode(spec, ports.QualityMax)
		require.NoError(t, err, spec)
		assert.Equal(t, want, m.Temporal(), spec)
	}
}
