package ffpp

import (
	"github.com/user/ffpp/pkg/ports"
	"github.com/user/ffpp/pkg/video"
)

// cpuFlagTable maps host capability bits to postprocess library bits.
// Host bits without an entry are dropped.
var cpuFlagTable = []struct {
	host video.CPUFlags
	pp   ports.PPFlags
}{
	{video.CPUMMX, ports.PPCPUCapsMMX},
	{video.CPUIntegerSSE, ports.PPCPUCapsMMX2},
	{video.CPU3DNowExt, ports.PPCPUCaps3DNow},
	{video.CPUSSE2, ports.PPCPUCapsSSE2},
}

// TranslateCPUFlags converts host capabilities into postprocess library capabilities.
func TranslateCPUFlags(host video.CPUFlags) ports.PPFlags {
	var flags ports.PPFlags
	for _, m := range cpuFlagTable {
		if host&m.host != 0 {
			flags |= m.pp
		}
	}
	return flags
}
