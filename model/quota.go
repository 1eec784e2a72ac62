package model

// Always Free Tier ceilings. Fixed by the provider, never mutated at runtime.
const (
	MaxAMDInstances = 2
	MaxARMInstances = 4
	MaxARMOCPUs     = 4
	MaxARMMemoryGB  = 24
	MaxStorageGB    = 200
	MaxVCNs         = 2
	MinBootVolumeGB = 47
)

// Headroom is the per-run remaining capacity in each Free Tier dimension.
// Values are raw (limit minus used) and may be negative when the tenancy
// already exceeds a limit; callers clamp before allocating but keep the raw
// value for warnings.
type Headroom struct {
	AMDInstances int
	ARMOCPUs     int
	ARMMemoryGB  int
	StorageGB    int
	VCNs         int
}

// Clamped returns a copy with every dimension floored at zero, suitable as
// an upper bound for new allocation.
func (h Headroom) Clamped() Headroom {
	return Headroom{
		AMDInstances: max(h.AMDInstances, 0),
		ARMOCPUs:     max(h.ARMOCPUs, 0),
		ARMMemoryGB:  max(h.ARMMemoryGB, 0),
		StorageGB:    max(h.StorageGB, 0),
		VCNs:         max(h.VCNs, 0),
	}
}

// Violation describes one quota dimension a plan exceeds.
type Violation struct {
	Dimension string
	Requested int
	Available int
}
