package model

// InstancePlan is the desired-state record consumed by the template
// generator and the import driver. The ARM slices are parallel arrays: all
// of them always have length equal to ARMCount.
type InstancePlan struct {
	AMDCount        int      `yaml:"amd_count"`
	AMDBootVolumeGB int      `yaml:"amd_boot_volume_gb"`
	AMDHostnames    []string `yaml:"amd_hostnames"`

	ARMCount         int      `yaml:"arm_count"`
	ARMOCPUs         []int    `yaml:"arm_ocpus"`
	ARMMemoryGB      []int    `yaml:"arm_memory_gb"`
	ARMBootVolumeGB  []int    `yaml:"arm_boot_volume_gb"`
	ARMBlockVolumeGB []int    `yaml:"arm_block_volume_gb"`
	ARMHostnames     []string `yaml:"arm_hostnames"`
}

// TotalARMOCPUs sums the planned ARM OCPU allocation.
func (p *InstancePlan) TotalARMOCPUs() int {
	total := 0
	for _, ocpus := range p.ARMOCPUs {
		total += ocpus
	}
	return total
}

// TotalARMMemoryGB sums the planned ARM memory allocation.
func (p *InstancePlan) TotalARMMemoryGB() int {
	total := 0
	for _, memory := range p.ARMMemoryGB {
		total += memory
	}
	return total
}

// TotalStorageGB sums every planned boot and block volume.
func (p *InstancePlan) TotalStorageGB() int {
	total := p.AMDCount * p.AMDBootVolumeGB
	for _, size := range p.ARMBootVolumeGB {
		total += size
	}
	for _, size := range p.ARMBlockVolumeGB {
		total += size
	}
	return total
}

// Strategy identifies how a plan was produced. Mirroring strategies restate
// resources already counted as used, so they are not re-validated against
// remaining headroom; allocating strategies are.
type Strategy int

const (
	StrategyFromExisting Strategy = iota + 1
	StrategyFromSaved
	StrategyCustom
	StrategyMaximum
)

// Allocating reports whether the strategy requests new capacity.
func (s Strategy) Allocating() bool {
	return s == StrategyCustom || s == StrategyMaximum
}
