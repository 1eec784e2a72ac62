package response

// AccountInfo is the identity summary returned by oci_get_account_info
type AccountInfo struct {
	TenancyOCID string `json:"tenancy_ocid"`
	UserOCID    string `json:"user_ocid,omitempty"`
	Region      string `json:"region"`
	AuthMethod  string `json:"auth_method"`
}

// Instance is one discovered compute instance
type Instance struct {
	Name      string `json:"name"`
	Shape     string `json:"shape"`
	State     string `json:"state"`
	PublicIP  string `json:"public_ip"`
	PrivateIP string `json:"private_ip"`
	OCPUs     int    `json:"ocpus,omitempty"`
	MemoryGB  int    `json:"memory_gb,omitempty"`
}

// Inventory summarizes everything discovered in the tenancy
type Inventory struct {
	AMDInstances []Instance `json:"amd_instances"`
	ARMInstances []Instance `json:"arm_instances"`
	VCNCount     int        `json:"vcn_count"`
	SubnetCount  int        `json:"subnet_count"`
	BootVolumes  int        `json:"boot_volumes"`
	BlockVolumes int        `json:"block_volumes"`
	StorageGB    int        `json:"storage_gb_used"`
}

// Headroom is the remaining Free Tier capacity per dimension. Negative
// values mean the tenancy is over the limit.
type Headroom struct {
	AMDInstances int `json:"amd_instances"`
	ARMOCPUs     int `json:"arm_ocpus"`
	ARMMemoryGB  int `json:"arm_memory_gb"`
	StorageGB    int `json:"storage_gb"`
	VCNs         int `json:"vcns"`
}

// PlanPreview is the maximum-utilization plan for the remaining headroom
type PlanPreview struct {
	AMDCount        int      `json:"amd_count"`
	AMDBootVolumeGB int      `json:"amd_boot_volume_gb,omitempty"`
	AMDHostnames    []string `json:"amd_hostnames,omitempty"`
	ARMCount        int      `json:"arm_count"`
	ARMOCPUs        []int    `json:"arm_ocpus,omitempty"`
	ARMMemoryGB     []int    `json:"arm_memory_gb,omitempty"`
	ARMBootVolumeGB []int    `json:"arm_boot_volume_gb,omitempty"`
	ARMHostnames    []string `json:"arm_hostnames,omitempty"`
	TotalStorageGB  int      `json:"total_storage_gb"`
}
