package model

// Free Tier shapes used to bucket compute instances.
const (
	AMDShape = "VM.Standard.E2.1.Micro"
	ARMShape = "VM.Standard.A1.Flex"
)

// Instance represents a discovered compute instance
type Instance struct {
	ID        string
	Name      string
	State     string
	Shape     string
	PublicIP  string
	PrivateIP string
	OCPUs     int
	MemoryGB  int
}

// VCN represents a discovered virtual cloud network
type VCN struct {
	ID   string
	Name string
	CIDR string
}

// Subnet represents a discovered subnet with its parent VCN reference
type Subnet struct {
	ID    string
	Name  string
	CIDR  string
	VCNID string
}

// InternetGateway represents a discovered internet gateway
type InternetGateway struct {
	ID    string
	Name  string
	VCNID string
}

// RouteTable represents a discovered route table
type RouteTable struct {
	ID    string
	Name  string
	VCNID string
}

// SecurityList represents a discovered security list
type SecurityList struct {
	ID    string
	Name  string
	VCNID string
}

// Volume represents a discovered boot or block volume
type Volume struct {
	ID     string
	Name   string
	SizeGB int
}

// Inventory is the snapshot of one tenancy scan, keyed by resource OCID.
// It is built once per run and never mutated afterwards.
type Inventory struct {
	VCNs             map[string]VCN
	Subnets          map[string]Subnet
	InternetGateways map[string]InternetGateway
	RouteTables      map[string]RouteTable
	SecurityLists    map[string]SecurityList
	AMDInstances     map[string]Instance
	ARMInstances     map[string]Instance
	BootVolumes      map[string]Volume
	BlockVolumes     map[string]Volume
}

// NewInventory returns an empty snapshot with all categories allocated.
func NewInventory() *Inventory {
	return &Inventory{
		VCNs:             make(map[string]VCN),
		Subnets:          make(map[string]Subnet),
		InternetGateways: make(map[string]InternetGateway),
		RouteTables:      make(map[string]RouteTable),
		SecurityLists:    make(map[string]SecurityList),
		AMDInstances:     make(map[string]Instance),
		ARMInstances:     make(map[string]Instance),
		BootVolumes:      make(map[string]Volume),
		BlockVolumes:     make(map[string]Volume),
	}
}

// ARMOCPUsUsed sums the OCPUs of every discovered ARM instance.
func (inv *Inventory) ARMOCPUsUsed() int {
	total := 0
	for _, instance := range inv.ARMInstances {
		total += instance.OCPUs
	}
	return total
}

// ARMMemoryUsed sums the memory of every discovered ARM instance.
func (inv *Inventory) ARMMemoryUsed() int {
	total := 0
	for _, instance := range inv.ARMInstances {
		total += instance.MemoryGB
	}
	return total
}

// BootStorageUsed sums discovered boot volume sizes.
func (inv *Inventory) BootStorageUsed() int {
	total := 0
	for _, volume := range inv.BootVolumes {
		total += volume.SizeGB
	}
	return total
}

// BlockStorageUsed sums discovered block volume sizes.
func (inv *Inventory) BlockStorageUsed() int {
	total := 0
	for _, volume := range inv.BlockVolumes {
		total += volume.SizeGB
	}
	return total
}

// StorageUsed sums all discovered volume sizes.
func (inv *Inventory) StorageUsed() int {
	return inv.BootStorageUsed() + inv.BlockStorageUsed()
}
