package service

import (
	"context"

	"github.com/elC0mpa/oci-freetier/model"
)

// ConfigService resolves OCI identity and authentication from the profile
// config file.
type ConfigService interface {
	ReadValue(key string) (string, error)
	AuthMethod() (model.AuthMethod, error)
	TenancyContext() (*model.TenancyContext, error)
	Authenticate(ctx context.Context) error
}

// IdentityService provides tenancy-level lookups
type IdentityService interface {
	Probe(ctx context.Context, tenancyOCID string) error
	FirstAvailabilityDomain(ctx context.Context, tenancyOCID string) (string, error)
	ResolveUserOCID(ctx context.Context, tenancyOCID string) (string, error)
}

// ComputeService provides compute instance and image queries
type ComputeService interface {
	ListInstances(ctx context.Context, compartmentID string) ([]model.Instance, error)
	GetShapeConfig(ctx context.Context, instanceID string) (ocpus, memoryGB int, err error)
	LatestUbuntuImage(ctx context.Context, compartmentID, shape string) (imageOCID, name string, err error)
}

// NetworkService provides VCN graph queries and instance IP resolution
type NetworkService interface {
	ListVCNs(ctx context.Context, compartmentID string) ([]model.VCN, error)
	ListSubnets(ctx context.Context, compartmentID, vcnID string) ([]model.Subnet, error)
	ListInternetGateways(ctx context.Context, compartmentID, vcnID string) ([]model.InternetGateway, error)
	ListRouteTables(ctx context.Context, compartmentID, vcnID string) ([]model.RouteTable, error)
	ListSecurityLists(ctx context.Context, compartmentID, vcnID string) ([]model.SecurityList, error)
	ResolveInstanceIPs(ctx context.Context, compartmentID, instanceID string) (publicIP, privateIP string, err error)
}

// StorageService provides boot and block volume queries
type StorageService interface {
	ListBootVolumes(ctx context.Context, compartmentID, availabilityDomain string) ([]model.Volume, error)
	ListBlockVolumes(ctx context.Context, compartmentID, availabilityDomain string) ([]model.Volume, error)
}

// InventoryService scans the tenancy into an immutable snapshot
type InventoryService interface {
	Scan(ctx context.Context, tenancy *model.TenancyContext) *model.Inventory
}

// QuotaService computes Free Tier headroom and validates plans against it
type QuotaService interface {
	CalculateHeadroom(inv *model.Inventory) model.Headroom
	ValidatePlan(plan *model.InstancePlan, headroom model.Headroom) []model.Violation
}

// PlannerService produces the desired-state instance plan
type PlannerService interface {
	Choose(tenancy *model.TenancyContext, inv *model.Inventory, headroom model.Headroom) (*model.InstancePlan, model.Strategy, error)
	FromExisting(inv *model.Inventory) *model.InstancePlan
	FromSaved() (*model.InstancePlan, error)
	Maximum(tenancy *model.TenancyContext, headroom model.Headroom) *model.InstancePlan
	SaveSidecar(plan *model.InstancePlan) error
}

// FileGenService renders the terraform and cloud-init files
type FileGenService interface {
	Generate(tenancy *model.TenancyContext, plan *model.InstancePlan) error
}

// TerraformService drives the terraform workflow against generated files
type TerraformService interface {
	Workflow(ctx context.Context, inv *model.Inventory, plan *model.InstancePlan, confirm func() bool) error
	Destroy(ctx context.Context) error
}
