package response

import (
	"sort"

	"github.com/elC0mpa/oci-freetier/model"
)

// ConvertAccountInfo converts model.TenancyContext to response.AccountInfo
func ConvertAccountInfo(tenancy *model.TenancyContext) *AccountInfo {
	if tenancy == nil {
		return nil
	}
	return &AccountInfo{
		TenancyOCID: tenancy.TenancyOCID,
		UserOCID:    tenancy.UserOCID,
		Region:      tenancy.Region,
		AuthMethod:  string(tenancy.AuthMethod),
	}
}

// ConvertInventory converts model.Inventory to response.Inventory
func ConvertInventory(inv *model.Inventory) *Inventory {
	if inv == nil {
		return nil
	}
	return &Inventory{
		AMDInstances: convertInstances(inv.AMDInstances),
		ARMInstances: convertInstances(inv.ARMInstances),
		VCNCount:     len(inv.VCNs),
		SubnetCount:  len(inv.Subnets),
		BootVolumes:  len(inv.BootVolumes),
		BlockVolumes: len(inv.BlockVolumes),
		StorageGB:    inv.StorageUsed(),
	}
}

func convertInstances(instances map[string]model.Instance) []Instance {
	converted := make([]Instance, 0, len(instances))
	for _, instance := range instances {
		converted = append(converted, Instance{
			Name:      instance.Name,
			Shape:     instance.Shape,
			State:     instance.State,
			PublicIP:  instance.PublicIP,
			PrivateIP: instance.PrivateIP,
			OCPUs:     instance.OCPUs,
			MemoryGB:  instance.MemoryGB,
		})
	}
	sort.Slice(converted, func(i, j int) bool {
		return converted[i].Name < converted[j].Name
	})
	return converted
}

// ConvertHeadroom converts model.Headroom to response.Headroom
func ConvertHeadroom(headroom model.Headroom) *Headroom {
	return &Headroom{
		AMDInstances: headroom.AMDInstances,
		ARMOCPUs:     headroom.ARMOCPUs,
		ARMMemoryGB:  headroom.ARMMemoryGB,
		StorageGB:    headroom.StorageGB,
		VCNs:         headroom.VCNs,
	}
}

// ConvertPlan converts model.InstancePlan to response.PlanPreview
func ConvertPlan(plan *model.InstancePlan) *PlanPreview {
	if plan == nil {
		return nil
	}
	return &PlanPreview{
		AMDCount:        plan.AMDCount,
		AMDBootVolumeGB: plan.AMDBootVolumeGB,
		AMDHostnames:    plan.AMDHostnames,
		ARMCount:        plan.ARMCount,
		ARMOCPUs:        plan.ARMOCPUs,
		ARMMemoryGB:     plan.ARMMemoryGB,
		ARMBootVolumeGB: plan.ARMBootVolumeGB,
		ARMHostnames:    plan.ARMHostnames,
		TotalStorageGB:  plan.TotalStorageGB(),
	}
}
