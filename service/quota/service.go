package quota

import (
	"github.com/elC0mpa/oci-freetier/model"
)

func NewService() *service {
	return &service{}
}

// CalculateHeadroom subtracts discovered usage from the fixed Free Tier
// limits. Values may go negative when the tenancy exceeds a limit; the raw
// value is kept so warnings stay accurate.
func (s *service) CalculateHeadroom(inv *model.Inventory) model.Headroom {
	return model.Headroom{
		AMDInstances: model.MaxAMDInstances - len(inv.AMDInstances),
		ARMOCPUs:     model.MaxARMOCPUs - inv.ARMOCPUsUsed(),
		ARMMemoryGB:  model.MaxARMMemoryGB - inv.ARMMemoryUsed(),
		StorageGB:    model.MaxStorageGB - inv.StorageUsed(),
		VCNs:         model.MaxVCNs - len(inv.VCNs),
	}
}

// ValidatePlan checks every quota dimension and returns one violation per
// exceeded dimension. Errors are data here: the caller reports all of them
// at once instead of stopping at the first.
func (s *service) ValidatePlan(plan *model.InstancePlan, headroom model.Headroom) []model.Violation {
	clamped := headroom.Clamped()
	var violations []model.Violation

	if plan.AMDCount > clamped.AMDInstances {
		violations = append(violations, model.Violation{
			Dimension: "AMD instances",
			Requested: plan.AMDCount,
			Available: clamped.AMDInstances,
		})
	}
	if ocpus := plan.TotalARMOCPUs(); ocpus > clamped.ARMOCPUs {
		violations = append(violations, model.Violation{
			Dimension: "ARM OCPUs",
			Requested: ocpus,
			Available: clamped.ARMOCPUs,
		})
	}
	if memory := plan.TotalARMMemoryGB(); memory > clamped.ARMMemoryGB {
		violations = append(violations, model.Violation{
			Dimension: "ARM memory GB",
			Requested: memory,
			Available: clamped.ARMMemoryGB,
		})
	}
	if storage := plan.TotalStorageGB(); storage > clamped.StorageGB {
		violations = append(violations, model.Violation{
			Dimension: "storage GB",
			Requested: storage,
			Available: clamped.StorageGB,
		})
	}

	return violations
}
