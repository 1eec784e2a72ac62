package quota

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/oci-freetier/model"
)

func TestCalculateHeadroom_EmptyTenancy(t *testing.T) {
	s := NewService()

	headroom := s.CalculateHeadroom(model.NewInventory())

	assert.Equal(t, model.MaxAMDInstances, headroom.AMDInstances)
	assert.Equal(t, model.MaxARMOCPUs, headroom.ARMOCPUs)
	assert.Equal(t, model.MaxARMMemoryGB, headroom.ARMMemoryGB)
	assert.Equal(t, model.MaxStorageGB, headroom.StorageGB)
	assert.Equal(t, model.MaxVCNs, headroom.VCNs)
}

func TestCalculateHeadroom_PartiallyUsed(t *testing.T) {
	inv := model.NewInventory()
	inv.AMDInstances["ocid1.instance.amd1"] = model.Instance{Name: "amd-1", Shape: model.AMDShape}
	inv.ARMInstances["ocid1.instance.arm1"] = model.Instance{Name: "arm-1", Shape: model.ARMShape, OCPUs: 2, MemoryGB: 12}
	inv.VCNs["ocid1.vcn.1"] = model.VCN{Name: "main"}
	inv.BootVolumes["ocid1.bootvolume.1"] = model.Volume{SizeGB: 50}
	inv.BlockVolumes["ocid1.volume.1"] = model.Volume{SizeGB: 30}

	headroom := NewService().CalculateHeadroom(inv)

	assert.Equal(t, 1, headroom.AMDInstances)
	assert.Equal(t, 2, headroom.ARMOCPUs)
	assert.Equal(t, 12, headroom.ARMMemoryGB)
	assert.Equal(t, 120, headroom.StorageGB)
	assert.Equal(t, 1, headroom.VCNs)
}

func TestCalculateHeadroom_OverLimitStaysNegative(t *testing.T) {
	inv := model.NewInventory()
	inv.BootVolumes["ocid1.bootvolume.1"] = model.Volume{SizeGB: 150}
	inv.BootVolumes["ocid1.bootvolume.2"] = model.Volume{SizeGB: 100}

	headroom := NewService().CalculateHeadroom(inv)

	assert.Equal(t, -50, headroom.StorageGB)
	assert.Equal(t, 0, headroom.Clamped().StorageGB)
}

func TestValidatePlan(t *testing.T) {
	tests := []struct {
		name       string
		plan       model.InstancePlan
		headroom   model.Headroom
		dimensions []string
	}{
		{
			name: "plan within headroom",
			plan: model.InstancePlan{
				ARMCount:        1,
				ARMOCPUs:        []int{4},
				ARMMemoryGB:     []int{24},
				ARMBootVolumeGB: []int{200},
			},
			headroom: model.Headroom{
				AMDInstances: 2, ARMOCPUs: 4, ARMMemoryGB: 24, StorageGB: 200, VCNs: 2,
			},
		},
		{
			name: "too many AMD instances",
			plan: model.InstancePlan{AMDCount: 2, AMDBootVolumeGB: 50},
			headroom: model.Headroom{
				AMDInstances: 1, StorageGB: 200,
			},
			dimensions: []string{"AMD instances"},
		},
		{
			name: "every dimension exceeded",
			plan: model.InstancePlan{
				AMDCount:        2,
				AMDBootVolumeGB: 100,
				ARMCount:        2,
				ARMOCPUs:        []int{4, 2},
				ARMMemoryGB:     []int{24, 12},
				ARMBootVolumeGB: []int{100, 100},
			},
			headroom: model.Headroom{
				AMDInstances: 1, ARMOCPUs: 4, ARMMemoryGB: 24, StorageGB: 200,
			},
			dimensions: []string{"AMD instances", "ARM OCPUs", "ARM memory GB", "storage GB"},
		},
		{
			name: "negative headroom treated as zero",
			plan: model.InstancePlan{
				ARMCount:        1,
				ARMOCPUs:        []int{1},
				ARMMemoryGB:     []int{6},
				ARMBootVolumeGB: []int{50},
			},
			headroom: model.Headroom{
				AMDInstances: 2, ARMOCPUs: -1, ARMMemoryGB: -6, StorageGB: -10, VCNs: 2,
			},
			dimensions: []string{"ARM OCPUs", "ARM memory GB", "storage GB"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := NewService().ValidatePlan(&tt.plan, tt.headroom)

			require.Len(t, violations, len(tt.dimensions))
			for i, dim := range tt.dimensions {
				assert.Equal(t, dim, violations[i].Dimension)
				assert.Greater(t, violations[i].Requested, violations[i].Available)
			}
		})
	}
}

func TestValidatePlan_FullTenancyRejectsAnyAllocation(t *testing.T) {
	inv := model.NewInventory()
	inv.AMDInstances["ocid1.instance.amd1"] = model.Instance{Shape: model.AMDShape}
	inv.AMDInstances["ocid1.instance.amd2"] = model.Instance{Shape: model.AMDShape}
	inv.ARMInstances["ocid1.instance.arm1"] = model.Instance{Shape: model.ARMShape, OCPUs: 4, MemoryGB: 24}
	inv.BootVolumes["ocid1.bootvolume.1"] = model.Volume{SizeGB: 200}

	s := NewService()
	headroom := s.CalculateHeadroom(inv)

	plan := &model.InstancePlan{AMDCount: 1, AMDBootVolumeGB: 50}
	violations := s.ValidatePlan(plan, headroom)

	require.NotEmpty(t, violations)
	assert.Equal(t, "AMD instances", violations[0].Dimension)
}
