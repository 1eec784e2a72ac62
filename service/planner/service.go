package planner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/elC0mpa/oci-freetier/model"
	"github.com/elC0mpa/oci-freetier/utils"
	"gopkg.in/yaml.v3"
)

// SidecarFile is the structured persisted form of the last generated plan.
// variables.tf stays the source of truth for terraform; this file makes
// "use saved configuration" lossless.
const SidecarFile = "instance-plan.yaml"

const (
	defaultAMDBootGB = 50
	minAMDBootGB     = 50
	maxAMDBootGB     = 100
	minARMBootGB     = 50
	maxARMBootGB     = 200
)

func NewService(opts model.Options, prompter Prompter) *service {
	return &service{opts: opts, prompter: prompter}
}

// Choose runs the strategy menu and returns the selected plan. Auto modes
// skip the menu and mirror existing instances.
func (s *service) Choose(tenancy *model.TenancyContext, inv *model.Inventory, headroom model.Headroom) (*model.InstancePlan, model.Strategy, error) {
	if s.opts.AutoUseExisting || s.opts.NonInteractive {
		utils.PrintStatus("Auto mode: using existing instances")
		return s.FromExisting(inv), model.StrategyFromExisting, nil
	}

	savedAvailable := true
	if _, err := s.FromSaved(); err != nil {
		savedAvailable = false
	}

	options := []string{
		"Use existing instances (manage what's already deployed)",
		"Use saved configuration" + map[bool]string{true: "", false: " (not available)"}[savedAvailable],
		"Configure new instances (respecting Free Tier limits)",
		"Maximum Free Tier configuration (use all available resources)",
	}

	switch s.prompter.Select("Choose configuration", options, 0) {
	case 1:
		if savedAvailable {
			plan, err := s.FromSaved()
			if err == nil {
				utils.PrintSuccess("Using saved configuration")
				return plan, model.StrategyFromSaved, nil
			}
			utils.PrintWarning("Saved configuration unreadable: %v", err)
		} else {
			utils.PrintError("No saved configuration available")
		}
		return s.FromExisting(inv), model.StrategyFromExisting, nil
	case 2:
		return s.Custom(tenancy, headroom), model.StrategyCustom, nil
	case 3:
		return s.Maximum(tenancy, headroom), model.StrategyMaximum, nil
	default:
		return s.FromExisting(inv), model.StrategyFromExisting, nil
	}
}

// FromExisting mirrors the discovered instances one to one. An empty
// tenancy falls back to the default single-ARM plan.
func (s *service) FromExisting(inv *model.Inventory) *model.InstancePlan {
	utils.PrintStatus("Configuring based on existing instances...")

	plan := &model.InstancePlan{
		AMDBootVolumeGB: defaultAMDBootGB,
	}

	for _, id := range sortedKeys(inv.AMDInstances) {
		plan.AMDCount++
		plan.AMDHostnames = append(plan.AMDHostnames, inv.AMDInstances[id].Name)
	}

	for _, id := range sortedKeys(inv.ARMInstances) {
		instance := inv.ARMInstances[id]
		plan.ARMCount++
		plan.ARMHostnames = append(plan.ARMHostnames, instance.Name)
		plan.ARMOCPUs = append(plan.ARMOCPUs, instance.OCPUs)
		plan.ARMMemoryGB = append(plan.ARMMemoryGB, instance.MemoryGB)
		plan.ARMBootVolumeGB = append(plan.ARMBootVolumeGB, defaultAMDBootGB)
		plan.ARMBlockVolumeGB = append(plan.ARMBlockVolumeGB, 0)
	}

	if plan.AMDCount == 0 && plan.ARMCount == 0 {
		utils.PrintStatus("No existing instances found, using default configuration")
		plan.ARMCount = 1
		plan.ARMOCPUs = []int{model.MaxARMOCPUs}
		plan.ARMMemoryGB = []int{model.MaxARMMemoryGB}
		plan.ARMBootVolumeGB = []int{model.MaxStorageGB}
		plan.ARMBlockVolumeGB = []int{0}
		plan.ARMHostnames = []string{"arm-instance-1"}
	}

	utils.PrintSuccess("Configuration: %dx AMD, %dx ARM", plan.AMDCount, plan.ARMCount)
	return plan
}

// FromSaved recovers the previous plan, preferring the structured side-car
// and falling back to pattern extraction from variables.tf for trees written
// before the side-car existed.
func (s *service) FromSaved() (*model.InstancePlan, error) {
	sidecarPath := filepath.Join(s.opts.WorkDir, SidecarFile)
	if data, err := os.ReadFile(sidecarPath); err == nil {
		var plan model.InstancePlan
		if err := yaml.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", SidecarFile, err)
		}
		return &plan, nil
	}

	return parseVariablesFile(filepath.Join(s.opts.WorkDir, "variables.tf"))
}

// SaveSidecar persists the plan next to the generated files.
func (s *service) SaveSidecar(plan *model.InstancePlan) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	path := filepath.Join(s.opts.WorkDir, SidecarFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", SidecarFile, err)
	}
	return nil
}

// Custom gathers counts and sizes interactively. ARM OCPU and memory
// choices decrement a running remaining-headroom counter, so each
// instance's ceiling depends on what the previous one actually took.
func (s *service) Custom(tenancy *model.TenancyContext, headroom model.Headroom) *model.InstancePlan {
	utils.PrintStatus("Custom instance configuration...")
	available := headroom.Clamped()

	plan := &model.InstancePlan{}

	if available.AMDInstances > 0 {
		count := 0
		if !s.opts.NonInteractive {
			count = s.prompter.Int(fmt.Sprintf("Number of AMD instances (0-%d)", available.AMDInstances),
				0, 0, available.AMDInstances)
		}
		plan.AMDCount = count
	}

	if plan.AMDCount > 0 {
		plan.AMDBootVolumeGB = defaultAMDBootGB
		if !s.opts.NonInteractive {
			plan.AMDBootVolumeGB = s.prompter.Int("AMD boot volume GB", defaultAMDBootGB, minAMDBootGB, maxAMDBootGB)
		}
		for i := 1; i <= plan.AMDCount; i++ {
			hostname := fmt.Sprintf("amd-instance-%d", i)
			if !s.opts.NonInteractive {
				hostname = s.prompter.String(fmt.Sprintf("Hostname for AMD instance %d", i), hostname)
			}
			plan.AMDHostnames = append(plan.AMDHostnames, hostname)
		}
	}

	if !tenancy.ARMEnabled() || available.ARMOCPUs == 0 {
		return plan
	}

	plan.ARMCount = 1
	if !s.opts.NonInteractive {
		plan.ARMCount = s.prompter.Int(fmt.Sprintf("Number of ARM instances (0-%d)", model.MaxARMInstances),
			1, 0, model.MaxARMInstances)
	}

	remainingOCPUs := available.ARMOCPUs
	remainingMemory := available.ARMMemoryGB

	for i := 1; i <= plan.ARMCount; i++ {
		if remainingOCPUs == 0 {
			utils.PrintWarning("No ARM OCPUs left for instance %d, stopping at %d", i, i-1)
			plan.ARMCount = i - 1
			break
		}

		hostname := fmt.Sprintf("arm-instance-%d", i)
		if !s.opts.NonInteractive {
			hostname = s.prompter.String(fmt.Sprintf("Hostname for ARM instance %d", i), hostname)
		}
		plan.ARMHostnames = append(plan.ARMHostnames, hostname)

		ocpus := remainingOCPUs
		if !s.opts.NonInteractive {
			ocpus = s.prompter.Int(fmt.Sprintf("  OCPUs (1-%d)", remainingOCPUs), remainingOCPUs, 1, remainingOCPUs)
		}
		plan.ARMOCPUs = append(plan.ARMOCPUs, ocpus)
		remainingOCPUs -= ocpus

		maxMemory := min(ocpus*6, remainingMemory)
		memory := maxMemory
		if !s.opts.NonInteractive && maxMemory > 0 {
			memory = s.prompter.Int(fmt.Sprintf("  Memory GB (1-%d)", maxMemory), maxMemory, 1, maxMemory)
		}
		plan.ARMMemoryGB = append(plan.ARMMemoryGB, memory)
		remainingMemory -= memory

		boot := minARMBootGB
		if !s.opts.NonInteractive {
			boot = s.prompter.Int("  Boot volume GB", minARMBootGB, minARMBootGB, maxARMBootGB)
		}
		plan.ARMBootVolumeGB = append(plan.ARMBootVolumeGB, boot)
		plan.ARMBlockVolumeGB = append(plan.ARMBlockVolumeGB, 0)
	}

	return plan
}

// Maximum allocates every remaining AMD slot and one ARM instance
// consuming all remaining OCPU and memory headroom, with its boot volume
// sized to soak up remaining storage.
func (s *service) Maximum(tenancy *model.TenancyContext, headroom model.Headroom) *model.InstancePlan {
	utils.PrintStatus("Configuring maximum Free Tier utilization...")
	available := headroom.Clamped()

	plan := &model.InstancePlan{
		AMDCount:        available.AMDInstances,
		AMDBootVolumeGB: defaultAMDBootGB,
	}
	for i := 1; i <= plan.AMDCount; i++ {
		plan.AMDHostnames = append(plan.AMDHostnames, fmt.Sprintf("amd-instance-%d", i))
	}

	if tenancy.ARMEnabled() && available.ARMOCPUs > 0 {
		bootVolume := available.StorageGB - plan.AMDCount*plan.AMDBootVolumeGB
		if bootVolume < model.MinBootVolumeGB {
			bootVolume = model.MinBootVolumeGB
		}

		plan.ARMCount = 1
		plan.ARMOCPUs = []int{available.ARMOCPUs}
		plan.ARMMemoryGB = []int{available.ARMMemoryGB}
		plan.ARMBootVolumeGB = []int{bootVolume}
		plan.ARMBlockVolumeGB = []int{0}
		plan.ARMHostnames = []string{"arm-instance-1"}
	}

	utils.PrintSuccess("Maximum config: %dx AMD, %dx ARM (%d OCPUs, %dGB)",
		plan.AMDCount, plan.ARMCount, plan.TotalARMOCPUs(), plan.TotalARMMemoryGB())
	return plan
}
