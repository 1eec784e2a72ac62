package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/elC0mpa/oci-freetier/model"
	"github.com/elC0mpa/oci-freetier/utils"
)

// Run executes the full reconciliation sequence: resolve identity, discover
// tenancy resources, plan against Free Tier headroom, generate terraform
// files, and drive the terraform workflow.
func (o *Orchestrator) Run(ctx context.Context) error {
	tenancy, err := o.resolveTenancy(ctx)
	if err != nil {
		return err
	}

	utils.PrintSubheader("Scanning tenancy resources")
	utils.StartSpinner(" Scanning OCI resources...")
	inv := o.services.Inventory.Scan(ctx, tenancy)
	utils.StopSpinner()

	headroom := o.services.Quota.CalculateHeadroom(inv)

	utils.DrawInventoryTable(inv)
	utils.DrawHeadroomTable(headroom)
	utils.DrawUtilizationChart(inv)
	warnOverLimit(headroom)

	plan, strategy, err := o.services.Planner.Choose(tenancy, inv, headroom)
	if err != nil {
		return err
	}

	// Mirror plans restate what the scan already counted; only plans that
	// request new capacity are checked against the remaining headroom.
	if strategy.Allocating() {
		if violations := o.services.Quota.ValidatePlan(plan, headroom); len(violations) > 0 {
			for _, v := range violations {
				utils.PrintError("%s: requested %d, only %d available", v.Dimension, v.Requested, v.Available)
			}
			return fmt.Errorf("plan exceeds Free Tier limits in %d dimension(s)", len(violations))
		}
	}

	if err := o.services.Planner.SaveSidecar(plan); err != nil {
		utils.PrintWarning("Could not persist plan: %v", err)
	}

	if o.opts.SkipConfig {
		utils.PrintStatus("Skipping file generation, using existing terraform files")
	} else if err := o.services.FileGen.Generate(tenancy, plan); err != nil {
		return err
	}

	confirm := func() bool {
		return o.prompter.Confirm("Apply these changes?", false)
	}
	if err := o.services.Terraform.Workflow(ctx, inv, plan, confirm); err != nil {
		return err
	}

	utils.PrintHeader("DONE")
	utils.PrintSuccess("Free Tier infrastructure is reconciled")
	return nil
}

// Destroy tears down all managed infrastructure after an explicit
// confirmation. Auto-deploy skips the gate; plain non-interactive runs
// refuse rather than destroy silently.
func (o *Orchestrator) Destroy(ctx context.Context) error {
	if !o.opts.AutoDeploy {
		if o.opts.NonInteractive {
			return fmt.Errorf("refusing to destroy without confirmation; pass --auto-deploy to override")
		}
		if !o.prompter.Confirm("Destroy ALL managed Free Tier infrastructure?", false) {
			utils.PrintWarning("Destroy cancelled")
			return nil
		}
	}
	return o.services.Terraform.Destroy(ctx)
}

// resolveTenancy builds the full tenancy context: identity from the OCI
// profile, connectivity probe, availability domain, region images, and the
// SSH key pair the instances will trust.
func (o *Orchestrator) resolveTenancy(ctx context.Context) (*model.TenancyContext, error) {
	utils.PrintSubheader("Resolving OCI identity")

	if o.opts.ForceReauth {
		if err := o.services.Config.Authenticate(ctx); err != nil {
			return nil, err
		}
	}

	tenancy, err := o.services.Config.TenancyContext()
	if err != nil {
		return nil, err
	}
	utils.PrintStatus("Tenancy: %s", tenancy.TenancyOCID)
	utils.PrintStatus("Region: %s", tenancy.Region)
	utils.PrintStatus("Auth method: %s", tenancy.AuthMethod)

	if err := o.services.Identity.Probe(ctx, tenancy.TenancyOCID); err != nil {
		if tenancy.AuthMethod != model.AuthSecurityToken || o.opts.NonInteractive {
			return nil, fmt.Errorf("OCI connectivity check failed: %w", err)
		}
		utils.PrintWarning("Connectivity check failed, refreshing session token")
		if err := o.services.Config.Authenticate(ctx); err != nil {
			return nil, err
		}
		if err := o.services.Identity.Probe(ctx, tenancy.TenancyOCID); err != nil {
			return nil, fmt.Errorf("OCI connectivity check failed after reauthentication: %w", err)
		}
	}
	utils.PrintSuccess("Connected to OCI")

	if tenancy.UserOCID == "" {
		userOCID, err := o.services.Identity.ResolveUserOCID(ctx, tenancy.TenancyOCID)
		if err != nil {
			utils.PrintWarning("Could not resolve user OCID: %v", err)
		} else {
			tenancy.UserOCID = userOCID
		}
	}

	ad, err := o.services.Identity.FirstAvailabilityDomain(ctx, tenancy.TenancyOCID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability domains: %w", err)
	}
	tenancy.AvailabilityDomain = ad
	utils.PrintStatus("Availability domain: %s", ad)

	x86Image, x86Name, err := o.services.Compute.LatestUbuntuImage(ctx, tenancy.TenancyOCID, model.AMDShape)
	if err != nil {
		return nil, fmt.Errorf("failed to find an Ubuntu x86 image: %w", err)
	}
	tenancy.UbuntuX86ImageOCID = x86Image
	utils.PrintStatus("Ubuntu x86 image: %s", x86Name)

	armImage, armName, err := o.services.Compute.LatestUbuntuImage(ctx, tenancy.TenancyOCID, model.ARMShape)
	if err != nil {
		utils.PrintWarning("No Ubuntu ARM image found, ARM instances disabled: %v", err)
	} else {
		tenancy.UbuntuARMImageOCID = armImage
		utils.PrintStatus("Ubuntu ARM image: %s", armName)
	}

	pubKey, err := utils.EnsureSSHKeyPair(filepath.Join(o.opts.WorkDir, "ssh_keys"))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare SSH keys: %w", err)
	}
	tenancy.SSHPublicKey = pubKey

	return tenancy, nil
}

func warnOverLimit(headroom model.Headroom) {
	for _, dim := range []struct {
		name  string
		value int
	}{
		{"AMD instances", headroom.AMDInstances},
		{"ARM OCPUs", headroom.ARMOCPUs},
		{"ARM memory GB", headroom.ARMMemoryGB},
		{"storage GB", headroom.StorageGB},
		{"VCNs", headroom.VCNs},
	} {
		if dim.value < 0 {
			utils.PrintWarning("Over Free Tier limit: %s by %d", dim.name, -dim.value)
		}
	}
}
