package filegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/elC0mpa/oci-freetier/model"
	"github.com/elC0mpa/oci-freetier/utils"
	"github.com/flosch/pongo2/v6"
)

// Generate renders every terraform file plus the cloud-init payload into
// the work directory. Existing files are renamed to timestamped backups
// first, never overwritten in place.
func (s *service) Generate(tenancy *model.TenancyContext, plan *model.InstancePlan) error {
	utils.PrintHeader("GENERATING TERRAFORM FILES")

	generated := time.Now().Format(time.RFC3339)

	files := []struct {
		name     string
		template string
		ctx      pongo2.Context
	}{
		{"provider.tf", providerTemplate, s.providerContext(tenancy, generated)},
		{"variables.tf", variablesTemplate, s.variablesContext(tenancy, plan, generated)},
		{"data_sources.tf", dataSourcesTemplate, nil},
		{"main.tf", mainTemplate, pongo2.Context{"generated": generated}},
		{"block_volumes.tf", blockVolumesTemplate, nil},
		{"cloud-init.yaml", cloudInitTemplate, nil},
	}

	for _, f := range files {
		utils.PrintStatus("Creating %s...", f.name)
		if err := s.render(f.name, f.template, f.ctx); err != nil {
			return err
		}
	}

	utils.PrintSuccess("All Terraform files generated successfully")
	return nil
}

func (s *service) render(name, tmpl string, ctx pongo2.Context) error {
	path := filepath.Join(s.opts.WorkDir, name)

	if _, err := os.Stat(path); err == nil {
		backup := fmt.Sprintf("%s.bak.%s", path, time.Now().Format("20060102_150405"))
		if err := os.Rename(path, backup); err != nil {
			return fmt.Errorf("failed to back up %s: %w", name, err)
		}
		utils.PrintDebug("Backed up existing %s to %s", name, filepath.Base(backup))
	}

	content := tmpl
	if ctx != nil {
		t, err := pongo2.FromString(tmpl)
		if err != nil {
			return fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		content, err = t.Execute(ctx)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", name, err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (s *service) providerContext(tenancy *model.TenancyContext, generated string) pongo2.Context {
	ctx := pongo2.Context{
		"generated": generated,
		"region":    tenancy.Region,
	}

	switch tenancy.AuthMethod {
	case model.AuthSecurityToken:
		ctx["provider_auth"] = "SecurityToken"
		ctx["provider_profile"] = s.opts.OCIProfile
	case model.AuthInstancePrincipal:
		ctx["provider_auth"] = "InstancePrincipal"
	case model.AuthResourcePrincipal:
		ctx["provider_auth"] = "ResourcePrincipal"
	case model.AuthWorkloadIdentity:
		ctx["provider_auth"] = "OKEWorkloadIdentity"
	default:
		// api_key is the provider default and needs no auth line.
		ctx["provider_profile"] = s.opts.OCIProfile
	}

	if s.opts.TFBackend == "oci" {
		ctx["backend_oci"] = true
		ctx["backend_bucket"] = s.opts.TFBackendBucket
		ctx["backend_key"] = s.opts.TFBackendStateKey
		ctx["backend_region"] = s.opts.TFBackendRegion
		ctx["backend_endpoint"] = s.opts.TFBackendEndpoint
	}
	return ctx
}

func (s *service) variablesContext(tenancy *model.TenancyContext, plan *model.InstancePlan, generated string) pongo2.Context {
	return pongo2.Context{
		"generated":             generated,
		"tenancy_ocid":          tenancy.TenancyOCID,
		"user_ocid":             tenancy.UserOCID,
		"region":                tenancy.Region,
		"ubuntu_x86_image_ocid": tenancy.UbuntuX86ImageOCID,
		"ubuntu_arm_image_ocid": tenancy.UbuntuARMImageOCID,
		"amd_count":             plan.AMDCount,
		"amd_boot_volume_gb":    plan.AMDBootVolumeGB,
		"amd_hostnames":         hclStringList(plan.AMDHostnames),
		"arm_count":             plan.ARMCount,
		"arm_ocpus":             hclIntList(plan.ARMOCPUs),
		"arm_memory":            hclIntList(plan.ARMMemoryGB),
		"arm_boot_volumes":      hclIntList(plan.ARMBootVolumeGB),
		"arm_block_volumes":     hclIntList(plan.ARMBlockVolumeGB),
		"arm_hostnames":         hclStringList(plan.ARMHostnames),
		"max_storage_gb":        model.MaxStorageGB,
		"max_arm_ocpus":         model.MaxARMOCPUs,
		"max_arm_memory_gb":     model.MaxARMMemoryGB,
	}
}

// hclStringList renders a Go slice as an HCL list literal. Rendering in Go
// keeps the templates free of loop constructs. The result is marked safe
// because pongo2 would otherwise HTML-escape the quotes.
func hclStringList(items []string) *pongo2.Value {
	if len(items) == 0 {
		return pongo2.AsSafeValue("[]")
	}
	quoted := make([]string, 0, len(items))
	for _, item := range items {
		quoted = append(quoted, fmt.Sprintf("%q", item))
	}
	return pongo2.AsSafeValue("[" + strings.Join(quoted, ", ") + "]")
}

func hclIntList(items []int) *pongo2.Value {
	if len(items) == 0 {
		return pongo2.AsSafeValue("[]")
	}
	rendered := make([]string, 0, len(items))
	for _, item := range items {
		rendered = append(rendered, fmt.Sprintf("%d", item))
	}
	return pongo2.AsSafeValue("[" + strings.Join(rendered, ", ") + "]")
}
