package terraform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/elC0mpa/oci-freetier/model"
	"github.com/elC0mpa/oci-freetier/utils"
)

const planFileName = "tfplan"

// Workflow runs the full terraform sequence: init, import of discovered
// resources, validate, plan, the approval gate, then apply with capacity
// retry. confirm is consulted only when no auto-approve switch is set.
func (s *service) Workflow(ctx context.Context, inv *model.Inventory, plan *model.InstancePlan, confirm func() bool) error {
	utils.PrintHeader("TERRAFORM WORKFLOW")

	utils.PrintStatus("Initializing terraform...")
	if err := utils.Retry(func() error {
		return s.runner.Init(ctx)
	}, s.retry, "terraform init"); err != nil {
		return fmt.Errorf("terraform init failed: %w", err)
	}
	utils.PrintSuccess("Terraform initialized")

	if err := s.ImportExisting(ctx, inv, plan); err != nil {
		return err
	}

	utils.PrintStatus("Validating configuration...")
	if err := s.runner.Validate(ctx); err != nil {
		return fmt.Errorf("terraform validate failed: %w", err)
	}
	utils.PrintSuccess("Configuration is valid")

	utils.PrintStatus("Planning changes...")
	changes, err := s.runner.Plan(ctx, planFileName)
	if err != nil {
		return fmt.Errorf("terraform plan failed: %w", err)
	}

	if !changes {
		os.Remove(filepath.Join(s.opts.WorkDir, planFileName))
		utils.PrintSuccess("Infrastructure already matches the plan, nothing to do")
		return s.showOutputs(ctx)
	}

	if rendered, err := s.runner.ShowPlan(ctx, planFileName); err == nil {
		fmt.Println(rendered)
	}

	if !s.approved(confirm) {
		utils.PrintWarning("Apply cancelled")
		utils.PrintStatus("Plan saved to %s; run 'terraform apply %s' to deploy it later", planFileName, planFileName)
		return nil
	}

	utils.PrintStatus("Applying changes...")
	if err := s.applyWithRetry(ctx); err != nil {
		return err
	}
	os.Remove(filepath.Join(s.opts.WorkDir, planFileName))
	utils.PrintSuccess("Infrastructure deployed")

	return s.showOutputs(ctx)
}

func (s *service) approved(confirm func() bool) bool {
	if s.opts.AutoDeploy || s.opts.NonInteractive {
		utils.PrintStatus("Auto-approving apply")
		return true
	}
	if confirm == nil {
		return false
	}
	return confirm()
}

// applyWithRetry retries capacity shortages with exponential backoff and
// aborts immediately on anything else.
func (s *service) applyWithRetry(ctx context.Context) error {
	return utils.Retry(func() error {
		err := s.runner.Apply(ctx, planFileName)
		if err == nil {
			return nil
		}
		if IsCapacityError(err) {
			utils.PrintWarning("OCI is out of capacity, will retry")
			return err
		}
		return backoff.Permanent(err)
	}, s.retry, "terraform apply")
}

// ImportExisting brings every discovered resource the plan covers into
// terraform state. Resources already in state are skipped; individual
// import failures are counted and reported but never abort the run.
func (s *service) ImportExisting(ctx context.Context, inv *model.Inventory, plan *model.InstancePlan) error {
	utils.PrintStatus("Importing existing resources into terraform state...")

	inState, err := s.runner.StateAddresses(ctx)
	if err != nil {
		utils.PrintDebug("Could not read current state (%v), assuming empty", err)
		inState = map[string]bool{}
	}

	imported, failed := 0, 0
	importOne := func(address, id string) bool {
		if inState[address] {
			utils.PrintDebug("%s already in state, skipping", address)
			return true
		}
		if err := s.runner.Import(ctx, address, id); err != nil {
			utils.PrintWarning("Failed to import %s: %v", address, err)
			failed++
			return false
		}
		utils.PrintSuccess("Imported %s", address)
		imported++
		return true
	}

	for i, id := range sortedKeys(inv.VCNs) {
		if i > 0 {
			utils.PrintWarning("Multiple VCNs found, only the first is managed")
			break
		}
		// Children are only addressable once their VCN is in state.
		if importOne("oci_core_vcn.main", id) {
			s.importVCNChildren(inv, id, importOne)
		}
	}

	for i, id := range sortedKeys(inv.AMDInstances) {
		if i >= plan.AMDCount {
			break
		}
		importOne(fmt.Sprintf("oci_core_instance.amd[%d]", i), id)
	}

	for i, id := range sortedKeys(inv.ARMInstances) {
		if i >= plan.ARMCount {
			break
		}
		importOne(fmt.Sprintf("oci_core_instance.arm[%d]", i), id)
	}

	if failed > 0 {
		utils.PrintWarning("Imported %d resources, %d failed", imported, failed)
	} else {
		utils.PrintSuccess("Imported %d resources", imported)
	}
	return nil
}

// importVCNChildren imports the first gateway and subnet of the managed
// VCN plus its default route table and security list.
func (s *service) importVCNChildren(inv *model.Inventory, vcnID string, importOne func(address, id string) bool) {
	for _, id := range sortedKeys(inv.InternetGateways) {
		if inv.InternetGateways[id].VCNID == vcnID {
			importOne("oci_core_internet_gateway.main", id)
			break
		}
	}

	for _, id := range sortedKeys(inv.Subnets) {
		if inv.Subnets[id].VCNID == vcnID {
			importOne("oci_core_subnet.main", id)
			break
		}
	}

	for _, id := range sortedKeys(inv.RouteTables) {
		rt := inv.RouteTables[id]
		if rt.VCNID == vcnID && strings.Contains(strings.ToLower(rt.Name), "default") {
			importOne("oci_core_default_route_table.main", id)
			break
		}
	}

	for _, id := range sortedKeys(inv.SecurityLists) {
		sl := inv.SecurityLists[id]
		if sl.VCNID == vcnID && strings.Contains(strings.ToLower(sl.Name), "default") {
			importOne("oci_core_default_security_list.main", id)
			break
		}
	}
}

// Destroy tears down everything in state.
func (s *service) Destroy(ctx context.Context) error {
	utils.PrintHeader("DESTROYING INFRASTRUCTURE")
	if err := s.runner.Destroy(ctx); err != nil {
		return fmt.Errorf("terraform destroy failed: %w", err)
	}
	utils.PrintSuccess("All managed resources destroyed")
	return nil
}

func (s *service) showOutputs(ctx context.Context) error {
	values, err := s.runner.OutputValues(ctx)
	if err != nil {
		utils.PrintDebug("Could not read outputs: %v", err)
		return nil
	}
	if len(values) == 0 {
		return nil
	}

	utils.PrintSubheader("Outputs")
	for _, name := range sortedKeys(values) {
		fmt.Printf("  %s = %s\n", name, values[name])
	}
	return nil
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
