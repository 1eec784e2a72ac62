package terraform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/oci-freetier/model"
)

// fakeRunner records every terraform invocation.
type fakeRunner struct {
	state       map[string]bool
	stateErr    error
	importErr   map[string]error
	applyErrs   []error
	planChanges bool
	planDir     string

	imports []string
	applies int
	inits   int
}

func (r *fakeRunner) Init(ctx context.Context) error { r.inits++; return nil }

func (r *fakeRunner) Validate(ctx context.Context) error { return nil }

func (r *fakeRunner) Plan(ctx context.Context, planFile string) (bool, error) {
	if r.planDir != "" {
		if err := os.WriteFile(filepath.Join(r.planDir, planFile), []byte("plan"), 0o644); err != nil {
			return false, err
		}
	}
	return r.planChanges, nil
}

func (r *fakeRunner) Apply(ctx context.Context, planFile string) error {
	r.applies++
	if len(r.applyErrs) == 0 {
		return nil
	}
	err := r.applyErrs[0]
	r.applyErrs = r.applyErrs[1:]
	return err
}

func (r *fakeRunner) Destroy(ctx context.Context) error { return nil }

func (r *fakeRunner) Import(ctx context.Context, address, id string) error {
	if err := r.importErr[address]; err != nil {
		return err
	}
	r.imports = append(r.imports, address)
	return nil
}

func (r *fakeRunner) StateAddresses(ctx context.Context) (map[string]bool, error) {
	if r.stateErr != nil {
		return nil, r.stateErr
	}
	if r.state == nil {
		return map[string]bool{}, nil
	}
	return r.state, nil
}

func (r *fakeRunner) ShowPlan(ctx context.Context, planFile string) (string, error) {
	return "", errors.New("no rendered plan")
}

func (r *fakeRunner) OutputValues(ctx context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}

func testOpts(t *testing.T) model.Options {
	return model.Options{
		NonInteractive:   true,
		RetryMaxAttempts: 3,
		RetryBaseDelay:   time.Millisecond,
		WorkDir:          t.TempDir(),
	}
}

func fullInventory() *model.Inventory {
	inv := model.NewInventory()
	inv.VCNs["ocid1.vcn.1"] = model.VCN{ID: "ocid1.vcn.1", Name: "main"}
	inv.Subnets["ocid1.subnet.1"] = model.Subnet{ID: "ocid1.subnet.1", Name: "main", VCNID: "ocid1.vcn.1"}
	inv.InternetGateways["ocid1.ig.1"] = model.InternetGateway{ID: "ocid1.ig.1", Name: "main-igw", VCNID: "ocid1.vcn.1"}
	inv.RouteTables["ocid1.rt.1"] = model.RouteTable{ID: "ocid1.rt.1", Name: "Default Route Table for main", VCNID: "ocid1.vcn.1"}
	inv.SecurityLists["ocid1.sl.1"] = model.SecurityList{ID: "ocid1.sl.1", Name: "Default Security List for main", VCNID: "ocid1.vcn.1"}
	inv.ARMInstances["ocid1.instance.arm1"] = model.Instance{ID: "ocid1.instance.arm1", Shape: model.ARMShape, OCPUs: 4, MemoryGB: 24}
	return inv
}

func TestIsCapacityError(t *testing.T) {
	tests := []struct {
		err      error
		capacity bool
	}{
		{nil, false},
		{errors.New("Out of host capacity: Limit exceeded"), true},
		{errors.New("500-InternalError, Out of capacity for shape VM.Standard.A1.Flex"), true},
		{errors.New("OutOfCapacity"), true},
		{errors.New("code: OutOfHostCapacity"), true},
		{errors.New("Invalid parameter: shape"), false},
		{errors.New("401-NotAuthenticated"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.capacity, IsCapacityError(tt.err), "error: %v", tt.err)
	}
}

func TestImportExisting_ImportsDiscoveredResources(t *testing.T) {
	runner := &fakeRunner{}
	s := newServiceWithRunner(runner, testOpts(t))

	plan := &model.InstancePlan{ARMCount: 1}
	require.NoError(t, s.ImportExisting(context.Background(), fullInventory(), plan))

	assert.Equal(t, []string{
		"oci_core_vcn.main",
		"oci_core_internet_gateway.main",
		"oci_core_subnet.main",
		"oci_core_default_route_table.main",
		"oci_core_default_security_list.main",
		"oci_core_instance.arm[0]",
	}, runner.imports)
}

func TestImportExisting_SkipsResourcesAlreadyInState(t *testing.T) {
	runner := &fakeRunner{state: map[string]bool{
		"oci_core_vcn.main":        true,
		"oci_core_instance.arm[0]": true,
	}}
	s := newServiceWithRunner(runner, testOpts(t))

	plan := &model.InstancePlan{ARMCount: 1}
	require.NoError(t, s.ImportExisting(context.Background(), fullInventory(), plan))

	assert.NotContains(t, runner.imports, "oci_core_vcn.main")
	assert.NotContains(t, runner.imports, "oci_core_instance.arm[0]")
	assert.Contains(t, runner.imports, "oci_core_subnet.main")
}

func TestImportExisting_FailuresDoNotAbort(t *testing.T) {
	runner := &fakeRunner{importErr: map[string]error{
		"oci_core_subnet.main": errors.New("resource not found"),
	}}
	s := newServiceWithRunner(runner, testOpts(t))

	plan := &model.InstancePlan{ARMCount: 1}
	require.NoError(t, s.ImportExisting(context.Background(), fullInventory(), plan))

	assert.NotContains(t, runner.imports, "oci_core_subnet.main")
	assert.Contains(t, runner.imports, "oci_core_instance.arm[0]")
}

func TestImportExisting_OnlyPlannedInstanceSlots(t *testing.T) {
	inv := fullInventory()
	inv.ARMInstances["ocid1.instance.arm2"] = model.Instance{ID: "ocid1.instance.arm2", Shape: model.ARMShape}
	runner := &fakeRunner{}
	s := newServiceWithRunner(runner, testOpts(t))

	plan := &model.InstancePlan{ARMCount: 1}
	require.NoError(t, s.ImportExisting(context.Background(), inv, plan))

	assert.Contains(t, runner.imports, "oci_core_instance.arm[0]")
	assert.NotContains(t, runner.imports, "oci_core_instance.arm[1]")
}

func TestImportExisting_UnreadableStateAssumedEmpty(t *testing.T) {
	runner := &fakeRunner{stateErr: errors.New("no state file")}
	s := newServiceWithRunner(runner, testOpts(t))

	plan := &model.InstancePlan{ARMCount: 1}
	require.NoError(t, s.ImportExisting(context.Background(), fullInventory(), plan))
	assert.Contains(t, runner.imports, "oci_core_vcn.main")
}

func TestImportExisting_FailedVCNImportSkipsChildren(t *testing.T) {
	runner := &fakeRunner{importErr: map[string]error{
		"oci_core_vcn.main": errors.New("resource not found"),
	}}
	s := newServiceWithRunner(runner, testOpts(t))

	plan := &model.InstancePlan{ARMCount: 1}
	require.NoError(t, s.ImportExisting(context.Background(), fullInventory(), plan))

	assert.NotContains(t, runner.imports, "oci_core_internet_gateway.main")
	assert.NotContains(t, runner.imports, "oci_core_subnet.main")
	assert.NotContains(t, runner.imports, "oci_core_default_route_table.main")
	assert.NotContains(t, runner.imports, "oci_core_default_security_list.main")
	assert.Contains(t, runner.imports, "oci_core_instance.arm[0]")
}

func TestImportExisting_VCNAlreadyInStateStillImportsChildren(t *testing.T) {
	runner := &fakeRunner{state: map[string]bool{"oci_core_vcn.main": true}}
	s := newServiceWithRunner(runner, testOpts(t))

	plan := &model.InstancePlan{ARMCount: 1}
	require.NoError(t, s.ImportExisting(context.Background(), fullInventory(), plan))

	assert.Contains(t, runner.imports, "oci_core_subnet.main")
	assert.Contains(t, runner.imports, "oci_core_internet_gateway.main")
}

func TestImportExisting_NonDefaultRouteTableNotImported(t *testing.T) {
	inv := fullInventory()
	inv.RouteTables = map[string]model.RouteTable{
		"ocid1.rt.custom": {ID: "ocid1.rt.custom", Name: "my-custom-routes", VCNID: "ocid1.vcn.1"},
	}
	runner := &fakeRunner{}
	s := newServiceWithRunner(runner, testOpts(t))

	require.NoError(t, s.ImportExisting(context.Background(), inv, &model.InstancePlan{ARMCount: 1}))
	assert.NotContains(t, runner.imports, "oci_core_default_route_table.main")
}

func TestApplyWithRetry_RetriesCapacityErrors(t *testing.T) {
	runner := &fakeRunner{applyErrs: []error{
		errors.New("Out of host capacity"),
		errors.New("out of capacity"),
	}}
	s := newServiceWithRunner(runner, testOpts(t))

	require.NoError(t, s.applyWithRetry(context.Background()))
	assert.Equal(t, 3, runner.applies)
}

func TestApplyWithRetry_NonCapacityErrorIsPermanent(t *testing.T) {
	inner := errors.New("Invalid parameter: shape")
	runner := &fakeRunner{applyErrs: []error{inner}}
	s := newServiceWithRunner(runner, testOpts(t))

	err := s.applyWithRetry(context.Background())
	require.Error(t, err)
	assert.Equal(t, inner, err)
	assert.Equal(t, 1, runner.applies)
}

func TestApplyWithRetry_ExhaustionReturnsLastError(t *testing.T) {
	capacity := fmt.Errorf("OutOfHostCapacity, try again later")
	runner := &fakeRunner{applyErrs: []error{capacity, capacity, capacity}}
	s := newServiceWithRunner(runner, testOpts(t))

	err := s.applyWithRetry(context.Background())
	require.Error(t, err)
	assert.Equal(t, 3, runner.applies)
}

func TestWorkflow_NoChangesSkipsApply(t *testing.T) {
	runner := &fakeRunner{planChanges: false}
	s := newServiceWithRunner(runner, testOpts(t))

	err := s.Workflow(context.Background(), model.NewInventory(), &model.InstancePlan{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, runner.inits)
	assert.Equal(t, 0, runner.applies)
}

func TestWorkflow_AutoDeployApplies(t *testing.T) {
	runner := &fakeRunner{planChanges: true}
	opts := testOpts(t)
	opts.AutoDeploy = true
	s := newServiceWithRunner(runner, opts)

	err := s.Workflow(context.Background(), model.NewInventory(), &model.InstancePlan{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, runner.applies)
}

func TestWorkflow_DeclinedConfirmationSkipsApply(t *testing.T) {
	runner := &fakeRunner{planChanges: true}
	opts := testOpts(t)
	opts.NonInteractive = false
	s := newServiceWithRunner(runner, opts)

	declined := func() bool { return false }
	err := s.Workflow(context.Background(), model.NewInventory(), &model.InstancePlan{}, declined)
	require.NoError(t, err)
	assert.Equal(t, 0, runner.applies)
}

func TestWorkflow_DeclinedConfirmationKeepsPlanFile(t *testing.T) {
	opts := testOpts(t)
	opts.NonInteractive = false
	runner := &fakeRunner{planChanges: true, planDir: opts.WorkDir}
	s := newServiceWithRunner(runner, opts)

	declined := func() bool { return false }
	err := s.Workflow(context.Background(), model.NewInventory(), &model.InstancePlan{}, declined)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(opts.WorkDir, planFileName))
}

func TestWorkflow_SuccessfulApplyRemovesPlanFile(t *testing.T) {
	opts := testOpts(t)
	opts.AutoDeploy = true
	runner := &fakeRunner{planChanges: true, planDir: opts.WorkDir}
	s := newServiceWithRunner(runner, opts)

	err := s.Workflow(context.Background(), model.NewInventory(), &model.InstancePlan{}, nil)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(opts.WorkDir, planFileName))
}

func TestWorkflow_FailedApplyKeepsPlanFile(t *testing.T) {
	opts := testOpts(t)
	opts.AutoDeploy = true
	runner := &fakeRunner{planChanges: true, planDir: opts.WorkDir, applyErrs: []error{
		errors.New("Invalid parameter: shape"),
	}}
	s := newServiceWithRunner(runner, opts)

	err := s.Workflow(context.Background(), model.NewInventory(), &model.InstancePlan{}, nil)
	require.Error(t, err)
	assert.FileExists(t, filepath.Join(opts.WorkDir, planFileName))
}
