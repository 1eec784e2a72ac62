package terraform

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/hashicorp/terraform-exec/tfexec"
	tfjson "github.com/hashicorp/terraform-json"
)

// execRunner drives the real terraform binary through tfexec.
type execRunner struct {
	tf *tfexec.Terraform
}

func newExecRunner(workDir string) (*execRunner, error) {
	execPath, err := exec.LookPath("terraform")
	if err != nil {
		return nil, fmt.Errorf("terraform binary not found on PATH: %w", err)
	}

	tf, err := tfexec.NewTerraform(workDir, execPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terraform runner: %w", err)
	}
	tf.SetStdout(os.Stdout)
	tf.SetStderr(os.Stderr)
	return &execRunner{tf: tf}, nil
}

func (r *execRunner) Init(ctx context.Context) error {
	return r.tf.Init(ctx, tfexec.Upgrade(true))
}

func (r *execRunner) Validate(ctx context.Context) error {
	_, err := r.tf.Validate(ctx)
	return err
}

func (r *execRunner) Plan(ctx context.Context, planFile string) (bool, error) {
	return r.tf.Plan(ctx, tfexec.Out(planFile))
}

func (r *execRunner) Apply(ctx context.Context, planFile string) error {
	return r.tf.Apply(ctx, tfexec.DirOrPlan(planFile))
}

func (r *execRunner) Destroy(ctx context.Context) error {
	return r.tf.Destroy(ctx)
}

func (r *execRunner) Import(ctx context.Context, address, id string) error {
	return r.tf.Import(ctx, address, id)
}

// StateAddresses returns every resource address currently in state.
func (r *execRunner) StateAddresses(ctx context.Context) (map[string]bool, error) {
	state, err := r.tf.Show(ctx)
	if err != nil {
		return nil, err
	}

	addresses := map[string]bool{}
	if state == nil || state.Values == nil || state.Values.RootModule == nil {
		return addresses, nil
	}
	collectAddresses(state.Values.RootModule, addresses)
	return addresses, nil
}

func collectAddresses(module *tfjson.StateModule, addresses map[string]bool) {
	for _, res := range module.Resources {
		addresses[res.Address] = true
	}
	for _, child := range module.ChildModules {
		collectAddresses(child, addresses)
	}
}

func (r *execRunner) ShowPlan(ctx context.Context, planFile string) (string, error) {
	return r.tf.ShowPlanFileRaw(ctx, planFile)
}

func (r *execRunner) OutputValues(ctx context.Context) (map[string]string, error) {
	outputs, err := r.tf.Output(ctx)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(outputs))
	for name, meta := range outputs {
		values[name] = string(meta.Value)
	}
	return values, nil
}
