package terraform

import (
	"context"

	"github.com/elC0mpa/oci-freetier/model"
	"github.com/elC0mpa/oci-freetier/utils"
)

// runner is the thin surface over the terraform binary the workflow needs.
// The tfexec-backed implementation is used in real runs; tests fake it.
type runner interface {
	Init(ctx context.Context) error
	Validate(ctx context.Context) error
	Plan(ctx context.Context, planFile string) (changes bool, err error)
	Apply(ctx context.Context, planFile string) error
	Destroy(ctx context.Context) error
	Import(ctx context.Context, address, id string) error
	StateAddresses(ctx context.Context) (map[string]bool, error)
	ShowPlan(ctx context.Context, planFile string) (string, error)
	OutputValues(ctx context.Context) (map[string]string, error)
}

type service struct {
	runner runner
	opts   model.Options
	retry  utils.RetryConfig
}

// NewService builds the workflow driver around a terraform binary found on
// PATH.
func NewService(opts model.Options) (*service, error) {
	r, err := newExecRunner(opts.WorkDir)
	if err != nil {
		return nil, err
	}
	return newServiceWithRunner(r, opts), nil
}

func newServiceWithRunner(r runner, opts model.Options) *service {
	return &service{
		runner: r,
		opts:   opts,
		retry: utils.RetryConfig{
			MaxAttempts: opts.RetryMaxAttempts,
			BaseDelay:   opts.RetryBaseDelay,
		},
	}
}
