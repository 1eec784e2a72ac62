package orchestrator

import (
	"github.com/elC0mpa/oci-freetier/model"
	"github.com/elC0mpa/oci-freetier/service"
	"github.com/elC0mpa/oci-freetier/service/planner"
)

// Services bundles everything one run needs, wired once at startup.
type Services struct {
	Config    service.ConfigService
	Identity  service.IdentityService
	Compute   service.ComputeService
	Inventory service.InventoryService
	Quota     service.QuotaService
	Planner   service.PlannerService
	FileGen   service.FileGenService
	Terraform service.TerraformService
}

// Orchestrator sequences a full run from identity resolution to apply.
type Orchestrator struct {
	services Services
	prompter planner.Prompter
	opts     model.Options
}

func New(services Services, prompter planner.Prompter, opts model.Options) *Orchestrator {
	return &Orchestrator{services: services, prompter: prompter, opts: opts}
}
