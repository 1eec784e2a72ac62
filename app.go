package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/elC0mpa/oci-freetier/model"
	"github.com/elC0mpa/oci-freetier/service/compute"
	"github.com/elC0mpa/oci-freetier/service/filegen"
	"github.com/elC0mpa/oci-freetier/service/identity"
	"github.com/elC0mpa/oci-freetier/service/inventory"
	"github.com/elC0mpa/oci-freetier/service/network"
	"github.com/elC0mpa/oci-freetier/service/ociconfig"
	"github.com/elC0mpa/oci-freetier/service/orchestrator"
	"github.com/elC0mpa/oci-freetier/service/planner"
	"github.com/elC0mpa/oci-freetier/service/quota"
	"github.com/elC0mpa/oci-freetier/service/storage"
	"github.com/elC0mpa/oci-freetier/service/terraform"
	"github.com/elC0mpa/oci-freetier/utils"
)

var opts = model.Options{
	TFBackend:         "local",
	OCIProfile:        "DEFAULT",
	ConnectionTimeout: model.DefaultConnectionTimeout,
	ReadTimeout:       model.DefaultReadTimeout,
	CmdTimeout:        model.DefaultCmdTimeout,
	MaxRetries:        model.DefaultMaxRetries,
	RetryMaxAttempts:  model.DefaultRetryMaxAttempts,
	RetryBaseDelay:    model.DefaultRetryBaseDelay,
	WorkDir:           ".",
}

var rootCmd = &cobra.Command{
	Use:   "oci-freetier",
	Short: "Provision and reconcile Oracle Always Free Tier infrastructure",
	Long: "oci-freetier discovers what already exists in an OCI tenancy, plans an\n" +
		"instance layout inside the Always Free Tier limits, generates terraform\n" +
		"files and drives terraform to converge on the plan.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyEnvOverrides(cmd)
		utils.InitLogging(opts.Debug)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := buildOrchestrator()
		if err != nil {
			return err
		}
		return o.Run(cmd.Context())
	},
}

var destroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Destroy all managed Free Tier infrastructure",
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := buildOrchestrator()
		if err != nil {
			return err
		}
		return o.Destroy(cmd.Context())
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&opts.NonInteractive, "non-interactive", false, "never prompt; implies --auto-use-existing")
	flags.BoolVar(&opts.AutoUseExisting, "auto-use-existing", false, "mirror existing instances without asking")
	flags.BoolVar(&opts.AutoDeploy, "auto-deploy", false, "apply without confirmation")
	flags.BoolVar(&opts.SkipConfig, "skip-config", false, "reuse generated terraform files without regenerating")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.ForceReauth, "force-reauth", false, "refresh the OCI session token before anything else")
	flags.StringVar(&opts.TFBackend, "tf-backend", opts.TFBackend, "terraform state backend: local or oci")
	flags.StringVar(&opts.OCIConfigFile, "oci-config", "", "path to the OCI config file (default ~/.oci/config)")
	flags.StringVar(&opts.OCIProfile, "oci-profile", opts.OCIProfile, "profile in the OCI config file")
	flags.StringVar(&opts.WorkDir, "work-dir", opts.WorkDir, "directory for generated terraform files")

	rootCmd.AddCommand(destroyCmd)
}

func main() {
	utils.DrawBanner()

	// .env is optional; flags and real environment win over it.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		utils.PrintError("%v", err)
		os.Exit(1)
	}
}

func buildOrchestrator() (*orchestrator.Orchestrator, error) {
	configService := ociconfig.NewService(opts)

	provider, err := configService.Provider()
	if err != nil {
		return nil, fmt.Errorf("failed to build OCI credentials: %w", err)
	}

	identityService, err := identity.NewService(provider, opts)
	if err != nil {
		return nil, err
	}
	computeService, err := compute.NewService(provider, opts)
	if err != nil {
		return nil, err
	}
	networkService, err := network.NewService(provider, opts)
	if err != nil {
		return nil, err
	}
	storageService, err := storage.NewService(provider, opts)
	if err != nil {
		return nil, err
	}

	retry := utils.RetryConfig{MaxAttempts: opts.RetryMaxAttempts, BaseDelay: opts.RetryBaseDelay}
	inventoryService := inventory.NewService(computeService, networkService, storageService, retry)

	prompter := planner.NewPrompter()

	terraformService, err := terraform.NewService(opts)
	if err != nil {
		return nil, err
	}

	return orchestrator.New(orchestrator.Services{
		Config:    configService,
		Identity:  identityService,
		Compute:   computeService,
		Inventory: inventoryService,
		Quota:     quota.NewService(),
		Planner:   planner.NewService(opts, prompter),
		FileGen:   filegen.NewService(opts),
		Terraform: terraformService,
	}, prompter, opts), nil
}

// applyEnvOverrides lets environment variables stand in for flags that were
// not set on the command line.
func applyEnvOverrides(cmd *cobra.Command) {
	boolEnv := func(flag, env string, target *bool) {
		if !cmd.Flags().Changed(flag) {
			if v, ok := os.LookupEnv(env); ok {
				*target, _ = strconv.ParseBool(v)
			}
		}
	}
	stringEnv := func(flag, env string, target *string) {
		if !cmd.Flags().Changed(flag) {
			if v, ok := os.LookupEnv(env); ok && v != "" {
				*target = v
			}
		}
	}

	boolEnv("non-interactive", "NON_INTERACTIVE", &opts.NonInteractive)
	boolEnv("auto-use-existing", "AUTO_USE_EXISTING", &opts.AutoUseExisting)
	boolEnv("auto-deploy", "AUTO_DEPLOY", &opts.AutoDeploy)
	boolEnv("skip-config", "SKIP_CONFIG", &opts.SkipConfig)
	boolEnv("debug", "DEBUG", &opts.Debug)
	boolEnv("force-reauth", "FORCE_REAUTH", &opts.ForceReauth)
	stringEnv("tf-backend", "TF_BACKEND", &opts.TFBackend)
	stringEnv("oci-config", "OCI_CONFIG_FILE", &opts.OCIConfigFile)
	stringEnv("oci-profile", "OCI_PROFILE", &opts.OCIProfile)
	stringEnv("work-dir", "WORK_DIR", &opts.WorkDir)

	opts.TFBackendBucket = os.Getenv("TF_BACKEND_BUCKET")
	opts.TFBackendRegion = os.Getenv("TF_BACKEND_REGION")
	opts.TFBackendEndpoint = os.Getenv("TF_BACKEND_ENDPOINT")
	opts.TFBackendStateKey = os.Getenv("TF_BACKEND_STATE_KEY")
	opts.TFBackendAccessKey = os.Getenv("TF_BACKEND_ACCESS_KEY")
	opts.TFBackendSecretKey = os.Getenv("TF_BACKEND_SECRET_KEY")
	opts.OCIAuthRegion = os.Getenv("OCI_AUTH_REGION")
	if opts.TFBackendStateKey == "" {
		opts.TFBackendStateKey = "terraform.tfstate"
	}

	durationEnv := func(env string, target *time.Duration) {
		if v := os.Getenv(env); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*target = d
			} else if secs, err := strconv.Atoi(v); err == nil {
				*target = time.Duration(secs) * time.Second
			}
		}
	}
	intEnv := func(env string, target *int) {
		if v := os.Getenv(env); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				*target = n
			}
		}
	}

	durationEnv("OCI_CONNECTION_TIMEOUT", &opts.ConnectionTimeout)
	durationEnv("OCI_READ_TIMEOUT", &opts.ReadTimeout)
	durationEnv("OCI_CMD_TIMEOUT", &opts.CmdTimeout)
	durationEnv("RETRY_BASE_DELAY", &opts.RetryBaseDelay)
	intEnv("OCI_MAX_RETRIES", &opts.MaxRetries)
	intEnv("RETRY_MAX_ATTEMPTS", &opts.RetryMaxAttempts)

	if opts.NonInteractive {
		opts.AutoUseExisting = true
	}
}
