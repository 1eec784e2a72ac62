package model

import "time"

// Default retry and timeout settings, overridable per run.
const (
	DefaultRetryMaxAttempts = 8
	DefaultRetryBaseDelay   = 15 * time.Second

	DefaultConnectionTimeout = 10 * time.Second
	DefaultReadTimeout       = 60 * time.Second
	DefaultMaxRetries        = 3
	DefaultCmdTimeout        = 120 * time.Second
)

// Options holds every runtime switch of a single run. Populated from flags
// first, then environment variables.
type Options struct {
	NonInteractive  bool
	AutoUseExisting bool
	AutoDeploy      bool
	SkipConfig      bool
	Debug           bool
	ForceReauth     bool

	// Terraform backend selection
	TFBackend          string // "local" or "oci"
	TFBackendBucket    string
	TFBackendRegion    string
	TFBackendEndpoint  string
	TFBackendStateKey  string
	TFBackendAccessKey string
	TFBackendSecretKey string

	// OCI identity source
	OCIConfigFile string
	OCIProfile    string
	OCIAuthRegion string

	// Timeouts and retry tuning
	ConnectionTimeout time.Duration
	ReadTimeout       time.Duration
	CmdTimeout        time.Duration
	MaxRetries        int
	RetryMaxAttempts  int
	RetryBaseDelay    time.Duration

	// Directory where terraform files are generated and terraform runs
	WorkDir string
}
