package ociconfig

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/elC0mpa/oci-freetier/utils"
)

// Authenticate refreshes the session token by running the OCI CLI
// browser-based flow. Used when the profile declares security_token auth
// and the token is missing or expired.
func (s *service) Authenticate(ctx context.Context) error {
	if s.opts.NonInteractive {
		return fmt.Errorf("cannot run browser authentication in non-interactive mode")
	}

	region := s.opts.OCIAuthRegion
	if region == "" {
		if r, err := s.ReadValue("region"); err == nil {
			region = r
		}
	}
	if region == "" {
		return fmt.Errorf("no region configured for authentication; set OCI_AUTH_REGION")
	}

	utils.PrintStatus("Opening browser for OCI session authentication (region %s)...", region)

	cmdCtx := ctx
	if s.opts.CmdTimeout > 0 {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, s.opts.CmdTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(cmdCtx, "oci", "session", "authenticate",
		"--profile-name", s.opts.OCIProfile,
		"--region", region,
		"--session-expiration-in-minutes", "60")

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("oci session authenticate failed: %w\n%s", err, output)
	}

	utils.PrintSuccess("Session token refreshed")
	return nil
}
