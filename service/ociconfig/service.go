package ociconfig

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/elC0mpa/oci-freetier/model"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/common/auth"
)

func NewService(opts model.Options) *service {
	if opts.OCIConfigFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			opts.OCIConfigFile = filepath.Join(home, ".oci", "config")
		}
	}
	return &service{opts: opts}
}

// ClientRetryPolicy builds the SDK-level retry policy shared by every API
// client. MaxRetries counts retries after the first attempt.
func ClientRetryPolicy(maxRetries int) common.RetryPolicy {
	return common.NewRetryPolicyWithOptions(
		common.ReplaceWithValuesFromRetryPolicy(common.DefaultRetryPolicyWithoutEventualConsistency()),
		common.WithMaximumNumberAttempts(uint(maxRetries)+1),
	)
}

// ReadValue extracts a single key from the selected profile section of the
// OCI config file.
func (s *service) ReadValue(key string) (string, error) {
	file, err := os.Open(s.opts.OCIConfigFile)
	if err != nil {
		return "", fmt.Errorf("failed to open OCI config: %w", err)
	}
	defer file.Close()

	inProfile := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inProfile = strings.Trim(line, "[]") == s.opts.OCIProfile
			continue
		}
		if !inProfile {
			continue
		}

		name, value, found := strings.Cut(line, "=")
		if found && strings.TrimSpace(name) == key {
			return strings.TrimSpace(value), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to scan OCI config: %w", err)
	}

	return "", fmt.Errorf("key %q not found in profile %q", key, s.opts.OCIProfile)
}

// AuthMethod resolves the profile's authentication scheme. An explicit
// `auth` key wins; otherwise the presence of a security token file selects
// token auth and a fingerprint selects API key auth.
func (s *service) AuthMethod() (model.AuthMethod, error) {
	if value, err := s.ReadValue("auth"); err == nil {
		method := model.AuthMethod(strings.ToLower(value))
		switch method {
		case model.AuthAPIKey, model.AuthSecurityToken, model.AuthInstancePrincipal,
			model.AuthResourcePrincipal, model.AuthWorkloadIdentity, model.AuthInstanceOboUser:
			return method, nil
		default:
			return "", fmt.Errorf("unknown auth method %q in profile %q", value, s.opts.OCIProfile)
		}
	}

	if _, err := s.ReadValue("security_token_file"); err == nil {
		return model.AuthSecurityToken, nil
	}
	if _, err := s.ReadValue("fingerprint"); err == nil {
		return model.AuthAPIKey, nil
	}
	return "", fmt.Errorf("profile %q declares no usable auth method", s.opts.OCIProfile)
}

// Provider builds the SDK configuration provider matching the profile's
// auth method.
func (s *service) Provider() (common.ConfigurationProvider, error) {
	method, err := s.AuthMethod()
	if err != nil {
		return nil, err
	}

	switch method {
	case model.AuthAPIKey:
		return common.ConfigurationProviderFromFileWithProfile(s.opts.OCIConfigFile, s.opts.OCIProfile, "")
	case model.AuthSecurityToken:
		return common.CustomProfileSessionTokenConfigProvider(s.opts.OCIConfigFile, s.opts.OCIProfile), nil
	case model.AuthInstancePrincipal:
		return auth.InstancePrincipalConfigurationProvider()
	case model.AuthResourcePrincipal:
		return auth.ResourcePrincipalConfigurationProvider()
	case model.AuthWorkloadIdentity:
		return auth.OkeWorkloadIdentityConfigurationProvider()
	case model.AuthInstanceOboUser:
		return nil, fmt.Errorf("auth method %q requires a delegation token and is not supported here", method)
	default:
		return nil, fmt.Errorf("unhandled auth method %q", method)
	}
}

// TenancyContext assembles the identity values later phases depend on.
// The user OCID and fingerprint are optional under token-based auth.
func (s *service) TenancyContext() (*model.TenancyContext, error) {
	tenancy, err := s.ReadValue("tenancy")
	if err != nil {
		return nil, fmt.Errorf("failed to read tenancy OCID: %w", err)
	}

	region, err := s.ReadValue("region")
	if err != nil {
		return nil, fmt.Errorf("failed to read region: %w", err)
	}
	if s.opts.OCIAuthRegion != "" {
		region = s.opts.OCIAuthRegion
	}

	method, err := s.AuthMethod()
	if err != nil {
		return nil, err
	}

	tc := &model.TenancyContext{
		TenancyOCID: tenancy,
		Region:      region,
		AuthMethod:  method,
	}
	if user, err := s.ReadValue("user"); err == nil {
		tc.UserOCID = user
	}
	if fingerprint, err := s.ReadValue("fingerprint"); err == nil {
		tc.Fingerprint = fingerprint
	} else {
		tc.Fingerprint = "session_token_auth"
	}

	return tc, nil
}
