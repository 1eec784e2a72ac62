package identity

import (
	"context"
	"fmt"

	"github.com/elC0mpa/oci-freetier/model"
	"github.com/elC0mpa/oci-freetier/service/ociconfig"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/identity"
)

func NewService(provider common.ConfigurationProvider, opts model.Options) (*service, error) {
	client, err := identity.NewIdentityClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity client: %w", err)
	}
	retryPolicy := ociconfig.ClientRetryPolicy(opts.MaxRetries)
	client.SetCustomClientConfiguration(common.CustomClientConfiguration{RetryPolicy: &retryPolicy})
	return &service{
		client:            client,
		connectionTimeout: opts.ConnectionTimeout,
	}, nil
}

// Probe verifies API connectivity. A region list is the cheapest call; the
// tenancy get is the fallback for restricted principals.
func (s *service) Probe(ctx context.Context, tenancyOCID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.connectionTimeout)
	defer cancel()

	if _, err := s.client.ListRegions(ctx); err == nil {
		return nil
	}

	_, err := s.client.GetTenancy(ctx, identity.GetTenancyRequest{
		TenancyId: common.String(tenancyOCID),
	})
	if err != nil {
		return fmt.Errorf("connectivity test failed: %w", err)
	}
	return nil
}

// FirstAvailabilityDomain returns the first AD of the tenancy's home region.
func (s *service) FirstAvailabilityDomain(ctx context.Context, tenancyOCID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.connectionTimeout)
	defer cancel()

	resp, err := s.client.ListAvailabilityDomains(ctx, identity.ListAvailabilityDomainsRequest{
		CompartmentId: common.String(tenancyOCID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to list availability domains: %w", err)
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("no availability domains found")
	}
	return *resp.Items[0].Name, nil
}

// ResolveUserOCID looks up a user OCID when the config profile has none
// (session token auth does not record one).
func (s *service) ResolveUserOCID(ctx context.Context, tenancyOCID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.connectionTimeout)
	defer cancel()

	resp, err := s.client.ListUsers(ctx, identity.ListUsersRequest{
		CompartmentId: common.String(tenancyOCID),
		Limit:         common.Int(1),
	})
	if err != nil {
		return "", fmt.Errorf("failed to list users: %w", err)
	}
	if len(resp.Items) == 0 {
		return "", fmt.Errorf("no users visible in tenancy")
	}
	return *resp.Items[0].Id, nil
}
