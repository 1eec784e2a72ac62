package storage

import (
	"context"
	"fmt"

	"github.com/elC0mpa/oci-freetier/model"
	"github.com/elC0mpa/oci-freetier/service/ociconfig"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"
)

func NewService(provider common.ConfigurationProvider, opts model.Options) (*service, error) {
	client, err := core.NewBlockstorageClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create block storage client: %w", err)
	}
	retryPolicy := ociconfig.ClientRetryPolicy(opts.MaxRetries)
	client.SetCustomClientConfiguration(common.CustomClientConfiguration{RetryPolicy: &retryPolicy})
	return &service{
		client:      client,
		readTimeout: opts.ReadTimeout,
	}, nil
}

func (s *service) ListBootVolumes(ctx context.Context, compartmentID, availabilityDomain string) ([]model.Volume, error) {
	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	resp, err := s.client.ListBootVolumes(ctx, core.ListBootVolumesRequest{
		CompartmentId:      common.String(compartmentID),
		AvailabilityDomain: common.String(availabilityDomain),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list boot volumes: %w", err)
	}

	var volumes []model.Volume
	for _, item := range resp.Items {
		if item.LifecycleState != core.BootVolumeLifecycleStateAvailable {
			continue
		}
		volumes = append(volumes, model.Volume{
			ID:     *item.Id,
			Name:   *item.DisplayName,
			SizeGB: int(*item.SizeInGBs),
		})
	}
	return volumes, nil
}

func (s *service) ListBlockVolumes(ctx context.Context, compartmentID, availabilityDomain string) ([]model.Volume, error) {
	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	resp, err := s.client.ListVolumes(ctx, core.ListVolumesRequest{
		CompartmentId:      common.String(compartmentID),
		AvailabilityDomain: common.String(availabilityDomain),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list block volumes: %w", err)
	}

	var volumes []model.Volume
	for _, item := range resp.Items {
		if item.LifecycleState != core.VolumeLifecycleStateAvailable {
			continue
		}
		volumes = append(volumes, model.Volume{
			ID:     *item.Id,
			Name:   *item.DisplayName,
			SizeGB: int(*item.SizeInGBs),
		})
	}
	return volumes, nil
}
