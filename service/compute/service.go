package compute

import (
	"context"
	"fmt"

	"github.com/elC0mpa/oci-freetier/model"
	"github.com/elC0mpa/oci-freetier/service/ociconfig"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"
)

func NewService(provider common.ConfigurationProvider, opts model.Options) (*service, error) {
	client, err := core.NewComputeClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create compute client: %w", err)
	}
	retryPolicy := ociconfig.ClientRetryPolicy(opts.MaxRetries)
	client.SetCustomClientConfiguration(common.CustomClientConfiguration{RetryPolicy: &retryPolicy})
	return &service{
		client:      client,
		readTimeout: opts.ReadTimeout,
	}, nil
}

// ListInstances returns every non-terminated instance in the compartment.
// IP addresses and ARM shape configs require separate lookups.
func (s *service) ListInstances(ctx context.Context, compartmentID string) ([]model.Instance, error) {
	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	resp, err := s.client.ListInstances(ctx, core.ListInstancesRequest{
		CompartmentId: common.String(compartmentID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}

	var instances []model.Instance
	for _, item := range resp.Items {
		if item.LifecycleState == core.InstanceLifecycleStateTerminated {
			continue
		}
		instances = append(instances, model.Instance{
			ID:    *item.Id,
			Name:  *item.DisplayName,
			State: string(item.LifecycleState),
			Shape: *item.Shape,
		})
	}
	return instances, nil
}

// GetShapeConfig fetches the flexible-shape OCPU/memory allocation of a
// single instance.
func (s *service) GetShapeConfig(ctx context.Context, instanceID string) (int, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	resp, err := s.client.GetInstance(ctx, core.GetInstanceRequest{
		InstanceId: common.String(instanceID),
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get instance %s: %w", instanceID, err)
	}
	if resp.ShapeConfig == nil {
		return 0, 0, fmt.Errorf("instance %s has no shape config", instanceID)
	}

	ocpus, memory := 0, 0
	if resp.ShapeConfig.Ocpus != nil {
		ocpus = int(*resp.ShapeConfig.Ocpus)
	}
	if resp.ShapeConfig.MemoryInGBs != nil {
		memory = int(*resp.ShapeConfig.MemoryInGBs)
	}
	return ocpus, memory, nil
}

// LatestUbuntuImage returns the newest Canonical Ubuntu image compatible
// with the given shape.
func (s *service) LatestUbuntuImage(ctx context.Context, compartmentID, shape string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	resp, err := s.client.ListImages(ctx, core.ListImagesRequest{
		CompartmentId:   common.String(compartmentID),
		OperatingSystem: common.String("Canonical Ubuntu"),
		Shape:           common.String(shape),
		SortBy:          core.ListImagesSortByTimecreated,
		SortOrder:       core.ListImagesSortOrderDesc,
		Limit:           common.Int(1),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to list images for shape %s: %w", shape, err)
	}
	if len(resp.Items) == 0 {
		return "", "", fmt.Errorf("no Ubuntu image found for shape %s", shape)
	}
	return *resp.Items[0].Id, *resp.Items[0].DisplayName, nil
}
