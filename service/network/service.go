package network

import (
	"context"
	"fmt"

	"github.com/elC0mpa/oci-freetier/model"
	"github.com/elC0mpa/oci-freetier/service/ociconfig"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"
)

func NewService(provider common.ConfigurationProvider, opts model.Options) (*service, error) {
	client, err := core.NewVirtualNetworkClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create virtual network client: %w", err)
	}
	// VNIC attachments live on the compute API, not the virtual network one.
	compute, err := core.NewComputeClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create compute client: %w", err)
	}
	retryPolicy := ociconfig.ClientRetryPolicy(opts.MaxRetries)
	client.SetCustomClientConfiguration(common.CustomClientConfiguration{RetryPolicy: &retryPolicy})
	compute.SetCustomClientConfiguration(common.CustomClientConfiguration{RetryPolicy: &retryPolicy})
	return &service{
		client:      client,
		compute:     compute,
		readTimeout: opts.ReadTimeout,
	}, nil
}

// ListVCNs returns every available VCN in the compartment.
func (s *service) ListVCNs(ctx context.Context, compartmentID string) ([]model.VCN, error) {
	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	resp, err := s.client.ListVcns(ctx, core.ListVcnsRequest{
		CompartmentId: common.String(compartmentID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list VCNs: %w", err)
	}

	var vcns []model.VCN
	for _, item := range resp.Items {
		if item.LifecycleState != core.VcnLifecycleStateAvailable {
			continue
		}
		cidr := ""
		if len(item.CidrBlocks) > 0 {
			cidr = item.CidrBlocks[0]
		}
		vcns = append(vcns, model.VCN{
			ID:   *item.Id,
			Name: *item.DisplayName,
			CIDR: cidr,
		})
	}
	return vcns, nil
}

func (s *service) ListSubnets(ctx context.Context, compartmentID, vcnID string) ([]model.Subnet, error) {
	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	resp, err := s.client.ListSubnets(ctx, core.ListSubnetsRequest{
		CompartmentId: common.String(compartmentID),
		VcnId:         common.String(vcnID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list subnets: %w", err)
	}

	var subnets []model.Subnet
	for _, item := range resp.Items {
		if item.LifecycleState != core.SubnetLifecycleStateAvailable {
			continue
		}
		subnets = append(subnets, model.Subnet{
			ID:    *item.Id,
			Name:  *item.DisplayName,
			CIDR:  *item.CidrBlock,
			VCNID: vcnID,
		})
	}
	return subnets, nil
}

func (s *service) ListInternetGateways(ctx context.Context, compartmentID, vcnID string) ([]model.InternetGateway, error) {
	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	resp, err := s.client.ListInternetGateways(ctx, core.ListInternetGatewaysRequest{
		CompartmentId: common.String(compartmentID),
		VcnId:         common.String(vcnID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list internet gateways: %w", err)
	}

	var gateways []model.InternetGateway
	for _, item := range resp.Items {
		if item.LifecycleState != core.InternetGatewayLifecycleStateAvailable {
			continue
		}
		gateways = append(gateways, model.InternetGateway{
			ID:    *item.Id,
			Name:  *item.DisplayName,
			VCNID: vcnID,
		})
	}
	return gateways, nil
}

func (s *service) ListRouteTables(ctx context.Context, compartmentID, vcnID string) ([]model.RouteTable, error) {
	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	resp, err := s.client.ListRouteTables(ctx, core.ListRouteTablesRequest{
		CompartmentId: common.String(compartmentID),
		VcnId:         common.String(vcnID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list route tables: %w", err)
	}

	var tables []model.RouteTable
	for _, item := range resp.Items {
		tables = append(tables, model.RouteTable{
			ID:    *item.Id,
			Name:  *item.DisplayName,
			VCNID: vcnID,
		})
	}
	return tables, nil
}

func (s *service) ListSecurityLists(ctx context.Context, compartmentID, vcnID string) ([]model.SecurityList, error) {
	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	resp, err := s.client.ListSecurityLists(ctx, core.ListSecurityListsRequest{
		CompartmentId: common.String(compartmentID),
		VcnId:         common.String(vcnID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list security lists: %w", err)
	}

	var lists []model.SecurityList
	for _, item := range resp.Items {
		lists = append(lists, model.SecurityList{
			ID:    *item.Id,
			Name:  *item.DisplayName,
			VCNID: vcnID,
		})
	}
	return lists, nil
}

// ResolveInstanceIPs walks instance → VNIC attachment → VNIC to find the
// instance's addresses.
func (s *service) ResolveInstanceIPs(ctx context.Context, compartmentID, instanceID string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	attachments, err := s.compute.ListVnicAttachments(ctx, core.ListVnicAttachmentsRequest{
		CompartmentId: common.String(compartmentID),
		InstanceId:    common.String(instanceID),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to list VNIC attachments: %w", err)
	}
	if len(attachments.Items) == 0 || attachments.Items[0].VnicId == nil {
		return "", "", fmt.Errorf("instance %s has no VNIC attachment", instanceID)
	}

	vnic, err := s.client.GetVnic(ctx, core.GetVnicRequest{
		VnicId: attachments.Items[0].VnicId,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to get VNIC: %w", err)
	}

	publicIP, privateIP := "", ""
	if vnic.PublicIp != nil {
		publicIP = *vnic.PublicIp
	}
	if vnic.PrivateIp != nil {
		privateIP = *vnic.PrivateIp
	}
	return publicIP, privateIP, nil
}
