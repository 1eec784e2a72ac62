package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/elC0mpa/oci-freetier/cmd/mcp/response"
	"github.com/elC0mpa/oci-freetier/model"
	"github.com/elC0mpa/oci-freetier/service/compute"
	"github.com/elC0mpa/oci-freetier/service/identity"
	"github.com/elC0mpa/oci-freetier/service/inventory"
	"github.com/elC0mpa/oci-freetier/service/network"
	"github.com/elC0mpa/oci-freetier/service/ociconfig"
	"github.com/elC0mpa/oci-freetier/service/planner"
	"github.com/elC0mpa/oci-freetier/service/quota"
	"github.com/elC0mpa/oci-freetier/service/storage"
	"github.com/elC0mpa/oci-freetier/utils"
)

// RegisterOCITools registers all OCI Free Tier tools with the MCP server
func RegisterOCITools(s *server.MCPServer, opts model.Options) {
	s.AddTool(
		mcp.NewTool("oci_get_account_info",
			mcp.WithDescription("Get OCI tenancy identity: tenancy OCID, user OCID, region and authentication method"),
		),
		makeAccountInfoHandler(opts),
	)

	s.AddTool(
		mcp.NewTool("oci_get_inventory",
			mcp.WithDescription("Scan the tenancy and list all Free Tier relevant resources: compute instances, networking and volumes"),
		),
		makeInventoryHandler(opts),
	)

	s.AddTool(
		mcp.NewTool("oci_get_quota_headroom",
			mcp.WithDescription("Calculate remaining Always Free Tier capacity per dimension; negative values mean the tenancy is over a limit"),
		),
		makeHeadroomHandler(opts),
	)

	s.AddTool(
		mcp.NewTool("oci_get_max_plan_preview",
			mcp.WithDescription("Preview the maximum-utilization instance plan that fits in the remaining Free Tier capacity"),
		),
		makeMaxPlanHandler(opts),
	)
}

func makeAccountInfoHandler(opts model.Options) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tenancy, err := resolveTenancy(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve tenancy: %v", err)), nil
		}

		resp := response.ConvertAccountInfo(tenancy)
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeInventoryHandler(opts model.Options) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		inv, _, err := scanInventory(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to scan tenancy: %v", err)), nil
		}

		resp := response.ConvertInventory(inv)
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeHeadroomHandler(opts model.Options) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		inv, _, err := scanInventory(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to scan tenancy: %v", err)), nil
		}

		headroom := quota.NewService().CalculateHeadroom(inv)
		resp := response.ConvertHeadroom(headroom)
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeMaxPlanHandler(opts model.Options) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		inv, tenancy, err := scanInventory(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to scan tenancy: %v", err)), nil
		}

		headroom := quota.NewService().CalculateHeadroom(inv)
		plan := planner.NewService(opts, nil).Maximum(tenancy, headroom)

		resp := response.ConvertPlan(plan)
		data, _ := json.MarshalIndent(resp, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

// resolveTenancy builds the identity context needed by every tool: profile
// values plus the first availability domain.
func resolveTenancy(ctx context.Context, opts model.Options) (*model.TenancyContext, error) {
	configService := ociconfig.NewService(opts)

	provider, err := configService.Provider()
	if err != nil {
		return nil, err
	}

	tenancy, err := configService.TenancyContext()
	if err != nil {
		return nil, err
	}

	identityService, err := identity.NewService(provider, opts)
	if err != nil {
		return nil, err
	}

	ad, err := identityService.FirstAvailabilityDomain(ctx, tenancy.TenancyOCID)
	if err != nil {
		return nil, err
	}
	tenancy.AvailabilityDomain = ad

	return tenancy, nil
}

func scanInventory(ctx context.Context, opts model.Options) (*model.Inventory, *model.TenancyContext, error) {
	tenancy, err := resolveTenancy(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	configService := ociconfig.NewService(opts)
	provider, err := configService.Provider()
	if err != nil {
		return nil, nil, err
	}

	computeService, err := compute.NewService(provider, opts)
	if err != nil {
		return nil, nil, err
	}
	networkService, err := network.NewService(provider, opts)
	if err != nil {
		return nil, nil, err
	}
	storageService, err := storage.NewService(provider, opts)
	if err != nil {
		return nil, nil, err
	}

	retry := utils.RetryConfig{MaxAttempts: opts.RetryMaxAttempts, BaseDelay: opts.RetryBaseDelay}
	inventoryService := inventory.NewService(computeService, networkService, storageService, retry)

	// ARM image presence is irrelevant for scanning; mark ARM enabled so
	// the preview plan can use the full headroom.
	if tenancy.UbuntuARMImageOCID == "" {
		if image, _, err := computeService.LatestUbuntuImage(ctx, tenancy.TenancyOCID, model.ARMShape); err == nil {
			tenancy.UbuntuARMImageOCID = image
		}
	}

	return inventoryService.Scan(ctx, tenancy), tenancy, nil
}
