package inventory

import (
	"context"

	"github.com/elC0mpa/oci-freetier/model"
	"github.com/elC0mpa/oci-freetier/service"
	"github.com/elC0mpa/oci-freetier/utils"
)

// The unresolvable-address marker recorded when IP lookup fails.
const noIP = "none"

func NewService(computeService service.ComputeService, networkService service.NetworkService, storageService service.StorageService, retry utils.RetryConfig) *inventoryService {
	return &inventoryService{
		computeService: computeService,
		networkService: networkService,
		storageService: storageService,
		retry:          retry,
	}
}

// Scan queries every resource category and returns the snapshot. A failing
// category is retried, then degrades to empty with a warning; the scan as a
// whole never fails.
func (s *inventoryService) Scan(ctx context.Context, tenancy *model.TenancyContext) *model.Inventory {
	inv := model.NewInventory()

	s.scanCompute(ctx, tenancy, inv)
	s.scanNetworking(ctx, tenancy, inv)
	s.scanStorage(ctx, tenancy, inv)

	return inv
}

func (s *inventoryService) scanCompute(ctx context.Context, tenancy *model.TenancyContext, inv *model.Inventory) {
	utils.PrintStatus("Inventorying compute instances...")

	var instances []model.Instance
	err := utils.Retry(func() error {
		var listErr error
		instances, listErr = s.computeService.ListInstances(ctx, tenancy.TenancyOCID)
		return listErr
	}, s.retry, "compute inventory")
	if err != nil {
		utils.PrintWarning("Compute inventory failed, assuming no instances: %v", err)
		return
	}

	for _, instance := range instances {
		publicIP, privateIP, err := s.networkService.ResolveInstanceIPs(ctx, tenancy.TenancyOCID, instance.ID)
		if err != nil {
			utils.PrintDebug("IP resolution failed for %s: %v", instance.Name, err)
			publicIP, privateIP = noIP, noIP
		}
		instance.PublicIP = publicIP
		instance.PrivateIP = privateIP

		switch instance.Shape {
		case model.AMDShape:
			inv.AMDInstances[instance.ID] = instance
			utils.PrintStatus("  Found AMD instance: %s (%s) - IP: %s", instance.Name, instance.State, instance.PublicIP)
		case model.ARMShape:
			ocpus, memory, err := s.computeService.GetShapeConfig(ctx, instance.ID)
			if err != nil {
				utils.PrintWarning("  Shape config lookup failed for %s: %v", instance.Name, err)
			}
			instance.OCPUs = ocpus
			instance.MemoryGB = memory
			inv.ARMInstances[instance.ID] = instance
			utils.PrintStatus("  Found ARM instance: %s (%s, %d OCPUs, %dGB) - IP: %s",
				instance.Name, instance.State, ocpus, memory, instance.PublicIP)
		default:
			// Not a Free Tier shape: visible but never counted against quota.
			utils.PrintDebug("  Ignoring non-free-tier instance: %s (%s)", instance.Name, instance.Shape)
		}
	}

	utils.PrintStatus("  AMD instances: %d/%d", len(inv.AMDInstances), model.MaxAMDInstances)
	utils.PrintStatus("  ARM instances: %d/%d", len(inv.ARMInstances), model.MaxARMInstances)
}

func (s *inventoryService) scanNetworking(ctx context.Context, tenancy *model.TenancyContext, inv *model.Inventory) {
	utils.PrintStatus("Inventorying networking resources...")

	var vcns []model.VCN
	err := utils.Retry(func() error {
		var listErr error
		vcns, listErr = s.networkService.ListVCNs(ctx, tenancy.TenancyOCID)
		return listErr
	}, s.retry, "network inventory")
	if err != nil {
		utils.PrintWarning("Network inventory failed, assuming no VCNs: %v", err)
		return
	}

	for _, vcn := range vcns {
		inv.VCNs[vcn.ID] = vcn
		utils.PrintStatus("  Found VCN: %s (%s)", vcn.Name, vcn.CIDR)

		// Per-VCN sub-lookups are best effort; a failure leaves that
		// category empty for this VCN only.
		if subnets, err := s.networkService.ListSubnets(ctx, tenancy.TenancyOCID, vcn.ID); err == nil {
			for _, subnet := range subnets {
				inv.Subnets[subnet.ID] = subnet
				utils.PrintDebug("    Subnet: %s (%s)", subnet.Name, subnet.CIDR)
			}
		} else {
			utils.PrintWarning("  Subnet lookup failed for %s: %v", vcn.Name, err)
		}

		if gateways, err := s.networkService.ListInternetGateways(ctx, tenancy.TenancyOCID, vcn.ID); err == nil {
			for _, gateway := range gateways {
				inv.InternetGateways[gateway.ID] = gateway
			}
		} else {
			utils.PrintWarning("  Gateway lookup failed for %s: %v", vcn.Name, err)
		}

		if tables, err := s.networkService.ListRouteTables(ctx, tenancy.TenancyOCID, vcn.ID); err == nil {
			for _, table := range tables {
				inv.RouteTables[table.ID] = table
			}
		} else {
			utils.PrintWarning("  Route table lookup failed for %s: %v", vcn.Name, err)
		}

		if lists, err := s.networkService.ListSecurityLists(ctx, tenancy.TenancyOCID, vcn.ID); err == nil {
			for _, list := range lists {
				inv.SecurityLists[list.ID] = list
			}
		} else {
			utils.PrintWarning("  Security list lookup failed for %s: %v", vcn.Name, err)
		}
	}

	utils.PrintStatus("  VCNs: %d/%d", len(inv.VCNs), model.MaxVCNs)
	utils.PrintStatus("  Subnets: %d", len(inv.Subnets))
	utils.PrintStatus("  Internet gateways: %d", len(inv.InternetGateways))
}

func (s *inventoryService) scanStorage(ctx context.Context, tenancy *model.TenancyContext, inv *model.Inventory) {
	utils.PrintStatus("Inventorying storage resources...")

	err := utils.Retry(func() error {
		bootVolumes, listErr := s.storageService.ListBootVolumes(ctx, tenancy.TenancyOCID, tenancy.AvailabilityDomain)
		if listErr != nil {
			return listErr
		}
		for _, volume := range bootVolumes {
			inv.BootVolumes[volume.ID] = volume
		}
		return nil
	}, s.retry, "boot volume inventory")
	if err != nil {
		utils.PrintWarning("Boot volume inventory failed, assuming none: %v", err)
	}

	err = utils.Retry(func() error {
		blockVolumes, listErr := s.storageService.ListBlockVolumes(ctx, tenancy.TenancyOCID, tenancy.AvailabilityDomain)
		if listErr != nil {
			return listErr
		}
		for _, volume := range blockVolumes {
			inv.BlockVolumes[volume.ID] = volume
		}
		return nil
	}, s.retry, "block volume inventory")
	if err != nil {
		utils.PrintWarning("Block volume inventory failed, assuming none: %v", err)
	}

	utils.PrintStatus("  Boot volumes: %d (%dGB)", len(inv.BootVolumes), inv.BootStorageUsed())
	utils.PrintStatus("  Block volumes: %d (%dGB)", len(inv.BlockVolumes), inv.BlockStorageUsed())
	utils.PrintStatus("  Total storage: %dGB/%dGB", inv.StorageUsed(), model.MaxStorageGB)
}
