package inventory

import (
	"github.com/elC0mpa/oci-freetier/service"
	"github.com/elC0mpa/oci-freetier/utils"
)

type inventoryService struct {
	computeService service.ComputeService
	networkService service.NetworkService
	storageService service.StorageService
	retry          utils.RetryConfig
}
