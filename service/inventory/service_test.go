package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/oci-freetier/model"
	"github.com/elC0mpa/oci-freetier/utils"
)

type fakeCompute struct {
	instances []model.Instance
	listErr   error
	shapeErr  error
	ocpus     int
	memory    int

	listCalls int
}

func (f *fakeCompute) ListInstances(ctx context.Context, compartmentID string) ([]model.Instance, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.instances, nil
}

func (f *fakeCompute) GetShapeConfig(ctx context.Context, instanceID string) (int, int, error) {
	if f.shapeErr != nil {
		return 0, 0, f.shapeErr
	}
	return f.ocpus, f.memory, nil
}

func (f *fakeCompute) LatestUbuntuImage(ctx context.Context, compartmentID, shape string) (string, string, error) {
	return "", "", errors.New("not implemented")
}

type fakeNetwork struct {
	vcns      []model.VCN
	subnets   []model.Subnet
	gateways  []model.InternetGateway
	tables    []model.RouteTable
	lists     []model.SecurityList
	vcnErr    error
	subnetErr error
	ipErr     error
	publicIP  string
	privateIP string
}

func (f *fakeNetwork) ListVCNs(ctx context.Context, compartmentID string) ([]model.VCN, error) {
	if f.vcnErr != nil {
		return nil, f.vcnErr
	}
	return f.vcns, nil
}

func (f *fakeNetwork) ListSubnets(ctx context.Context, compartmentID, vcnID string) ([]model.Subnet, error) {
	if f.subnetErr != nil {
		return nil, f.subnetErr
	}
	return f.subnets, nil
}

func (f *fakeNetwork) ListInternetGateways(ctx context.Context, compartmentID, vcnID string) ([]model.InternetGateway, error) {
	return f.gateways, nil
}

func (f *fakeNetwork) ListRouteTables(ctx context.Context, compartmentID, vcnID string) ([]model.RouteTable, error) {
	return f.tables, nil
}

func (f *fakeNetwork) ListSecurityLists(ctx context.Context, compartmentID, vcnID string) ([]model.SecurityList, error) {
	return f.lists, nil
}

func (f *fakeNetwork) ResolveInstanceIPs(ctx context.Context, compartmentID, instanceID string) (string, string, error) {
	if f.ipErr != nil {
		return "", "", f.ipErr
	}
	return f.publicIP, f.privateIP, nil
}

type fakeStorage struct {
	bootVolumes  []model.Volume
	blockVolumes []model.Volume
	bootErr      error
}

func (f *fakeStorage) ListBootVolumes(ctx context.Context, compartmentID, availabilityDomain string) ([]model.Volume, error) {
	if f.bootErr != nil {
		return nil, f.bootErr
	}
	return f.bootVolumes, nil
}

func (f *fakeStorage) ListBlockVolumes(ctx context.Context, compartmentID, availabilityDomain string) ([]model.Volume, error) {
	return f.blockVolumes, nil
}

func fastRetry() utils.RetryConfig {
	return utils.RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond}
}

func testTenancy() *model.TenancyContext {
	return &model.TenancyContext{
		TenancyOCID:        "ocid1.tenancy.test",
		Region:             "eu-frankfurt-1",
		AvailabilityDomain: "AD-1",
	}
}

func TestScan_BucketsInstancesByShape(t *testing.T) {
	computeService := &fakeCompute{
		instances: []model.Instance{
			{ID: "ocid1.instance.1", Name: "web-1", State: "RUNNING", Shape: model.AMDShape},
			{ID: "ocid1.instance.2", Name: "worker-1", State: "RUNNING", Shape: model.ARMShape},
			{ID: "ocid1.instance.3", Name: "big-box", State: "RUNNING", Shape: "VM.Standard3.Flex"},
		},
		ocpus:  4,
		memory: 24,
	}
	networkService := &fakeNetwork{publicIP: "1.2.3.4", privateIP: "10.0.1.2"}
	s := NewService(computeService, networkService, &fakeStorage{}, fastRetry())

	inv := s.Scan(context.Background(), testTenancy())

	require.Len(t, inv.AMDInstances, 1)
	require.Len(t, inv.ARMInstances, 1)

	arm := inv.ARMInstances["ocid1.instance.2"]
	assert.Equal(t, 4, arm.OCPUs)
	assert.Equal(t, 24, arm.MemoryGB)
	assert.Equal(t, "1.2.3.4", arm.PublicIP)
}

func TestScan_IPResolutionFailureRecordsNone(t *testing.T) {
	computeService := &fakeCompute{
		instances: []model.Instance{
			{ID: "ocid1.instance.1", Name: "web-1", State: "RUNNING", Shape: model.AMDShape},
		},
	}
	networkService := &fakeNetwork{ipErr: errors.New("vnic not found")}
	s := NewService(computeService, networkService, &fakeStorage{}, fastRetry())

	inv := s.Scan(context.Background(), testTenancy())

	instance := inv.AMDInstances["ocid1.instance.1"]
	assert.Equal(t, "none", instance.PublicIP)
	assert.Equal(t, "none", instance.PrivateIP)
}

func TestScan_ComputeFailureDegradesToEmpty(t *testing.T) {
	computeService := &fakeCompute{listErr: errors.New("service unavailable")}
	s := NewService(computeService, &fakeNetwork{}, &fakeStorage{}, fastRetry())

	inv := s.Scan(context.Background(), testTenancy())

	assert.Empty(t, inv.AMDInstances)
	assert.Empty(t, inv.ARMInstances)
	// The listing is retried before giving up.
	assert.Equal(t, 2, computeService.listCalls)
}

func TestScan_ShapeConfigFailureKeepsInstance(t *testing.T) {
	computeService := &fakeCompute{
		instances: []model.Instance{
			{ID: "ocid1.instance.1", Name: "worker-1", State: "RUNNING", Shape: model.ARMShape},
		},
		shapeErr: errors.New("instance not found"),
	}
	s := NewService(computeService, &fakeNetwork{publicIP: "1.2.3.4"}, &fakeStorage{}, fastRetry())

	inv := s.Scan(context.Background(), testTenancy())

	require.Len(t, inv.ARMInstances, 1)
	assert.Equal(t, 0, inv.ARMInstances["ocid1.instance.1"].OCPUs)
}

func TestScan_CollectsNetworkGraph(t *testing.T) {
	networkService := &fakeNetwork{
		vcns:     []model.VCN{{ID: "ocid1.vcn.1", Name: "main", CIDR: "10.0.0.0/16"}},
		subnets:  []model.Subnet{{ID: "ocid1.subnet.1", Name: "main", VCNID: "ocid1.vcn.1"}},
		gateways: []model.InternetGateway{{ID: "ocid1.ig.1", Name: "main-igw", VCNID: "ocid1.vcn.1"}},
		tables:   []model.RouteTable{{ID: "ocid1.rt.1", Name: "Default Route Table", VCNID: "ocid1.vcn.1"}},
		lists:    []model.SecurityList{{ID: "ocid1.sl.1", Name: "Default Security List", VCNID: "ocid1.vcn.1"}},
	}
	s := NewService(&fakeCompute{}, networkService, &fakeStorage{}, fastRetry())

	inv := s.Scan(context.Background(), testTenancy())

	assert.Len(t, inv.VCNs, 1)
	assert.Len(t, inv.Subnets, 1)
	assert.Len(t, inv.InternetGateways, 1)
	assert.Len(t, inv.RouteTables, 1)
	assert.Len(t, inv.SecurityLists, 1)
}

func TestScan_SubnetFailureKeepsVCN(t *testing.T) {
	networkService := &fakeNetwork{
		vcns:      []model.VCN{{ID: "ocid1.vcn.1", Name: "main", CIDR: "10.0.0.0/16"}},
		subnetErr: errors.New("forbidden"),
	}
	s := NewService(&fakeCompute{}, networkService, &fakeStorage{}, fastRetry())

	inv := s.Scan(context.Background(), testTenancy())

	assert.Len(t, inv.VCNs, 1)
	assert.Empty(t, inv.Subnets)
}

func TestScan_SumsStorage(t *testing.T) {
	storageService := &fakeStorage{
		bootVolumes:  []model.Volume{{ID: "ocid1.bootvolume.1", SizeGB: 50}, {ID: "ocid1.bootvolume.2", SizeGB: 100}},
		blockVolumes: []model.Volume{{ID: "ocid1.volume.1", SizeGB: 30}},
	}
	s := NewService(&fakeCompute{}, &fakeNetwork{}, storageService, fastRetry())

	inv := s.Scan(context.Background(), testTenancy())

	assert.Equal(t, 150, inv.BootStorageUsed())
	assert.Equal(t, 30, inv.BlockStorageUsed())
	assert.Equal(t, 180, inv.StorageUsed())
}

func TestScan_BootVolumeFailureStillScansBlockVolumes(t *testing.T) {
	storageService := &fakeStorage{
		bootErr:      errors.New("service unavailable"),
		blockVolumes: []model.Volume{{ID: "ocid1.volume.1", SizeGB: 30}},
	}
	s := NewService(&fakeCompute{}, &fakeNetwork{}, storageService, fastRetry())

	inv := s.Scan(context.Background(), testTenancy())

	assert.Empty(t, inv.BootVolumes)
	assert.Equal(t, 30, inv.BlockStorageUsed())
}

func TestScan_Idempotent(t *testing.T) {
	computeService := &fakeCompute{
		instances: []model.Instance{
			{ID: "ocid1.instance.1", Name: "web-1", State: "RUNNING", Shape: model.AMDShape},
		},
	}
	networkService := &fakeNetwork{publicIP: "1.2.3.4", privateIP: "10.0.1.2"}
	storageService := &fakeStorage{bootVolumes: []model.Volume{{ID: "ocid1.bootvolume.1", SizeGB: 50}}}
	s := NewService(computeService, networkService, storageService, fastRetry())

	first := s.Scan(context.Background(), testTenancy())
	second := s.Scan(context.Background(), testTenancy())

	assert.Equal(t, first, second)
}
