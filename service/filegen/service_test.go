package filegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elC0mpa/oci-freetier/model"
)

func testTenancy() *model.TenancyContext {
	return &model.TenancyContext{
		TenancyOCID:        "ocid1.tenancy.test",
		UserOCID:           "ocid1.user.test",
		Region:             "eu-frankfurt-1",
		AuthMethod:         model.AuthSecurityToken,
		UbuntuX86ImageOCID: "ocid1.image.x86",
		UbuntuARMImageOCID: "ocid1.image.arm",
	}
}

func testPlan() *model.InstancePlan {
	return &model.InstancePlan{
		AMDCount:         1,
		AMDBootVolumeGB:  50,
		AMDHostnames:     []string{"web-1"},
		ARMCount:         2,
		ARMOCPUs:         []int{3, 1},
		ARMMemoryGB:      []int{18, 6},
		ARMBootVolumeGB:  []int{75, 75},
		ARMBlockVolumeGB: []int{0, 0},
		ARMHostnames:     []string{"worker-1", "worker-2"},
	}
}

func readGenerated(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestGenerate_WritesAllFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewService(model.Options{WorkDir: dir, OCIProfile: "DEFAULT"})

	require.NoError(t, s.Generate(testTenancy(), testPlan()))

	for _, name := range []string{
		"provider.tf", "variables.tf", "data_sources.tf",
		"main.tf", "block_volumes.tf", "cloud-init.yaml",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestGenerate_ProviderReflectsAuthMethod(t *testing.T) {
	dir := t.TempDir()
	s := NewService(model.Options{WorkDir: dir, OCIProfile: "FREETIER"})

	require.NoError(t, s.Generate(testTenancy(), testPlan()))

	provider := readGenerated(t, dir, "provider.tf")
	assert.Contains(t, provider, `auth                = "SecurityToken"`)
	assert.Contains(t, provider, `config_file_profile = "FREETIER"`)
	assert.Contains(t, provider, `region              = "eu-frankfurt-1"`)
	assert.NotContains(t, provider, `backend "s3"`)
}

func TestGenerate_APIKeyOmitsAuthLine(t *testing.T) {
	dir := t.TempDir()
	s := NewService(model.Options{WorkDir: dir, OCIProfile: "DEFAULT"})

	tenancy := testTenancy()
	tenancy.AuthMethod = model.AuthAPIKey
	require.NoError(t, s.Generate(tenancy, testPlan()))

	provider := readGenerated(t, dir, "provider.tf")
	assert.NotContains(t, provider, "auth                =")
	assert.Contains(t, provider, `config_file_profile = "DEFAULT"`)
}

func TestGenerate_RemoteBackend(t *testing.T) {
	dir := t.TempDir()
	s := NewService(model.Options{
		WorkDir:           dir,
		OCIProfile:        "DEFAULT",
		TFBackend:         "oci",
		TFBackendBucket:   "tfstate-bucket",
		TFBackendRegion:   "eu-frankfurt-1",
		TFBackendEndpoint: "https://namespace.compat.objectstorage.eu-frankfurt-1.oraclecloud.com",
		TFBackendStateKey: "freetier/terraform.tfstate",
	})

	require.NoError(t, s.Generate(testTenancy(), testPlan()))

	provider := readGenerated(t, dir, "provider.tf")
	assert.Contains(t, provider, `backend "s3"`)
	assert.Contains(t, provider, `bucket   = "tfstate-bucket"`)
	assert.Contains(t, provider, `key      = "freetier/terraform.tfstate"`)
}

func TestGenerate_VariablesCarryThePlan(t *testing.T) {
	dir := t.TempDir()
	s := NewService(model.Options{WorkDir: dir, OCIProfile: "DEFAULT"})

	require.NoError(t, s.Generate(testTenancy(), testPlan()))

	variables := readGenerated(t, dir, "variables.tf")
	assert.Contains(t, variables, `tenancy_ocid    = "ocid1.tenancy.test"`)
	assert.Contains(t, variables, "amd_micro_instance_count      = 1")
	assert.Contains(t, variables, `amd_micro_hostnames           = ["web-1"]`)
	assert.NotContains(t, variables, "&quot;")
	assert.Contains(t, variables, "arm_flex_instance_count       = 2")
	assert.Contains(t, variables, "arm_flex_ocpus_per_instance   = [3, 1]")
	assert.Contains(t, variables, "arm_flex_memory_per_instance  = [18, 6]")
	assert.Contains(t, variables, "arm_flex_boot_volume_sizes    = [75, 75]")
	assert.Contains(t, variables, `arm_flex_hostnames            = ["worker-1", "worker-2"]`)
	// Free Tier guardrails are embedded as terraform checks.
	assert.Contains(t, variables, `check "storage_limit"`)
	assert.Contains(t, variables, "default     = 200")
	assert.Contains(t, variables, "default     = 4")
	assert.Contains(t, variables, "default     = 24")
}

func TestGenerate_EmptyPlanRendersEmptyLists(t *testing.T) {
	dir := t.TempDir()
	s := NewService(model.Options{WorkDir: dir, OCIProfile: "DEFAULT"})

	plan := &model.InstancePlan{AMDBootVolumeGB: 50}
	require.NoError(t, s.Generate(testTenancy(), plan))

	variables := readGenerated(t, dir, "variables.tf")
	assert.Contains(t, variables, "amd_micro_instance_count      = 0")
	assert.Contains(t, variables, "amd_micro_hostnames           = []")
	assert.Contains(t, variables, "arm_flex_ocpus_per_instance   = []")
}

func TestGenerate_MainReferencesBothShapes(t *testing.T) {
	dir := t.TempDir()
	s := NewService(model.Options{WorkDir: dir, OCIProfile: "DEFAULT"})

	require.NoError(t, s.Generate(testTenancy(), testPlan()))

	main := readGenerated(t, dir, "main.tf")
	assert.Contains(t, main, `resource "oci_core_vcn" "main"`)
	assert.Contains(t, main, `resource "oci_core_instance" "amd"`)
	assert.Contains(t, main, `resource "oci_core_instance" "arm"`)
	assert.Contains(t, main, `shape               = "VM.Standard.E2.1.Micro"`)
	assert.Contains(t, main, `shape               = "VM.Standard.A1.Flex"`)
	assert.Contains(t, main, "${path.module}/cloud-init.yaml")
}

func TestGenerate_BacksUpExistingFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewService(model.Options{WorkDir: dir, OCIProfile: "DEFAULT"})

	require.NoError(t, s.Generate(testTenancy(), testPlan()))
	require.NoError(t, s.Generate(testTenancy(), testPlan()))

	matches, err := filepath.Glob(filepath.Join(dir, "variables.tf.bak.*"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	// The live file is still present alongside the backup.
	_, err = os.Stat(filepath.Join(dir, "variables.tf"))
	assert.NoError(t, err)
}

func TestGenerate_RoundTripsThroughSavedParser(t *testing.T) {
	dir := t.TempDir()
	s := NewService(model.Options{WorkDir: dir, OCIProfile: "DEFAULT"})

	require.NoError(t, s.Generate(testTenancy(), testPlan()))

	variables := readGenerated(t, dir, "variables.tf")
	assert.Contains(t, variables, "arm_block_volume_sizes        = [0, 0]")
}
