package filegen

const providerTemplate = `# Terraform Provider Configuration for Oracle Cloud Infrastructure
# Generated: {{ generated }}
# Region: {{ region }}

terraform {
  required_version = ">= 1.0"
  required_providers {
    oci = {
      source  = "oracle/oci"
      version = "~> 6.0"
    }
  }
{% if backend_oci %}
  backend "s3" {
    bucket   = "{{ backend_bucket }}"
    key      = "{{ backend_key }}"
    region   = "{{ backend_region }}"
    endpoints = {
      s3 = "{{ backend_endpoint }}"
    }
    skip_credentials_validation = true
    skip_region_validation      = true
    skip_requesting_account_id  = true
    skip_metadata_api_check     = true
    skip_s3_checksum            = true
    use_path_style              = true
  }
{% endif %}
}

provider "oci" {
{% if provider_auth %}  auth                = "{{ provider_auth }}"
{% endif %}{% if provider_profile %}  config_file_profile = "{{ provider_profile }}"
{% endif %}  region              = "{{ region }}"
}
`

const variablesTemplate = `# Oracle Cloud Infrastructure Terraform Variables
# Generated: {{ generated }}
# Configuration: {{ amd_count }}x AMD + {{ arm_count }}x ARM instances

locals {
  # Core identifiers
  tenancy_ocid    = "{{ tenancy_ocid }}"
  compartment_id  = "{{ tenancy_ocid }}"
  user_ocid       = "{{ user_ocid }}"
  region          = "{{ region }}"

  # Ubuntu Images (region-specific)
  ubuntu_x86_image_ocid = "{{ ubuntu_x86_image_ocid }}"
  ubuntu_arm_image_ocid = "{{ ubuntu_arm_image_ocid }}"

  # SSH Configuration
  ssh_pubkey_path      = pathexpand("./ssh_keys/id_rsa.pub")
  ssh_pubkey_data      = file(pathexpand("./ssh_keys/id_rsa.pub"))
  ssh_private_key_path = pathexpand("./ssh_keys/id_rsa")

  # AMD x86 Micro Instances Configuration
  amd_micro_instance_count      = {{ amd_count }}
  amd_micro_boot_volume_size_gb = {{ amd_boot_volume_gb }}
  amd_micro_hostnames           = {{ amd_hostnames }}
  amd_block_volume_size_gb      = 0

  # ARM A1 Flex Instances Configuration
  arm_flex_instance_count       = {{ arm_count }}
  arm_flex_ocpus_per_instance   = {{ arm_ocpus }}
  arm_flex_memory_per_instance  = {{ arm_memory }}
  arm_flex_boot_volume_sizes    = {{ arm_boot_volumes }}
  arm_flex_hostnames            = {{ arm_hostnames }}
  arm_block_volume_sizes        = {{ arm_block_volumes }}

  # Storage calculations
  total_amd_storage   = local.amd_micro_instance_count * local.amd_micro_boot_volume_size_gb
  total_arm_storage   = local.arm_flex_instance_count > 0 ? sum(local.arm_flex_boot_volume_sizes) : 0
  total_block_storage = (local.amd_micro_instance_count * local.amd_block_volume_size_gb) + (local.arm_flex_instance_count > 0 ? sum(local.arm_block_volume_sizes) : 0)
  total_storage       = local.total_amd_storage + local.total_arm_storage + local.total_block_storage
}

# Free Tier Limits
variable "free_tier_max_storage_gb" {
  description = "Maximum storage for Oracle Free Tier"
  type        = number
  default     = {{ max_storage_gb }}
}

variable "free_tier_max_arm_ocpus" {
  description = "Maximum ARM OCPUs for Oracle Free Tier"
  type        = number
  default     = {{ max_arm_ocpus }}
}

variable "free_tier_max_arm_memory_gb" {
  description = "Maximum ARM memory for Oracle Free Tier"
  type        = number
  default     = {{ max_arm_memory_gb }}
}

# Validation checks
check "storage_limit" {
  assert {
    condition     = local.total_storage <= var.free_tier_max_storage_gb
    error_message = "Total storage (${local.total_storage}GB) exceeds Free Tier limit (${var.free_tier_max_storage_gb}GB)"
  }
}

check "arm_ocpu_limit" {
  assert {
    condition     = local.arm_flex_instance_count == 0 || sum(local.arm_flex_ocpus_per_instance) <= var.free_tier_max_arm_ocpus
    error_message = "Total ARM OCPUs exceed Free Tier limit (${var.free_tier_max_arm_ocpus})"
  }
}

check "arm_memory_limit" {
  assert {
    condition     = local.arm_flex_instance_count == 0 || sum(local.arm_flex_memory_per_instance) <= var.free_tier_max_arm_memory_gb
    error_message = "Total ARM memory exceeds Free Tier limit (${var.free_tier_max_arm_memory_gb}GB)"
  }
}
`

const dataSourcesTemplate = `# OCI Data Sources
# Fetches dynamic information from Oracle Cloud

# Availability Domains
data "oci_identity_availability_domains" "ads" {
  compartment_id = local.tenancy_ocid
}

# Tenancy Information
data "oci_identity_tenancy" "tenancy" {
  tenancy_id = local.tenancy_ocid
}

# Available Regions
data "oci_identity_regions" "regions" {}

# Region Subscriptions
data "oci_identity_region_subscriptions" "subscriptions" {
  tenancy_id = local.tenancy_ocid
}
`

const mainTemplate = `# Oracle Cloud Infrastructure - Main Configuration
# Always Free Tier Optimized
# Generated: {{ generated }}

# NETWORKING

resource "oci_core_vcn" "main" {
  compartment_id = local.compartment_id
  cidr_blocks    = ["10.0.0.0/16"]
  display_name   = "main-vcn"
  dns_label      = "mainvcn"
  is_ipv6enabled = true

  freeform_tags = {
    "Purpose" = "AlwaysFreeTier"
    "Managed" = "Terraform"
  }
}

resource "oci_core_internet_gateway" "main" {
  compartment_id = local.compartment_id
  vcn_id         = oci_core_vcn.main.id
  display_name   = "main-igw"
  enabled        = true
}

resource "oci_core_default_route_table" "main" {
  manage_default_resource_id = oci_core_vcn.main.default_route_table_id
  display_name               = "main-default-rt"

  route_rules {
    destination       = "0.0.0.0/0"
    destination_type  = "CIDR_BLOCK"
    network_entity_id = oci_core_internet_gateway.main.id
  }

  route_rules {
    destination       = "::/0"
    destination_type  = "CIDR_BLOCK"
    network_entity_id = oci_core_internet_gateway.main.id
  }
}

resource "oci_core_default_security_list" "main" {
  manage_default_resource_id = oci_core_vcn.main.default_security_list_id
  display_name               = "main-default-sl"

  egress_security_rules {
    destination = "0.0.0.0/0"
    protocol    = "all"
  }

  ingress_security_rules {
    protocol = "6"
    source   = "0.0.0.0/0"

    tcp_options {
      min = 22
      max = 22
    }
  }

  ingress_security_rules {
    protocol = "1"
    source   = "0.0.0.0/0"

    icmp_options {
      type = 3
      code = 4
    }
  }
}

resource "oci_core_subnet" "main" {
  compartment_id    = local.compartment_id
  vcn_id            = oci_core_vcn.main.id
  cidr_block        = "10.0.1.0/24"
  display_name      = "main-subnet"
  dns_label         = "mainsubnet"
  route_table_id    = oci_core_vcn.main.default_route_table_id
  security_list_ids = [oci_core_vcn.main.default_security_list_id]
}

# COMPUTE

resource "oci_core_instance" "amd" {
  count = local.amd_micro_instance_count

  compartment_id      = local.compartment_id
  availability_domain = data.oci_identity_availability_domains.ads.availability_domains[0].name
  display_name        = local.amd_micro_hostnames[count.index]
  shape               = "VM.Standard.E2.1.Micro"

  source_details {
    source_type             = "image"
    source_id               = local.ubuntu_x86_image_ocid
    boot_volume_size_in_gbs = local.amd_micro_boot_volume_size_gb
  }

  create_vnic_details {
    subnet_id        = oci_core_subnet.main.id
    assign_public_ip = true
    hostname_label   = local.amd_micro_hostnames[count.index]
  }

  metadata = {
    ssh_authorized_keys = local.ssh_pubkey_data
    user_data = base64encode(templatefile("${path.module}/cloud-init.yaml", {
      hostname = local.amd_micro_hostnames[count.index]
    }))
  }

  freeform_tags = {
    "Purpose" = "AlwaysFreeTier"
    "Shape"   = "AMD-Micro"
    "Managed" = "Terraform"
  }

  lifecycle {
    ignore_changes = [source_details, metadata]
  }
}

resource "oci_core_instance" "arm" {
  count = local.arm_flex_instance_count

  compartment_id      = local.compartment_id
  availability_domain = data.oci_identity_availability_domains.ads.availability_domains[0].name
  display_name        = local.arm_flex_hostnames[count.index]
  shape               = "VM.Standard.A1.Flex"

  shape_config {
    ocpus         = local.arm_flex_ocpus_per_instance[count.index]
    memory_in_gbs = local.arm_flex_memory_per_instance[count.index]
  }

  source_details {
    source_type             = "image"
    source_id               = local.ubuntu_arm_image_ocid
    boot_volume_size_in_gbs = local.arm_flex_boot_volume_sizes[count.index]
  }

  create_vnic_details {
    subnet_id        = oci_core_subnet.main.id
    assign_public_ip = true
    hostname_label   = local.arm_flex_hostnames[count.index]
  }

  metadata = {
    ssh_authorized_keys = local.ssh_pubkey_data
    user_data = base64encode(templatefile("${path.module}/cloud-init.yaml", {
      hostname = local.arm_flex_hostnames[count.index]
    }))
  }

  freeform_tags = {
    "Purpose" = "AlwaysFreeTier"
    "Shape"   = "ARM-A1-Flex"
    "Managed" = "Terraform"
  }

  lifecycle {
    ignore_changes = [source_details, metadata]
  }
}

# OUTPUTS

output "vcn_id" {
  value = oci_core_vcn.main.id
}

output "amd_instance_public_ips" {
  value = [for i in oci_core_instance.amd : i.public_ip]
}

output "arm_instance_public_ips" {
  value = [for i in oci_core_instance.arm : i.public_ip]
}

output "ssh_commands" {
  value = concat(
    [for i in oci_core_instance.amd : "ssh -i ${local.ssh_private_key_path} ubuntu@${i.public_ip}"],
    [for i in oci_core_instance.arm : "ssh -i ${local.ssh_private_key_path} ubuntu@${i.public_ip}"],
  )
}
`

const blockVolumesTemplate = `# Block Volume Resources (Optional)
# Block volumes provide additional storage beyond boot volumes

# AMD Block Volumes
resource "oci_core_volume" "amd_block" {
  count = local.amd_block_volume_size_gb > 0 ? local.amd_micro_instance_count : 0

  compartment_id      = local.compartment_id
  availability_domain = data.oci_identity_availability_domains.ads.availability_domains[0].name
  display_name        = "${local.amd_micro_hostnames[count.index]}-block"
  size_in_gbs         = local.amd_block_volume_size_gb

  freeform_tags = {
    "Purpose" = "AlwaysFreeTier"
    "Type"    = "BlockVolume"
    "Managed" = "Terraform"
  }
}

resource "oci_core_volume_attachment" "amd_block" {
  count = local.amd_block_volume_size_gb > 0 ? local.amd_micro_instance_count : 0

  attachment_type = "paravirtualized"
  instance_id     = oci_core_instance.amd[count.index].id
  volume_id       = oci_core_volume.amd_block[count.index].id
}

# ARM Block Volumes
resource "oci_core_volume" "arm_block" {
  count = local.arm_flex_instance_count > 0 ? length([for s in local.arm_block_volume_sizes : s if s > 0]) : 0

  compartment_id      = local.compartment_id
  availability_domain = data.oci_identity_availability_domains.ads.availability_domains[0].name
  display_name        = "${local.arm_flex_hostnames[count.index]}-block"
  size_in_gbs         = [for s in local.arm_block_volume_sizes : s if s > 0][count.index]

  freeform_tags = {
    "Purpose" = "AlwaysFreeTier"
    "Type"    = "BlockVolume"
    "Managed" = "Terraform"
  }
}

resource "oci_core_volume_attachment" "arm_block" {
  count = local.arm_flex_instance_count > 0 ? length([for s in local.arm_block_volume_sizes : s if s > 0]) : 0

  attachment_type = "paravirtualized"
  instance_id     = oci_core_instance.arm[count.index].id
  volume_id       = oci_core_volume.arm_block[count.index].id
}
`

const cloudInitTemplate = `#cloud-config
hostname: ${hostname}
fqdn: ${hostname}.local
manage_etc_hosts: true

package_update: true
package_upgrade: true

packages:
  - curl
  - wget
  - git
  - htop
  - vim
  - unzip
  - jq
  - tmux
  - net-tools
  - iotop
  - ncdu

runcmd:
  - echo "Instance ${hostname} initialized at $(date)" >> /var/log/cloud-init-complete.log
  - systemctl enable --now fail2ban || true

# Basic security hardening
write_files:
  - path: /etc/ssh/sshd_config.d/hardening.conf
    content: |
      PermitRootLogin no
      PasswordAuthentication no
      MaxAuthTries 3
      ClientAliveInterval 300
      ClientAliveCountMax 2

timezone: UTC
ssh_pwauth: false

final_message: "Instance ${hostname} ready after $UPTIME seconds"
`
