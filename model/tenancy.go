package model

// AuthMethod is the authentication scheme declared in the OCI config profile.
type AuthMethod string

const (
	AuthAPIKey            AuthMethod = "api_key"
	AuthSecurityToken     AuthMethod = "security_token"
	AuthInstancePrincipal AuthMethod = "instance_principal"
	AuthResourcePrincipal AuthMethod = "resource_principal"
	AuthWorkloadIdentity  AuthMethod = "workload_identity"
	AuthInstanceOboUser   AuthMethod = "instance_obo_user"
)

// TenancyContext carries the identity and discovery values every later phase
// needs: who we are, where we run, which images to boot.
type TenancyContext struct {
	TenancyOCID        string
	UserOCID           string
	Region             string
	Fingerprint        string
	AuthMethod         AuthMethod
	AvailabilityDomain string

	UbuntuX86ImageOCID string
	UbuntuARMImageOCID string

	SSHPublicKey string
}

// ARMEnabled reports whether an ARM-capable image was found for the region.
func (c *TenancyContext) ARMEnabled() bool {
	return c.UbuntuARMImageOCID != ""
}
