package identity

import (
	"time"

	"github.com/oracle/oci-go-sdk/v65/identity"
)

type service struct {
	client            identity.IdentityClient
	connectionTimeout time.Duration
}
