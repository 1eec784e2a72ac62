package ociconfig

import (
	"context"

	"github.com/elC0mpa/oci-freetier/model"
	"github.com/oracle/oci-go-sdk/v65/common"
)

type service struct {
	opts model.Options
}

// ConfigService reads the profile-based OCI config file and builds the
// matching SDK configuration provider.
type ConfigService interface {
	ReadValue(key string) (string, error)
	AuthMethod() (model.AuthMethod, error)
	Provider() (common.ConfigurationProvider, error)
	TenancyContext() (*model.TenancyContext, error)
	Authenticate(ctx context.Context) error
}
