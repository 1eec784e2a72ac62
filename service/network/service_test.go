package network

import (
	"context"
	"testing"

	"github.com/oracle/oci-go-sdk/v65/core"
)

// The VNIC attachment lookup lives on the compute API; the virtual network
// client only resolves the VNIC itself. Pinned here so a client swap fails
// to compile instead of failing at runtime.
func TestIPResolutionClientSplit(t *testing.T) {
	var s service
	var _ interface {
		ListVnicAttachments(context.Context, core.ListVnicAttachmentsRequest) (core.ListVnicAttachmentsResponse, error)
	} = s.compute
	var _ interface {
		GetVnic(context.Context, core.GetVnicRequest) (core.GetVnicResponse, error)
	} = s.client
}
