package network

import (
	"time"

	"github.com/oracle/oci-go-sdk/v65/core"
)

type service struct {
	client      core.VirtualNetworkClient
	compute     core.ComputeClient
	readTimeout time.Duration
}
