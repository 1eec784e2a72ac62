package storage

import (
	"time"

	"github.com/oracle/oci-go-sdk/v65/core"
)

type service struct {
	client      core.BlockstorageClient
	readTimeout time.Duration
}
