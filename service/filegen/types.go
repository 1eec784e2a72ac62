package filegen

import (
	"github.com/elC0mpa/oci-freetier/model"
)

type service struct {
	opts model.Options
}

func NewService(opts model.Options) *service {
	return &service{opts: opts}
}
