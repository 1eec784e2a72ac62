package planner

import (
	"github.com/elC0mpa/oci-freetier/model"
)

// Prompter gathers interactive input. The huh-backed implementation is used
// in real runs; tests script their own.
type Prompter interface {
	Select(title string, options []string, def int) int
	Int(title string, def, min, max int) int
	String(title, def string) string
	Confirm(title string, def bool) bool
}

type service struct {
	opts     model.Options
	prompter Prompter
}
