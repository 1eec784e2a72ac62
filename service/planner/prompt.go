package planner

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/elC0mpa/oci-freetier/utils"
)

// huhPrompter renders terminal forms. Out-of-range or unparsable input
// falls back to the default rather than looping, so scripted stdin never
// wedges a run.
type huhPrompter struct{}

func NewPrompter() Prompter {
	return huhPrompter{}
}

func (huhPrompter) Select(title string, options []string, def int) int {
	opts := make([]huh.Option[int], 0, len(options))
	for i, label := range options {
		opts = append(opts, huh.NewOption(label, i))
	}

	selected := def
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title(title).
			Options(opts...).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		utils.PrintWarning("Prompt failed (%v), using default", err)
		return def
	}
	return selected
}

func (huhPrompter) Int(title string, def, minVal, maxVal int) int {
	value := strconv.Itoa(def)
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Value(&value).
			Validate(func(s string) error {
				n, err := strconv.Atoi(s)
				if err != nil {
					return fmt.Errorf("enter a number")
				}
				if n < minVal || n > maxVal {
					return fmt.Errorf("must be between %d and %d", minVal, maxVal)
				}
				return nil
			}),
	))
	if err := form.Run(); err != nil {
		utils.PrintWarning("Prompt failed (%v), using default %d", err, def)
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < minVal || n > maxVal {
		return def
	}
	return n
}

func (huhPrompter) String(title, def string) string {
	value := def
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title(title).Value(&value),
	))
	if err := form.Run(); err != nil {
		utils.PrintWarning("Prompt failed (%v), using default %q", err, def)
		return def
	}
	if value == "" {
		return def
	}
	return value
}

func (huhPrompter) Confirm(title string, def bool) bool {
	value := def
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Value(&value),
	))
	if err := form.Run(); err != nil {
		utils.PrintWarning("Prompt failed (%v), using default", err)
		return def
	}
	return value
}
