package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Options configures a Pipeline.
type Options struct {
	ControllerExtensions []string `validate:"required,min=1,dive,startswith=."`
	ViewExtensions       []string `validate:"required,min=1,dive,startswith=."`
	Exclude              []string
	DryRun               bool
}

// DefaultOptions targets ASP.NET MVC controllers and Razor views.
func DefaultOptions() Options {
	return Options{
		ControllerExtensions: []string{".cs"},
		ViewExtensions:       []string{".cshtml"},
	}
}

var optionsValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that every extension list is present and well formed.
func (o Options) Validate() error {
	if err := optionsValidator.Struct(o); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	return nil
}
