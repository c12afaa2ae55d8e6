package options

import (
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*ApiOptions)(nil)

// ApiOptions contains configuration for reaching the fleet-management service.
type ApiOptions struct {
	// BaseURL is the single configured origin of the fleet API. It is fixed
	// for the process lifetime and displayed read-only to the operator.
	BaseURL string `json:"base-url" mapstructure:"base-url"`

	// Timeout bounds each individual request. Zero disables the client-side
	// timeout entirely; a hung request then blocks only its own outcome.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// NewApiOptions creates an ApiOptions object with default parameters.
func NewApiOptions() *ApiOptions {
	return &ApiOptions{
		BaseURL: "http://localhost:8080",
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *ApiOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errors := []error{}

	if err := ValidateBaseURL(o.BaseURL); err != nil {
		errors = append(errors, err)
	}

	return errors
}

// AddFlags adds flags related to the fleet API to the specified FlagSet.
func (o *ApiOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.BaseURL, "api.base-url", o.BaseURL, "Base origin of the fleet-management service.")
	fs.DurationVar(&o.Timeout, "api.timeout", o.Timeout, "Per-request timeout for fleet API calls (0 disables).")
}
