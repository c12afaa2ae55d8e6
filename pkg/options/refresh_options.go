package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*RefreshOptions)(nil)

// RefreshOptions contains configuration for the auto-refresh scheduler.
type RefreshOptions struct {
	// Period is the interval between automatic re-fetches of the currently
	// selected vehicle while auto-refresh is enabled.
	Period time.Duration `json:"period" mapstructure:"period"`
}

// NewRefreshOptions creates a RefreshOptions object with default parameters.
func NewRefreshOptions() *RefreshOptions {
	return &RefreshOptions{
		Period: 1500 * time.Millisecond,
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *RefreshOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errors := []error{}

	if o.Period <= 0 {
		errors = append(errors, fmt.Errorf("refresh period must be positive, got %s", o.Period))
	}

	return errors
}

// AddFlags adds flags related to auto-refresh to the specified FlagSet.
func (o *RefreshOptions) AddFlags(fs *pflag.FlagSet) {
	fs.DurationVar(&o.Period, "refresh.period", o.Period, "Interval between automatic vehicle re-fetches.")
}
