package options

import (
	"github.com/spf13/pflag"
)

var _ IOptions = (*MetricsOptions)(nil)

// MetricsOptions contains configuration for the optional metrics listener.
type MetricsOptions struct {
	// Addr is the listen address for the Prometheus /metrics endpoint.
	// Empty disables the listener.
	Addr string `json:"addr" mapstructure:"addr"`
}

// NewMetricsOptions creates a MetricsOptions object with default parameters.
func NewMetricsOptions() *MetricsOptions {
	return &MetricsOptions{}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *MetricsOptions) Validate() []error {
	if o == nil || o.Addr == "" {
		return nil
	}

	errors := []error{}

	if err := ValidateAddress(o.Addr); err != nil {
		errors = append(errors, err)
	}

	return errors
}

// AddFlags adds flags related to metrics exposure to the specified FlagSet.
func (o *MetricsOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Addr, "metrics.addr", o.Addr, "Listen address for Prometheus metrics (empty disables).")
}
