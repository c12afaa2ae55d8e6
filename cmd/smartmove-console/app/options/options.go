package options

import (
	"github.com/spf13/pflag"

	"github.com/DVA506/SmartMove/internal/console"
	"github.com/DVA506/SmartMove/pkg/log"
	"github.com/DVA506/SmartMove/pkg/options"
)

// ConsoleOptions aggregates every option group of the operator console.
type ConsoleOptions struct {
	ApiOptions     *options.ApiOptions     `json:"api" mapstructure:"api"`
	CacheOptions   *options.CacheOptions   `json:"cache" mapstructure:"cache"`
	RefreshOptions *options.RefreshOptions `json:"refresh" mapstructure:"refresh"`
	MetricsOptions *options.MetricsOptions `json:"metrics" mapstructure:"metrics"`
	Log            *log.Options            `json:"log" mapstructure:"log"`
}

// NewConsoleOptions creates a ConsoleOptions with defaults.
func NewConsoleOptions() *ConsoleOptions {
	return &ConsoleOptions{
		ApiOptions:     options.NewApiOptions(),
		CacheOptions:   options.NewCacheOptions(),
		RefreshOptions: options.NewRefreshOptions(),
		MetricsOptions: options.NewMetricsOptions(),
		Log:            log.NewOptions(),
	}
}

// AddFlags binds all option groups to fs.
func (o *ConsoleOptions) AddFlags(fs *pflag.FlagSet) {
	o.ApiOptions.AddFlags(fs)
	o.CacheOptions.AddFlags(fs)
	o.RefreshOptions.AddFlags(fs)
	o.MetricsOptions.AddFlags(fs)
	o.Log.AddFlags(fs)
}

// Validate validates every option group and collects their errors.
func (o *ConsoleOptions) Validate() []error {
	errs := []error{}
	errs = append(errs, o.ApiOptions.Validate()...)
	errs = append(errs, o.CacheOptions.Validate()...)
	errs = append(errs, o.RefreshOptions.Validate()...)
	errs = append(errs, o.MetricsOptions.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return errs
}

// Config builds the console configuration from the validated options.
func (o *ConsoleOptions) Config() *console.Config {
	return &console.Config{
		ApiOptions:     o.ApiOptions,
		CacheOptions:   o.CacheOptions,
		RefreshOptions: o.RefreshOptions,
	}
}
