package options

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
)

var _ IOptions = (*CacheOptions)(nil)

// CacheOptions contains configuration for the persisted recent-vehicle cache.
type CacheOptions struct {
	// Dir is the directory holding the persisted console state. Empty means
	// the per-user config directory.
	Dir string `json:"dir" mapstructure:"dir"`

	// Capacity is the maximum number of remembered vehicle ids.
	Capacity int `json:"capacity" mapstructure:"capacity"`
}

// NewCacheOptions creates a CacheOptions object with default parameters.
func NewCacheOptions() *CacheOptions {
	return &CacheOptions{
		Capacity: 10,
	}
}

// ResolveDir returns the effective state directory, falling back to the
// per-user config directory when none was configured.
func (o *CacheOptions) ResolveDir() (string, error) {
	if o.Dir != "" {
		return o.Dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "smartmove"), nil
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *CacheOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errors := []error{}

	if o.Capacity <= 0 {
		errors = append(errors, fmt.Errorf("cache capacity must be positive, got %d", o.Capacity))
	}

	return errors
}

// AddFlags adds flags related to the recent-vehicle cache to the specified FlagSet.
func (o *CacheOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Dir, "cache.dir", o.Dir, "Directory for persisted console state (default: per-user config dir).")
	fs.IntVar(&o.Capacity, "cache.capacity", o.Capacity, "Maximum number of remembered vehicle ids.")
}
