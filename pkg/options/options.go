package options

import (
	"fmt"
	"net"
	"net/url"

	"github.com/spf13/pflag"
)

// IOptions is the contract every option group satisfies so an application can
// aggregate, validate and flag-bind them uniformly.
type IOptions interface {
	// Validate parses and validates the parameters entered by the user at
	// the command line when the program starts.
	Validate() []error

	// AddFlags adds the option group's flags to the specified FlagSet.
	AddFlags(fs *pflag.FlagSet)
}

// ValidateAddress checks that addr is a valid host:port listen address.
func ValidateAddress(addr string) error {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	return nil
}

// ValidateBaseURL checks that raw is an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base URL %q: missing host", raw)
	}
	return nil
}
