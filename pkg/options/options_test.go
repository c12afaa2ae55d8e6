package options

import (
	"testing"
	"time"
)

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"default origin", "http://localhost:8080", false},
		{"https origin", "https://fleet.example.com", false},
		{"missing scheme", "localhost:8080", true},
		{"bad scheme", "ftp://fleet.example.com", true},
		{"missing host", "http://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseURL(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBaseURL(%q) = %v, wantErr=%v", tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAddress(t *testing.T) {
	if err := ValidateAddress("127.0.0.1:9090"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateAddress("no-port"); err == nil {
		t.Error("expected error for address without port")
	}
}

func TestOptionGroupValidation(t *testing.T) {
	if errs := NewApiOptions().Validate(); len(errs) != 0 {
		t.Errorf("default api options must validate, got %v", errs)
	}

	api := NewApiOptions()
	api.BaseURL = "not a url"
	if errs := api.Validate(); len(errs) == 0 {
		t.Error("expected base URL validation error")
	}

	cache := NewCacheOptions()
	cache.Capacity = 0
	if errs := cache.Validate(); len(errs) == 0 {
		t.Error("expected capacity validation error")
	}

	refresh := NewRefreshOptions()
	if refresh.Period != 1500*time.Millisecond {
		t.Errorf("default refresh period = %s, want 1.5s", refresh.Period)
	}
	refresh.Period = -time.Second
	if errs := refresh.Validate(); len(errs) == 0 {
		t.Error("expected period validation error")
	}

	metrics := NewMetricsOptions()
	if errs := metrics.Validate(); len(errs) != 0 {
		t.Errorf("empty metrics addr must validate, got %v", errs)
	}
	metrics.Addr = "bogus"
	if errs := metrics.Validate(); len(errs) == 0 {
		t.Error("expected metrics addr validation error")
	}
}
