package validators

import (
	"errors"
	"testing"

	"github.com/cloud-ru/mcp-parcelado-go/internal/calculations"
	"github.com/cloud-ru/mcp-parcelado-go/internal/config"
)

func TestValidators(t *testing.T) {
	cfg, _ := config.LoadConfig()

	tests := []struct {
		name      string
		validator func(*config.Config, interface{}) error
		value     interface{}
		wantError bool
	}{
		{
			name:      "valid principal",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     10000.0,
			wantError: false,
		},
		{
			name:      "invalid principal zero",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     0.0,
			wantError: true,
		},
		{
			name:      "invalid principal negative",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     -1000.0,
			wantError: true,
		},
		{
			name:      "valid interest rate",
			validator: func(cfg *config.Config, v interface{}) error { return CheckInterestRate(cfg, v.(float64)) },
			value:     1.99,
			wantError: false,
		},
		{
			name:      "zero interest rate",
			validator: func(cfg *config.Config, v interface{}) error { return CheckInterestRate(cfg, v.(float64)) },
			value:     0.0,
			wantError: false,
		},
		{
			name:      "invalid return rate negative",
			validator: func(cfg *config.Config, v interface{}) error { return CheckReturnRate(cfg, v.(float64)) },
			value:     -1.0,
			wantError: true,
		},
		{
			name:      "invalid inflation too large",
			validator: func(cfg *config.Config, v interface{}) error { return CheckInflationRate(cfg, v.(float64)) },
			value:     1000.0,
			wantError: true,
		},
		{
			name:      "valid months",
			validator: func(cfg *config.Config, v interface{}) error { return CheckMonths(cfg, v.(int)) },
			value:     12,
			wantError: false,
		},
		{
			name:      "invalid months zero",
			validator: func(cfg *config.Config, v interface{}) error { return CheckMonths(cfg, v.(int)) },
			value:     0,
			wantError: true,
		},
		{
			name:      "valid payment",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPayment(cfg, v.(float64)) },
			value:     888.49,
			wantError: false,
		},
		{
			name:      "valid discount",
			validator: func(cfg *config.Config, v interface{}) error { return CheckDiscount(v.(float64)) },
			value:     5.0,
			wantError: false,
		},
		{
			name:      "invalid discount hundred",
			validator: func(cfg *config.Config, v interface{}) error { return CheckDiscount(v.(float64)) },
			value:     100.0,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator(cfg, tt.value)
			if (err != nil) != tt.wantError {
				t.Errorf("validator error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !errors.Is(err, calculations.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCheckSimulationInput(t *testing.T) {
	cfg, _ := config.LoadConfig()
	discount := 100.0
	inflation := 0.4

	valid := calculations.SimulationInput{
		Principal:            10000,
		Months:               12,
		InterestRatePercent:  1,
		ReturnRatePercent:    1,
		InflationRatePercent: &inflation,
	}
	if err := CheckSimulationInput(cfg, valid); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	invalid := valid
	invalid.CashDiscountPercent = &discount
	if err := CheckSimulationInput(cfg, invalid); !errors.Is(err, calculations.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	invalid = valid
	invalid.Months = cfg.MaxMonths + 1
	if err := CheckSimulationInput(cfg, invalid); err == nil {
		t.Error("expected error for too long term")
	}
}

func TestCheckContribution(t *testing.T) {
	cfg := &config.Config{MaxPrincipal: 1e9, MaxContribution: 1000}

	tests := []struct {
		name      string
		check     func() error
		wantError bool
	}{
		{name: "zero contribution", check: func() error { return CheckContribution(cfg, 0) }},
		{name: "contribution at limit", check: func() error { return CheckContribution(cfg, 1000) }},
		{name: "contribution above limit", check: func() error { return CheckContribution(cfg, 1000.01) }, wantError: true},
		{name: "negative contribution", check: func() error { return CheckContribution(cfg, -1) }, wantError: true},
		{name: "zero initial amount", check: func() error { return CheckInitialAmount(cfg, 0) }},
		{name: "negative initial amount", check: func() error { return CheckInitialAmount(cfg, -5) }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			if (err != nil) != tt.wantError {
				t.Errorf("error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !errors.Is(err, calculations.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
