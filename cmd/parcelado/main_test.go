package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cloud-ru/mcp-parcelado-go/internal/calculations"
	"github.com/cloud-ru/mcp-parcelado-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		MaxPrincipal:    1e9,
		MaxMonths:       600,
		MaxRate:         100,
		MaxContribution: 1e8,
		MaxBalanceCap:   1e12,
		SolverMethod:    calculations.SolverBisection,
		SolverStep:      0.0001,
		SolverCeiling:   0.2,
		SolverTolerance: 0.01,
	}
}

func TestRun_Equivalent(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, testConfig(), options{
		input: calculations.SimulationInput{
			Principal:           10000,
			Months:              12,
			InterestRatePercent: 1,
			ReturnRatePercent:   1,
		},
		amortization: true,
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Parcela: R$ 888,49 x 12")
	assert.Contains(t, text, "CET: 1,00% a.m. (12,68% a.a.)")
	assert.Contains(t, text, "[favorable]")
	assert.Contains(t, text, "As duas opções são equivalentes.")
	assert.Contains(t, text, "Juros totais:")
}

func TestRun_DiscountAndScan(t *testing.T) {
	discount := 5.0
	var out bytes.Buffer
	err := run(&out, testConfig(), options{
		input: calculations.SimulationInput{
			Principal:           10000,
			Months:              12,
			InterestRatePercent: 0,
			ReturnRatePercent:   1,
			CashDiscountPercent: &discount,
		},
		method: calculations.SolverScan,
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Parcela: R$ 833,33 x 12")
	assert.Contains(t, text, "CET: 0,00% a.m.")
	assert.NotContains(t, text, "Juros totais:")
}

func TestRun_InvalidInput(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, testConfig(), options{
		input: calculations.SimulationInput{
			Principal:           10000,
			Months:              0,
			InterestRatePercent: 1,
			ReturnRatePercent:   1,
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, calculations.ErrInvalidInput))
	assert.Empty(t, out.String())
}
