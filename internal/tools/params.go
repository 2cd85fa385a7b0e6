package tools

import (
	"fmt"
	"math"

	"github.com/cloud-ru/mcp-parcelado-go/internal/calculations"
)

// Параметры приходят из JSON, поэтому все числа имеют тип float64

func floatParam(params map[string]interface{}, name string) (float64, error) {
	value, ok := params[name].(float64)
	if !ok {
		return 0, fmt.Errorf("%w: invalid parameter: %s", calculations.ErrInvalidInput, name)
	}
	return value, nil
}

func optionalFloatParam(params map[string]interface{}, name string) (*float64, error) {
	raw, present := params[name]
	if !present || raw == nil {
		return nil, nil
	}
	value, ok := raw.(float64)
	if !ok {
		return nil, fmt.Errorf("%w: invalid parameter: %s", calculations.ErrInvalidInput, name)
	}
	return &value, nil
}

func intParam(params map[string]interface{}, name string) (int, error) {
	value, err := floatParam(params, name)
	if err != nil {
		return 0, err
	}
	if value != math.Trunc(value) || math.Abs(value) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: invalid parameter: %s must be an integer", calculations.ErrInvalidInput, name)
	}
	return int(value), nil
}

func optionalBoolParam(params map[string]interface{}, name string) (bool, error) {
	raw, present := params[name]
	if !present || raw == nil {
		return false, nil
	}
	value, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%w: invalid parameter: %s", calculations.ErrInvalidInput, name)
	}
	return value, nil
}

func optionalStringParam(params map[string]interface{}, name string) (string, error) {
	raw, present := params[name]
	if !present || raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: invalid parameter: %s", calculations.ErrInvalidInput, name)
	}
	return value, nil
}

// simulationInputParam собирает SimulationInput из параметров запроса
func simulationInputParam(params map[string]interface{}) (calculations.SimulationInput, error) {
	var in calculations.SimulationInput
	var err error

	if in.Principal, err = floatParam(params, "principal"); err != nil {
		return in, err
	}
	if in.Months, err = intParam(params, "months"); err != nil {
		return in, err
	}
	if in.InterestRatePercent, err = floatParam(params, "interest_rate_percent"); err != nil {
		return in, err
	}
	if in.ReturnRatePercent, err = floatParam(params, "return_rate_percent"); err != nil {
		return in, err
	}
	if in.InflationRatePercent, err = optionalFloatParam(params, "inflation_rate_percent"); err != nil {
		return in, err
	}
	if in.CashDiscountPercent, err = optionalFloatParam(params, "cash_discount_percent"); err != nil {
		return in, err
	}
	return in, nil
}
