package calculations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	cap float64
}

func (c testConfig) BalanceCap() float64 { return c.cap }

var defaultTestConfig = testConfig{cap: 1e12}

func TestClassify(t *testing.T) {
	boundaryInvest := 2.5

	tests := []struct {
		name      string
		effective float64
		invest    float64
		want      Tier
	}{
		{name: "cheaper than investment", effective: 0.5, invest: 1, want: TierFavorable},
		{name: "equal rates", effective: 1, invest: 1, want: TierFavorable},
		{name: "slightly above", effective: 1.1, invest: 1, want: TierMarginal},
		{name: "upper boundary", effective: boundaryInvest * MarginalFactor, invest: boundaryInvest, want: TierMarginal},
		{name: "above boundary", effective: 1.21, invest: 1, want: TierUnfavorable},
		{name: "scenario C", effective: 5, invest: 1, want: TierUnfavorable},
		{name: "zero investment zero cost", effective: 0, invest: 0, want: TierFavorable},
		{name: "zero investment any cost", effective: 0.01, invest: 0, want: TierUnfavorable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.effective, tt.invest)
			assert.Equal(t, tt.want, got.Tier)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestClassify_Monotonic(t *testing.T) {
	rank := map[Tier]int{TierFavorable: 0, TierMarginal: 1, TierUnfavorable: 2}

	for _, invest := range []float64{0, 0.5, 1, 3.7} {
		prev := 0
		for i := 0; i <= 1000; i++ {
			effective := float64(i) * 0.01
			got := rank[Classify(effective, invest).Tier]
			require.GreaterOrEqual(t, got, prev, "effective=%v invest=%v", effective, invest)
			prev = got
		}
	}
}

func TestCompareFinalBalance(t *testing.T) {
	surplus := CompareFinalBalance(699.4978)
	assert.Equal(t, ChoiceFinance, surplus.Choice)
	assert.InDelta(t, 699.4978, surplus.Difference, 1e-9)
	assert.Contains(t, surplus.Message, "R$ 699,50")

	deficit := CompareFinalBalance(-3040.8357)
	assert.Equal(t, ChoiceCash, deficit.Choice)
	assert.InDelta(t, 3040.8357, deficit.Difference, 1e-9)
	assert.Contains(t, deficit.Message, "R$ 3.040,84")

	even := CompareFinalBalance(6.25e-12)
	assert.Equal(t, ChoiceEquivalent, even.Choice)
	assert.Zero(t, even.Difference)
}

func TestCompareCashDiscount(t *testing.T) {
	t.Run("small discount loses to installments", func(t *testing.T) {
		got, err := CompareCashDiscount(defaultTestConfig, 10000, 5, 1, 12, 699.4978)
		require.NoError(t, err)
		assert.Equal(t, ChoiceFinance, got.Choice)
		assert.Equal(t, 500.0, got.DiscountAmount)
		assert.Equal(t, 9500.0, got.CashPrice)
		assert.InDelta(t, 563.41, got.DiscountFutureValue, 0.01)
		assert.InDelta(t, 136.09, got.Margin, 0.02)
	})

	t.Run("large discount beats installments", func(t *testing.T) {
		got, err := CompareCashDiscount(defaultTestConfig, 10000, 20, 1, 12, 699.4978)
		require.NoError(t, err)
		assert.Equal(t, ChoiceCash, got.Choice)
		assert.InDelta(t, 2253.64, got.DiscountFutureValue, 0.01)
		assert.InDelta(t, 1554.14, got.Margin, 0.02)
	})

	t.Run("no discount against deficit", func(t *testing.T) {
		got, err := CompareCashDiscount(defaultTestConfig, 10000, 0, 1, 12, -724.27)
		require.NoError(t, err)
		assert.Equal(t, ChoiceCash, got.Choice)
		assert.InDelta(t, 724.27, got.Margin, 1e-9)
	})

	t.Run("discount out of range", func(t *testing.T) {
		_, err := CompareCashDiscount(defaultTestConfig, 10000, 100, 1, 12, 0)
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = CompareCashDiscount(defaultTestConfig, 10000, -1, 1, 12, 0)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("balance cap", func(t *testing.T) {
		_, err := CompareCashDiscount(testConfig{cap: 100}, 10000, 5, 1, 12, 0)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestClassifyEffectiveRate_UsesUnroundedRate(t *testing.T) {
	payment, err := InstallmentPayment(10000, 12, 0.01004)
	require.NoError(t, err)

	rate, err := SolveEffectiveRate(10000, payment, 12, DefaultSolverOptions())
	require.NoError(t, err)
	require.True(t, rate.Determined)
	assert.Equal(t, 1.0, rate.MonthlyPercent)
	assert.InDelta(t, 1.004, rate.Rate*100, 0.0001)

	assert.Equal(t, TierMarginal, ClassifyEffectiveRate(rate, 1).Tier)
}

func TestClassifyEffectiveRate_BoundaryWithinPrecision(t *testing.T) {
	payment, err := InstallmentPayment(10000, 12, 0.01)
	require.NoError(t, err)

	for _, method := range []string{SolverBisection, SolverScan} {
		t.Run(method, func(t *testing.T) {
			opts := DefaultSolverOptions()
			opts.Method = method

			rate, err := SolveEffectiveRate(10000, payment, 12, opts)
			require.NoError(t, err)
			assert.Greater(t, rate.Precision, 0.0)
			assert.Less(t, rate.Precision, 0.001)

			assert.Equal(t, TierFavorable, ClassifyEffectiveRate(rate, 1).Tier)
		})
	}
}
