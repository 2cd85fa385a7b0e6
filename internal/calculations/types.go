package calculations

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных (срок, сумма, ставки)
	ErrInvalidInput = errors.New("некорректные входные данные")

	// ErrRateUnresolved возвращается, если эффективная ставка не найдена в заданном интервале
	ErrRateUnresolved = errors.New("эффективная ставка не определена")
)

// Tier уровень рекомендации («светофор»)
type Tier string

const (
	TierFavorable   Tier = "favorable"
	TierMarginal    Tier = "marginal"
	TierUnfavorable Tier = "unfavorable"
)

// Choice какой вариант оплаты выгоднее
type Choice string

const (
	ChoiceFinance    Choice = "installments"
	ChoiceCash       Choice = "cash"
	ChoiceEquivalent Choice = "equivalent"
)

// SimulationInput содержит параметры одной симуляции.
// Все ставки задаются в процентах в месяц.
type SimulationInput struct {
	Principal            float64  `json:"principal"`
	Months               int      `json:"months"`
	InterestRatePercent  float64  `json:"interest_rate_percent"`
	ReturnRatePercent    float64  `json:"return_rate_percent"`
	InflationRatePercent *float64 `json:"inflation_rate_percent,omitempty"`
	CashDiscountPercent  *float64 `json:"cash_discount_percent,omitempty"`
}

// InstallmentPlan фиксированный ежемесячный платеж
type InstallmentPlan struct {
	Payment float64 `json:"payment"`
	Months  int     `json:"months"`
}

// PeriodRecord представляет одну строку движения средств на счете
type PeriodRecord struct {
	Month              int      `json:"month"`
	OpeningBalance     float64  `json:"opening_balance"`
	PeriodReturn       float64  `json:"period_return"`
	BalanceAfterReturn float64  `json:"balance_after_return"`
	PaymentApplied     float64  `json:"payment_applied"`
	ClosingBalance     float64  `json:"closing_balance"`
	RealPayment        *float64 `json:"real_payment,omitempty"`
}

// SimulationResult представляет результат симуляции оплаты в рассрочку
type SimulationResult struct {
	Plan           InstallmentPlan `json:"plan"`
	Schedule       []PeriodRecord  `json:"schedule"`
	FinalBalance   float64         `json:"final_balance"`
	TotalPaid      float64         `json:"total_paid"`
	TotalInterest  float64         `json:"total_interest"`
	InflationBonus *float64        `json:"inflation_bonus,omitempty"`
}

// EffectiveRate эффективная стоимость кредита (CET).
// Determined == false означает, что ставку найти не удалось; это не то же самое, что 0%.
// Rate хранит неокругленную месячную ставку долей, Precision оценивает ее погрешность в процентах.
type EffectiveRate struct {
	Determined     bool    `json:"determined"`
	Rate           float64 `json:"rate"`
	MonthlyPercent float64 `json:"monthly_percent"`
	AnnualPercent  float64 `json:"annual_percent"`
	Precision      float64 `json:"precision_percent"`
	Iterations     int     `json:"iterations"`
}

// Recommendation рекомендация по уровню «светофора»
type Recommendation struct {
	Tier    Tier   `json:"tier"`
	Message string `json:"message"`
}

// BalanceVerdict сравнение по итоговому балансу счета
type BalanceVerdict struct {
	Choice       Choice  `json:"choice"`
	FinalBalance float64 `json:"final_balance"`
	Difference   float64 `json:"difference"`
	Message      string  `json:"message"`
}

// DiscountVerdict сравнение скидки за оплату сразу с итоговым балансом рассрочки
type DiscountVerdict struct {
	Choice              Choice  `json:"choice"`
	DiscountPercent     float64 `json:"discount_percent"`
	DiscountAmount      float64 `json:"discount_amount"`
	CashPrice           float64 `json:"cash_price"`
	DiscountFutureValue float64 `json:"discount_future_value"`
	FinancedBalance     float64 `json:"financed_balance"`
	Margin              float64 `json:"margin"`
	Message             string  `json:"message"`
}

// Report объединяет все результаты для одного запроса
type Report struct {
	ID             string           `json:"id"`
	Input          SimulationInput  `json:"input"`
	Simulation     SimulationResult `json:"simulation"`
	EffectiveRate  EffectiveRate    `json:"effective_rate"`
	Recommendation *Recommendation  `json:"recommendation,omitempty"`
	Balance        BalanceVerdict   `json:"balance"`
	Discount       *DiscountVerdict `json:"discount,omitempty"`
}

// ScheduleEntry представляет одну запись в графике погашения или роста вклада
type ScheduleEntry struct {
	Month                   int     `json:"month"`
	Payment                 float64 `json:"payment,omitempty"`
	Interest                float64 `json:"interest,omitempty"`
	PrincipalComponent      float64 `json:"principal_component,omitempty"`
	RemainingPrincipal      float64 `json:"remaining_principal,omitempty"`
	CumulativeInterest      float64 `json:"cumulative_interest,omitempty"`
	CumulativePrincipal     float64 `json:"cumulative_principal,omitempty"`
	StartingBalance         float64 `json:"starting_balance,omitempty"`
	Contribution            float64 `json:"contribution,omitempty"`
	InterestEarned          float64 `json:"interest_earned,omitempty"`
	EndingBalance           float64 `json:"ending_balance,omitempty"`
	CumulativeContributions float64 `json:"cumulative_contributions,omitempty"`
}

// LoanSummary представляет сводку по графику погашения
type LoanSummary struct {
	Principal          float64 `json:"principal"`
	MonthlyRatePercent float64 `json:"monthly_rate_percent"`
	Months             int     `json:"months"`
	MonthlyPayment     float64 `json:"monthly_payment"`
	TotalPaid          float64 `json:"total_paid"`
	TotalInterest      float64 `json:"total_interest"`
	OverpaymentPercent float64 `json:"overpayment_percent"`
}

// DepositSummary представляет сводку по росту вложенной суммы
type DepositSummary struct {
	InitialAmount           float64 `json:"initial_amount"`
	MonthlyRatePercent      float64 `json:"monthly_rate_percent"`
	Months                  int     `json:"months"`
	MonthlyContribution     float64 `json:"monthly_contribution"`
	ContributionAtBeginning bool    `json:"contribution_at_beginning"`
	FinalBalance            float64 `json:"final_balance"`
	TotalContributions      float64 `json:"total_contributions"`
	TotalInterest           float64 `json:"total_interest"`
}

// AmortizationResult представляет график погашения рассрочки
type AmortizationResult struct {
	Summary  LoanSummary     `json:"summary"`
	Schedule []ScheduleEntry `json:"schedule"`
}

// DepositResult представляет график роста вложенной суммы
type DepositResult struct {
	Summary  DepositSummary  `json:"summary"`
	Schedule []ScheduleEntry `json:"schedule"`
}
