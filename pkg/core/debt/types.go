package debt

// AccountType identifies the kind of debt account. Revolving types
// (credit cards, lines of credit) count toward utilization.
type AccountType string

const (
	TypeCreditCard    AccountType = "credit_card"
	TypeLineOfCredit  AccountType = "loc"
	TypeTermLoan      AccountType = "term_loan"
	TypeEquipmentLoan AccountType = "equipment_loan"
	TypeVehicleLoan   AccountType = "vehicle_loan"
	TypeSBALoan       AccountType = "sba_loan"
)

// Account is a caller-owned debt account snapshot. The engine never
// mutates it across calls.
type Account struct {
	AccountID      string      `json:"account_id"`
	Name           string      `json:"name"`
	Type           AccountType `json:"type"`
	Balance        float64     `json:"balance"`
	RatePct        float64     `json:"rate_pct"`
	MonthlyPayment float64     `json:"monthly_payment"`
	TermMonths     int         `json:"term_months"`
	BalloonDue     *int        `json:"balloon_due_months,omitempty"`
	VariableRate   bool        `json:"variable_rate,omitempty"`
	Limit          float64     `json:"limit,omitempty"`
}

// Entry is one month of an amortization schedule.
type Entry struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// Strategy orders accounts for payoff simulation.
type Strategy string

const (
	Avalanche Strategy = "avalanche" // highest rate first
	Snowball  Strategy = "snowball"  // smallest balance first
)

// PayoffResult summarizes a payoff simulation. Converged is false when
// the safety cap was hit; InterestPaid and Months then hold the partial
// totals rather than being discarded.
type PayoffResult struct {
	InterestPaid float64 `json:"interest"`
	Months       int     `json:"months"`
	Converged    bool    `json:"converged"`
}

// Comparison holds the avalanche-vs-snowball outcome.
type Comparison struct {
	Avalanche     PayoffResult `json:"avalanche"`
	Snowball      PayoffResult `json:"snowball"`
	DeltaInterest float64      `json:"delta_interest"`
}

// Savings is the outcome of a refinance evaluation. InterestSaved can
// be negative when refinancing is unfavorable; that is a valid answer.
type Savings struct {
	InterestSaved float64 `json:"interest_saved"`
	Fees          float64 `json:"fees"`
}

// BiweeklyResult estimates the effect of switching to bi-weekly
// half-payments (13 full payments per year instead of 12).
type BiweeklyResult struct {
	MonthsEarlier int     `json:"months_earlier"`
	InterestSaved float64 `json:"interest_saved"`
}
