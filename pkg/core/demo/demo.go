// Package demo serves the seeded demo company. The fixture is an
// embedded hjson document so it stays readable and commentable while
// parsing into the same structs live data uses.
package demo

import (
	_ "embed"
	"fmt"
	"sync"

	"lightsignal/pkg/core/debt"
	"lightsignal/pkg/core/insights"
	"lightsignal/pkg/core/scenario"
	"lightsignal/pkg/core/utils"
)

//go:embed fixtures/company.hjson
var companyFixture string

// Fixture is the complete seeded company state.
type Fixture struct {
	Profile           insights.Profile         `json:"profile"`
	Series            []scenario.MonthlyRecord `json:"series"`
	Accounts          []debt.Account           `json:"accounts"`
	MarketRates       debt.MarketRates         `json:"market_rates"`
	OperatingCashFlow float64                  `json:"operating_cash_flow"`
	MonthlyNetIncome  float64                  `json:"monthly_net_income"`
}

var (
	parseOnce sync.Once
	parsed    Fixture
	parseErr  error
)

// Load returns the fixture for a company id. Only "demo" is seeded;
// any other id reports false so callers fall through to the store.
func Load(companyID string) (*Fixture, bool) {
	if companyID != "demo" {
		return nil, false
	}
	f, err := fixture()
	if err != nil {
		return nil, false
	}
	return f, true
}

// Baseline returns the demo monthly series as a scenario baseline.
func Baseline() (scenario.Baseline, error) {
	f, err := fixture()
	if err != nil {
		return scenario.Baseline{}, err
	}
	return scenario.Baseline{Series: f.Series}, nil
}

func fixture() (*Fixture, error) {
	parseOnce.Do(func() {
		var f Fixture
		if err := utils.ParseHJSONToStruct(companyFixture, &f); err != nil {
			parseErr = fmt.Errorf("failed to parse demo fixture: %w", err)
			return
		}
		parsed = f
	})
	if parseErr != nil {
		return nil, parseErr
	}
	// Copy so callers cannot mutate the shared fixture slices in place.
	f := parsed
	f.Series = append([]scenario.MonthlyRecord(nil), parsed.Series...)
	f.Accounts = append([]debt.Account(nil), parsed.Accounts...)
	return &f, nil
}
