package demo

import (
	"testing"
)

func TestLoadDemo(t *testing.T) {
	f, ok := Load("demo")
	if !ok {
		t.Fatal("demo fixture must load")
	}

	if f.Profile.Name != "Demo HVAC Co." || f.Profile.NAICS != "238220" || f.Profile.Employees != 18 {
		t.Errorf("profile wrong: %+v", f.Profile)
	}

	if len(f.Series) != 12 {
		t.Fatalf("expected 12 months, got %d", len(f.Series))
	}
	first, last := f.Series[0], f.Series[11]
	if first.Month != "2024-07" || first.Revenue != 180000 || first.COGS != 108000 {
		t.Errorf("first month wrong: %+v", first)
	}
	if last.Month != "2025-06" || last.Revenue != 235000 || last.Opex != 60500 {
		t.Errorf("last month wrong: %+v", last)
	}

	if len(f.Accounts) != 3 {
		t.Fatalf("expected 3 debt accounts, got %d", len(f.Accounts))
	}
	card := f.Accounts[2]
	if card.Type != "credit_card" || card.Balance != 20000 || card.Limit != 50000 {
		t.Errorf("credit card account wrong: %+v", card)
	}

	if f.MarketRates.TermRefi != 6.5 {
		t.Errorf("market rates wrong: %+v", f.MarketRates)
	}
}

func TestLoadUnknownCompany(t *testing.T) {
	if _, ok := Load("acme-rooter"); ok {
		t.Error("only the demo company is seeded")
	}
}

func TestLoadCopies(t *testing.T) {
	a, _ := Load("demo")
	a.Series[0].Revenue = -1
	a.Accounts[0].Balance = -1

	b, _ := Load("demo")
	if b.Series[0].Revenue != 180000 || b.Accounts[0].Balance != 120000 {
		t.Error("fixture must not be mutable through a previous load")
	}
}

func TestBaseline(t *testing.T) {
	base, err := Baseline()
	if err != nil {
		t.Fatalf("baseline failed: %v", err)
	}
	if got := base.Latest(); got.Revenue != 235000 {
		t.Errorf("latest month wrong: %+v", got)
	}
}
