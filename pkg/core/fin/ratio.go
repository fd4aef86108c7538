package fin

import "encoding/json"

// Ratio is a tagged ratio result: either a concrete value or Undefined.
// Undefined means the denominator was zero or negative (no debt service,
// no income), which is a legitimate business state and distinct from a
// real zero. It marshals to a JSON number, or null when undefined.
type Ratio struct {
	value   float64
	defined bool
}

// RatioValue wraps a known ratio value.
func RatioValue(v float64) Ratio {
	return Ratio{value: v, defined: true}
}

// UndefinedRatio is the tagged "no meaningful value" state.
func UndefinedRatio() Ratio {
	return Ratio{}
}

// RatioOf divides num by den, returning Undefined when den <= 0.
func RatioOf(num, den float64) Ratio {
	if den <= 0 {
		return UndefinedRatio()
	}
	return RatioValue(num / den)
}

// Float returns the value and whether it is defined.
func (r Ratio) Float() (float64, bool) {
	return r.value, r.defined
}

// Defined reports whether the ratio holds a value.
func (r Ratio) Defined() bool {
	return r.defined
}

// Or returns the value, or fallback when undefined.
func (r Ratio) Or(fallback float64) float64 {
	if !r.defined {
		return fallback
	}
	return r.value
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.defined {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = UndefinedRatio()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = RatioValue(v)
	return nil
}

// UnboundedRunwayMonths is the documented sentinel for "cash never runs
// out" on the wire. Bounded runways are never reported above it.
const UnboundedRunwayMonths = 999.0

// Runway is cash runway as a tagged value: Bounded(months) or Unbounded.
// Months stays populated (capped at the sentinel) so dashboard payloads
// remain numeric.
type Runway struct {
	Months    float64 `json:"months"`
	Unbounded bool    `json:"unbounded"`
}

// NewRunway derives runway from cash on hand and monthly burn.
// A non-positive burn means the company is not consuming cash, which is
// Unbounded rather than a division result.
func NewRunway(cash, burn float64) Runway {
	if burn <= 0 {
		return Runway{Months: UnboundedRunwayMonths, Unbounded: true}
	}
	months := cash / burn
	if months > UnboundedRunwayMonths {
		months = UnboundedRunwayMonths
	}
	return Runway{Months: months}
}
