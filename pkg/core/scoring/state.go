package scoring

// State is the discrete label attached to a score.
type State string

const (
	StateGood    State = "good"
	StateStable  State = "stable"
	StateCaution State = "caution"
	StateBad     State = "bad"
)

// MapState maps a metric value to its state using metric-specific
// thresholds. Named metrics take their value on the metric's own scale
// (efficiency and growth_index 0-100, ar_days in days); anything else
// is treated as a normalized 0-1 score.
func MapState(metric string, value float64) State {
	switch metric {
	case "efficiency":
		switch {
		case value >= 70:
			return StateGood
		case value >= 60:
			return StateCaution
		default:
			return StateBad
		}
	case "growth_index":
		switch {
		case value >= 80:
			return StateGood
		case value >= 60:
			return StateCaution
		default:
			return StateBad
		}
	case "ar_days":
		switch {
		case value <= 32:
			return StateGood
		case value <= 40:
			return StateCaution
		default:
			return StateBad
		}
	}
	switch {
	case value >= 0.75:
		return StateGood
	case value >= 0.4:
		return StateStable
	default:
		return StateCaution
	}
}
