// Package benchmark supplies peer industry statistics keyed by NAICS
// code and scores a company's metrics against them. Sources are
// pluggable: a built-in table, a postgres lookup, or an HTML ingest of
// published industry statistics, optionally wrapped in a TTL cache.
package benchmark

import "math"

// Stats holds the peer distribution anchors for one industry.
type Stats struct {
	MarginMedian float64 `json:"margin_median"`
	MarginP75    float64 `json:"margin_p75"`
	RPEMedian    float64 `json:"rpe_median"`
	RPEP75       float64 `json:"rpe_p75"`
	RunwayMedian float64 `json:"runway_median"`
	RunwayP75    float64 `json:"runway_p75"`
}

// Source answers peer stats for a NAICS code. The bool reports whether
// the source could answer; absence is not an error.
type Source interface {
	PeerStats(naics string) (Stats, bool)
}

// StaticSource serves the built-in benchmark table. Unknown codes fall
// back to the cross-industry default row, so it always answers.
type StaticSource struct {
	table map[string]Stats
}

var defaultStats = Stats{
	MarginMedian: 25.0, MarginP75: 32.0,
	RPEMedian: 110000, RPEP75: 135000,
	RunwayMedian: 4.5, RunwayP75: 7.0,
}

// NewStaticSource builds the built-in table. 238220 is specialty trade
// contractors (plumbing, heating, air conditioning).
func NewStaticSource() *StaticSource {
	return &StaticSource{table: map[string]Stats{
		"238220": {
			MarginMedian: 28.0, MarginP75: 35.0,
			RPEMedian: 125000, RPEP75: 145000,
			RunwayMedian: 5.5, RunwayP75: 8.0,
		},
	}}
}

func (s *StaticSource) PeerStats(naics string) (Stats, bool) {
	if st, ok := s.table[naics]; ok {
		return st, true
	}
	return defaultStats, true
}

// PeerBenchmark scores one company metric against the peer distribution.
type PeerBenchmark struct {
	Metric       string  `json:"metric"`
	CompanyValue float64 `json:"company_value"`
	PeerMedian   float64 `json:"peer_median"`
	PeerP75      float64 `json:"peer_p75"`
	Percentile   float64 `json:"percentile"`
}

// Percentile places a value on the peer distribution using the two
// anchors: linear up to the median (50th), then linear from median to
// p75 (75th), clamped to [0,100]. A non-positive median yields 0.
func Percentile(value, median, p75 float64) float64 {
	if median <= 0 {
		return 0
	}
	var p float64
	switch {
	case value < median:
		p = 50 * (value / median)
	case p75 > median:
		p = 50 + 25*((value-median)/(p75-median))
	default:
		p = 50
	}
	return math.Round(math.Min(math.Max(p, 0), 100)*10) / 10
}

// Compare scores margin and runway against the peers for naics. A nil
// source or an unanswerable code yields nil, never an error.
func Compare(src Source, naics string, marginPct, runwayMonths float64) []PeerBenchmark {
	if src == nil {
		return nil
	}
	stats, ok := src.PeerStats(naics)
	if !ok {
		return nil
	}
	return []PeerBenchmark{
		{
			Metric:       "net_margin_pct",
			CompanyValue: marginPct,
			PeerMedian:   stats.MarginMedian,
			PeerP75:      stats.MarginP75,
			Percentile:   Percentile(marginPct, stats.MarginMedian, stats.MarginP75),
		},
		{
			Metric:       "runway_months",
			CompanyValue: runwayMonths,
			PeerMedian:   stats.RunwayMedian,
			PeerP75:      stats.RunwayP75,
			Percentile:   Percentile(runwayMonths, stats.RunwayMedian, stats.RunwayP75),
		},
	}
}
