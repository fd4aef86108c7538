package benchmark

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Row is one metric row lifted from a published statistics table.
type Row struct {
	Metric string
	Median float64
	P75    float64
}

// IngestHTML parses an industry-statistics page whose first table lists
// metric, median, and 75th-percentile columns. Header rows and rows
// with unparseable numbers are skipped; an empty result is an error.
func IngestHTML(r io.Reader) ([]Row, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse benchmark html: %w", err)
	}

	var rows []Row
	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 3 {
			return
		}
		metric := strings.TrimSpace(cells.Eq(0).Text())
		median, err1 := parseNumeric(cells.Eq(1).Text())
		p75, err2 := parseNumeric(cells.Eq(2).Text())
		if metric == "" || err1 != nil || err2 != nil {
			return
		}
		rows = append(rows, Row{Metric: metric, Median: median, P75: p75})
	})

	if len(rows) == 0 {
		return nil, fmt.Errorf("no benchmark rows found in document")
	}
	return rows, nil
}

// StatsFromRows folds ingested rows into a Stats block. Metric names
// are normalized; unrecognized rows are ignored. At least one
// recognized metric is required.
func StatsFromRows(rows []Row) (Stats, error) {
	var st Stats
	matched := 0
	for _, row := range rows {
		switch normalizeMetric(row.Metric) {
		case "net_margin_pct":
			st.MarginMedian, st.MarginP75 = row.Median, row.P75
			matched++
		case "revenue_per_employee":
			st.RPEMedian, st.RPEP75 = row.Median, row.P75
			matched++
		case "runway_months":
			st.RunwayMedian, st.RunwayP75 = row.Median, row.P75
			matched++
		}
	}
	if matched == 0 {
		return Stats{}, fmt.Errorf("no recognized metrics among %d rows", len(rows))
	}
	return st, nil
}

func normalizeMetric(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "_")
	switch key {
	case "net_margin", "net_margin_pct", "net_margin_%", "margin":
		return "net_margin_pct"
	case "revenue_per_employee", "revenue/employee", "rpe":
		return "revenue_per_employee"
	case "runway", "runway_months", "cash_runway":
		return "runway_months"
	}
	return key
}

// parseNumeric strips currency and percent decoration before parsing.
func parseNumeric(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.NewReplacer("$", "", ",", "", "%", "").Replace(cleaned)
	return strconv.ParseFloat(cleaned, 64)
}
