package report

import (
	"github.com/asbhive/directory/api/internal/entity"
	"github.com/asbhive/directory/api/internal/service/search"
)

const chartLabelLimit = 15

// SectorPoint is one bar of the sector distribution chart.
type SectorPoint struct {
	Sector string `json:"sector"`
	Count  int    `json:"count"`
}

// ChartSuggestion describes how the distribution should be drawn.
type ChartSuggestion struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Chart is the payload for the sector distribution visualisation.
type Chart struct {
	SectorDistribution []SectorPoint   `json:"sectorDistribution"`
	ChartSuggestion    ChartSuggestion `json:"chartSuggestion"`
}

// ChartData builds the sector distribution chart, largest sector first.
func ChartData(records []entity.Company) Chart {
	buckets := search.SectorBuckets(records)
	points := make([]SectorPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, SectorPoint{Sector: chartLabel(b.Sector), Count: b.Count})
	}
	return Chart{
		SectorDistribution: points,
		ChartSuggestion: ChartSuggestion{
			Type:        "bar",
			Title:       "Sector Distribution",
			Description: "Distribution of social enterprises by sector",
		},
	}
}

func chartLabel(sector string) string {
	runes := []rune(sector)
	if len(runes) > chartLabelLimit {
		return string(runes[:chartLabelLimit]) + "..."
	}
	return sector
}
