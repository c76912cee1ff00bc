package search

import (
	"math"
	"sort"
	"strings"

	"github.com/asbhive/directory/api/internal/entity"
	"github.com/asbhive/directory/api/internal/service/scoring"
)

// Match returns the records whose name, sector or description contains any query term,
// case-insensitively and in input order. A blank query returns records unchanged.
func Match(query string, records []entity.Company) []entity.Company {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return records
	}

	matched := make([]entity.Company, 0, len(records))
	for _, c := range records {
		haystack := strings.ToLower(c.Name + " " + c.Sector + " " + c.Description)
		for _, term := range terms {
			if strings.Contains(haystack, term) {
				matched = append(matched, c)
				break
			}
		}
	}
	return matched
}

// Bucket counts records per sector. Blank sectors are counted under entity.UncategorizedSector.
func Bucket(records []entity.Company) map[string]int {
	counts := make(map[string]int)
	for _, c := range records {
		counts[c.SectorKey()]++
	}
	return counts
}

// SectorBuckets aggregates records by sector, largest first, with ties broken by name.
func SectorBuckets(records []entity.Company) []entity.SectorBucket {
	if len(records) == 0 {
		return []entity.SectorBucket{}
	}

	grouped := make(map[string][]entity.Company)
	for _, c := range records {
		key := c.SectorKey()
		grouped[key] = append(grouped[key], c)
	}

	total := float64(len(records))
	buckets := make([]entity.SectorBucket, 0, len(grouped))
	for sector, members := range grouped {
		buckets = append(buckets, entity.SectorBucket{
			Sector:           sector,
			Count:            len(members),
			Percentage:       math.Round(float64(len(members))/total*1000) / 10,
			FundingReadiness: scoring.MeanTier(members),
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Sector < buckets[j].Sector
	})
	return buckets
}
