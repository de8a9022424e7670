package analytics

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

// SourcePerformance joins leads against qualification outcomes to compute,
// per acquisition source, total leads, qualified leads and a qualification
// rate. A lead counts as qualified when any of its qualification rows has
// status exactly "Qualified". Output is sorted by lead count descending;
// ties keep first-encounter order.
func SourcePerformance(leads []*models.Lead, quals []*models.Qualification) []models.SourcePerformance {
	qualified := make(map[uuid.UUID]struct{})
	for _, q := range quals {
		if q.LeadID != nil && q.IsQualified() {
			qualified[*q.LeadID] = struct{}{}
		}
	}

	index := make(map[string]int)
	stats := make([]models.SourcePerformance, 0)

	for _, lead := range leads {
		source := lead.Source()
		i, ok := index[source]
		if !ok {
			i = len(stats)
			index[source] = i
			stats = append(stats, models.SourcePerformance{Source: source})
		}
		stats[i].Leads++
		if _, ok := qualified[lead.ID]; ok {
			stats[i].Qualified++
		}
	}

	for i := range stats {
		stats[i].Rate = Percentage(stats[i].Qualified, stats[i].Leads)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Leads > stats[j].Leads
	})

	return stats
}

// Percentage returns round(part/total*100), or 0 when total is 0. It is the
// rounding policy shared by source rates and the dashboard rate KPIs.
func Percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
