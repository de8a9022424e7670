package analytics

import (
	"strings"

	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

// ClassifyLeadType maps a free-text lead_type value to one of the four
// canonical category buckets. Matching is case-insensitive substring with
// first-match-wins precedence; a non-empty value that matches nothing falls
// through to Cold, preserving the upstream dashboard's behavior. The second
// return is false for empty values, which are excluded from all counts.
func ClassifyLeadType(leadType string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(leadType))
	if normalized == "" {
		return "", false
	}

	switch {
	case strings.Contains(normalized, "hot"):
		return models.CategoryHot, true
	case strings.Contains(normalized, "warm"):
		return models.CategoryWarm, true
	case strings.Contains(normalized, "cold"):
		return models.CategoryCold, true
	case strings.Contains(normalized, "spam"), strings.Contains(normalized, "invalid"):
		return models.CategorySpam, true
	}
	return models.CategoryCold, true
}

// CountLeadCategories counts qualification records per category bucket. All
// four buckets are always present, in fixed Hot/Warm/Cold/Spam order, even
// when zero.
func CountLeadCategories(quals []*models.Qualification) []models.CategoryCount {
	counts := map[string]int{
		models.CategoryHot:  0,
		models.CategoryWarm: 0,
		models.CategoryCold: 0,
		models.CategorySpam: 0,
	}

	for _, q := range quals {
		if q.LeadType == nil {
			continue
		}
		if category, ok := ClassifyLeadType(*q.LeadType); ok {
			counts[category]++
		}
	}

	return []models.CategoryCount{
		{Category: models.CategoryHot, Count: counts[models.CategoryHot]},
		{Category: models.CategoryWarm, Count: counts[models.CategoryWarm]},
		{Category: models.CategoryCold, Count: counts[models.CategoryCold]},
		{Category: models.CategorySpam, Count: counts[models.CategorySpam]},
	}
}
