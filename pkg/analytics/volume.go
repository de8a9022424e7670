package analytics

import (
	"time"

	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

const dayKeyFormat = "2006-01-02"

// LeadVolumeByDate buckets lead creation instants into per-day counts across
// [start, end]. Every calendar day in range gets exactly one bucket, in
// chronological order, even when no leads arrived that day. Leads are fetched
// unfiltered upstream and filtered here so that bucket completeness never
// depends on what the query returned.
//
// Bucket keys and lead day-keys are both computed in loc; a lead whose local
// day-key misses every bucket is dropped.
func LeadVolumeByDate(leads []*models.Lead, start, end time.Time, loc *time.Location) []models.DateBucket {
	start = start.In(loc)
	end = end.In(loc)

	buckets := make([]models.DateBucket, 0)
	index := make(map[string]int)

	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	for !day.After(end) {
		index[day.Format(dayKeyFormat)] = len(buckets)
		buckets = append(buckets, models.DateBucket{
			Date:    day.Format("Jan 2"),
			Sources: make(map[string]int),
		})
		day = day.AddDate(0, 0, 1)
	}

	for _, lead := range leads {
		if lead.CreatedAt == nil {
			continue
		}
		created := lead.CreatedAt.In(loc)
		if created.Before(start) || created.After(end) {
			continue
		}
		i, ok := index[created.Format(dayKeyFormat)]
		if !ok {
			continue
		}
		buckets[i].Leads++
		buckets[i].Sources[lead.Source()]++
	}

	return buckets
}
