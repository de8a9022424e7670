package cache

// Canonical cache keys for the aggregator results. These double as the
// invalidation targets in the events dependency table; volume is keyed per
// range selector and invalidated by prefix.
const (
	KeyLeadsWithQualification = "leads-with-qualification"
	KeyDashboardKPIs          = "dashboard-kpis"
	KeyLeadVolumePrefix       = "lead-volume-by-date"
	KeyLeadSourcePerformance  = "lead-source-performance"
	KeyLeadCategories         = "lead-categories"
	KeyConversations          = "conversations"
	KeyAppointments           = "appointments"
)

// VolumeKey returns the cache key for one resolved volume range.
func VolumeKey(rangeSelector string) string {
	return KeyLeadVolumePrefix + ":" + rangeSelector
}

// KnownPrefixes lists every valid invalidation target, used to validate the
// event dependency table at startup.
func KnownPrefixes() []string {
	return []string{
		KeyLeadsWithQualification,
		KeyDashboardKPIs,
		KeyLeadVolumePrefix,
		KeyLeadSourcePerformance,
		KeyLeadCategories,
		KeyConversations,
		KeyAppointments,
	}
}
