package models

// Canonical lead category buckets, in fixed display order.
const (
	CategoryHot  = "Hot"
	CategoryWarm = "Warm"
	CategoryCold = "Cold"
	CategorySpam = "Spam"
)

// DateBucket holds the lead volume for one calendar day. Every day in a
// resolved range gets exactly one bucket, zero-valued when no leads arrived.
type DateBucket struct {
	Date    string         `json:"date"` // short display label, e.g. "Jan 5"
	Leads   int            `json:"leads"`
	Sources map[string]int `json:"sources"`
}

// CategoryCount is one (category, count) pair from the category classifier.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// SourcePerformance aggregates qualification outcomes per acquisition source.
type SourcePerformance struct {
	Source    string `json:"source"`
	Leads     int    `json:"leads"`
	Qualified int    `json:"qualified"`
	Rate      int    `json:"rate"` // round(qualified/leads*100), 0 when leads==0
}

// DashboardKPIs is the set of scalar dashboard metrics. Each value is computed
// by an independent query; the combined result is an approximation, not a
// consistent snapshot.
type DashboardKPIs struct {
	AvgResponseTime   int `json:"avgResponseTime"` // mean call duration, seconds
	ActiveCallsCount  int `json:"activeCallsCount"`
	QualificationRate int `json:"qualificationRate"` // percent
	ConversionRate    int `json:"conversionRate"`    // percent
	TotalLeads        int `json:"totalLeads"`
	QualifiedLeads    int `json:"qualifiedLeads"`
}
