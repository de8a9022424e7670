package events

import (
	"fmt"
	"strings"

	"github.com/leadpilot-inc/lead-engine/pkg/cache"
	"github.com/leadpilot-inc/lead-engine/pkg/models"
)

// Dependencies maps each mutating table to the cache key prefixes its changes
// invalidate. Keeping this as one table, validated at startup, replaces the
// scattered per-call-site invalidation lists the dashboard grew out of.
type Dependencies map[string][]string

// DefaultDependencies returns the invalidation table for the lead store.
func DefaultDependencies() Dependencies {
	return Dependencies{
		models.TableIncomingLeads: {
			cache.KeyLeadsWithQualification,
			cache.KeyDashboardKPIs,
			cache.KeyLeadVolumePrefix,
			cache.KeyLeadSourcePerformance,
			cache.KeyLeadCategories,
		},
		models.TableQualificationData: {
			cache.KeyLeadsWithQualification,
			cache.KeyDashboardKPIs,
			cache.KeyLeadSourcePerformance,
			cache.KeyLeadCategories,
		},
		models.TableCallLogsActivity: {
			cache.KeyDashboardKPIs,
			cache.KeyConversations,
		},
		models.TableAppointmentDetails: {
			cache.KeyAppointments,
		},
		models.TableFollowUp: {},
	}
}

// SubscribedTables is the set of tables the change stream covers.
func SubscribedTables() []string {
	return []string{
		models.TableIncomingLeads,
		models.TableQualificationData,
		models.TableCallLogsActivity,
		models.TableAppointmentDetails,
		models.TableFollowUp,
	}
}

// Validate checks the table for completeness at startup: every subscribed
// table must have an entry, and every referenced prefix must be a known cache
// key prefix.
func (d Dependencies) Validate(tables, knownPrefixes []string) error {
	known := make(map[string]struct{}, len(knownPrefixes))
	for _, p := range knownPrefixes {
		known[p] = struct{}{}
	}

	for _, table := range tables {
		prefixes, ok := d[table]
		if !ok {
			return fmt.Errorf("no invalidation entry for table %q", table)
		}
		for _, prefix := range prefixes {
			if _, ok := known[prefix]; !ok {
				return fmt.Errorf("table %q references unknown cache key prefix %q", table, prefix)
			}
		}
	}

	for table := range d {
		if !contains(tables, table) {
			return fmt.Errorf("invalidation entry for unsubscribed table %q", table)
		}
	}

	return nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// PrefixesFor returns the invalidation targets for a table, nil when none.
// The CSV import path uses this too, so a direct write invalidates exactly
// what a change-stream insert for the same table would.
func (d Dependencies) PrefixesFor(table string) []string {
	return d[strings.TrimSpace(table)]
}
