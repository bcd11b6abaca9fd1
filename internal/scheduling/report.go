package scheduling

import (
	"github.com/google/uuid"
)

// AggregateReport partitions the given records by status and, within each
// partition, counts how often each service name occurs across all linked
// services. Every known status gets a bucket keyed by its label; a status
// with no matching records yields an empty list. Counts are emitted in
// first-encountered-name order, not sorted.
func AggregateReport(records []ReportRecord, statuses []StatusName) Report {
	byStatus := make(map[uuid.UUID][]ReportRecord, len(statuses))
	for _, rec := range records {
		byStatus[rec.StatusID] = append(byStatus[rec.StatusID], rec)
	}

	report := make(Report, len(statuses))
	for _, status := range statuses {
		report[status.Name] = countServiceNames(byStatus[status.ID])
	}
	return report
}

func countServiceNames(records []ReportRecord) []ServiceCount {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, rec := range records {
		for _, name := range rec.ServiceNames {
			if _, seen := counts[name]; !seen {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	result := make([]ServiceCount, 0, len(order))
	for _, name := range order {
		result = append(result, ServiceCount{Name: name, Count: counts[name]})
	}
	return result
}
