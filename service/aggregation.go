package service

import (
	"sort"
	"strings"

	"civictrack/models"
)

// KPI sources
const (
	KPISourceServer  = "server"
	KPISourceDerived = "derived"
)

// KPIs are the dashboard headline numbers
type KPIs struct {
	Total      int    `json:"total"`
	Resolved   int    `json:"resolved"`
	InProgress int    `json:"inProgress"`
	Points     int    `json:"points"`
	Source     string `json:"source"`
}

// TallyCategories counts complaints per category, most frequent first.
// Blank categories are counted as models.DefaultCategory. Ties keep the
// order in which categories were first seen. The input is not modified.
func TallyCategories(complaints []models.Complaint) []models.CategoryCount {
	index := make(map[string]int)
	counts := make([]models.CategoryCount, 0)
	for _, c := range complaints {
		cat := strings.TrimSpace(c.Category)
		if cat == "" {
			cat = models.DefaultCategory
		}
		i, ok := index[cat]
		if !ok {
			i = len(counts)
			index[cat] = i
			counts = append(counts, models.CategoryCount{Category: cat})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].Count > counts[b].Count
	})
	return counts
}

// TopCategories returns at most n entries of a tally.
func TopCategories(counts []models.CategoryCount, n int) []models.CategoryCount {
	if n < 0 || len(counts) <= n {
		return counts
	}
	return counts[:n]
}

// DeriveKPIs computes dashboard KPIs. A server summary, when present, wins
// over counts derived from the list.
func DeriveKPIs(complaints []models.Complaint, summary *models.DashboardSummary) KPIs {
	if summary != nil {
		return KPIs{
			Total:      summary.TotalComplaints,
			Resolved:   summary.Resolved,
			InProgress: summary.InProgress,
			Points:     summary.Points,
			Source:     KPISourceServer,
		}
	}
	return KPIs{
		Total:      len(complaints),
		Resolved:   CountResolved(complaints),
		InProgress: CountActive(complaints),
		Source:     KPISourceDerived,
	}
}

// CountResolved counts complaints whose status is Resolved.
func CountResolved(complaints []models.Complaint) int {
	n := 0
	for _, c := range complaints {
		if c.Status == models.StatusResolved {
			n++
		}
	}
	return n
}

// CountActive counts complaints that are Pending or In Progress.
func CountActive(complaints []models.Complaint) int {
	n := 0
	for _, c := range complaints {
		if c.Status == models.StatusPending || c.Status == models.StatusInProgress {
			n++
		}
	}
	return n
}
