package models

import (
	"strings"
	"time"
)

// NormalizeComplaint converts a wire complaint into a fully populated record.
// Missing category becomes DefaultCategory and missing status becomes
// StatusPending. An unrecognized status label is kept as-is so it is never
// miscounted; the status model treats it as Pending.
func NormalizeComplaint(item ComplaintItem) Complaint {
	c := Complaint{
		ID:          item.ID,
		Title:       deref(item.Title),
		Description: deref(item.Description),
		Category:    strings.TrimSpace(deref(item.Category)),
		Location:    strings.TrimSpace(deref(item.Location)),
		Status:      Status(strings.TrimSpace(deref(item.Status))),
		User:        item.User,
	}
	if c.Category == "" {
		c.Category = DefaultCategory
	}
	if c.Status == "" {
		c.Status = StatusPending
	}
	if len(item.Photos) > 0 {
		c.Photos = append([]string(nil), item.Photos...)
	}
	if item.CreatedAt != nil {
		if t, err := time.Parse(time.RFC3339, *item.CreatedAt); err == nil {
			c.CreatedAt = t
		}
	}
	return c
}

// NormalizeComplaints normalizes a list, preserving order.
func NormalizeComplaints(items []ComplaintItem) []Complaint {
	out := make([]Complaint, 0, len(items))
	for _, item := range items {
		out = append(out, NormalizeComplaint(item))
	}
	return out
}

// NormalizeLeaderboard converts wire leaderboard items, treating a missing
// total as zero. Order is preserved.
func NormalizeLeaderboard(items []LeaderboardItem) []LeaderboardEntry {
	out := make([]LeaderboardEntry, 0, len(items))
	for _, item := range items {
		e := LeaderboardEntry{
			UserID:        item.ID,
			Name:          item.Name,
			TotalResolved: item.TotalResolved,
		}
		if item.TotalComplaints != nil {
			e.TotalComplaints = *item.TotalComplaints
		}
		out = append(out, e)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
