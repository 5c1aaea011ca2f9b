package service

import (
	"sort"
	"strings"
	"unicode"

	"civictrack/models"
)

// Badge is the visual marker for a leaderboard rank
type Badge string

const (
	BadgeGold    Badge = "gold"
	BadgeSilver  Badge = "silver"
	BadgeBronze  Badge = "bronze"
	BadgeNumeric Badge = "numeric"
)

// RankedEntry is a leaderboard entry with its display rank
type RankedEntry struct {
	models.LeaderboardEntry
	Rank     int    `json:"rank"`
	Badge    Badge  `json:"badge"`
	Initials string `json:"initials"`
}

// LeaderboardLess orders entries by resolved count, then total complaints,
// both descending.
func LeaderboardLess(a, b models.LeaderboardEntry) bool {
	if a.TotalResolved != b.TotalResolved {
		return a.TotalResolved > b.TotalResolved
	}
	return a.TotalComplaints > b.TotalComplaints
}

// SortLeaderboard returns a ranked copy of entries. Full ties keep input order.
func SortLeaderboard(entries []models.LeaderboardEntry) []models.LeaderboardEntry {
	out := append([]models.LeaderboardEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return LeaderboardLess(out[i], out[j])
	})
	return out
}

// RankOf returns the 1-based rank of userID in an ordered leaderboard.
// The boolean is false when the user is not on the board.
func RankOf(entries []models.LeaderboardEntry, userID string) (int, bool) {
	if userID == "" {
		return 0, false
	}
	for i, e := range entries {
		if e.UserID == userID {
			return i + 1, true
		}
	}
	return 0, false
}

// BadgeFor returns the badge shown next to rank.
func BadgeFor(rank int) Badge {
	switch rank {
	case 1:
		return BadgeGold
	case 2:
		return BadgeSilver
	case 3:
		return BadgeBronze
	default:
		return BadgeNumeric
	}
}

// RankEntries attaches ranks, badges and initials to an ordered leaderboard.
func RankEntries(entries []models.LeaderboardEntry) []RankedEntry {
	out := make([]RankedEntry, 0, len(entries))
	for i, e := range entries {
		out = append(out, RankedEntry{
			LeaderboardEntry: e,
			Rank:             i + 1,
			Badge:            BadgeFor(i + 1),
			Initials:         Initials(e.Name),
		})
	}
	return out
}

// Initials returns up to two upper-case initials of a display name.
func Initials(name string) string {
	var initials []rune
	for _, word := range strings.Fields(name) {
		initials = append(initials, unicode.ToUpper([]rune(word)[0]))
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}
