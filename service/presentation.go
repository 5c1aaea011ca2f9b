package service

import "civictrack/models"

// ProfileCategoryLimit is how many categories the citizen profile shows.
const ProfileCategoryLimit = 6

// Tone is the colour family used to render a status chip
type Tone string

const (
	ToneSuccess  Tone = "success"
	ToneInfo     Tone = "info"
	ToneProgress Tone = "progress"
	ToneWarning  Tone = "warning"
	ToneNeutral  Tone = "neutral"
)

// ToneFor returns the chip tone for a status.
func ToneFor(status models.Status) Tone {
	switch status {
	case models.StatusResolved:
		return ToneSuccess
	case models.StatusApproved:
		return ToneInfo
	case models.StatusInProgress:
		return ToneProgress
	case models.StatusPending:
		return ToneWarning
	default:
		return ToneNeutral
	}
}

// ViewInput is everything a dashboard view is derived from
type ViewInput struct {
	Role        models.Role
	UserID      string
	Summary     *models.DashboardSummary
	Complaints  []models.Complaint
	Leaderboard []models.LeaderboardEntry
}

// ComplaintRow is one complaint as rendered in a list
type ComplaintRow struct {
	models.Complaint
	Tone    Tone            `json:"tone"`
	Stages  []StageView     `json:"stages"`
	Actions []models.Status `json:"actions,omitempty"`
}

// View is the role-parameterized presentation model shared by the citizen
// and government front ends.
type View struct {
	Role       models.Role            `json:"role"`
	KPIs       KPIs                   `json:"kpis"`
	Categories []models.CategoryCount `json:"categories"`
	Rank       int                    `json:"rank,omitempty"`
	RankKnown  bool                   `json:"rankKnown"`
	Rows       []ComplaintRow         `json:"rows"`
}

// BuildView derives the presentation model for a role. Citizens see their
// rank and top categories; government officials see the legal next actions
// for every complaint.
func BuildView(in ViewInput) View {
	v := View{
		Role:       in.Role,
		KPIs:       DeriveKPIs(in.Complaints, in.Summary),
		Categories: TallyCategories(in.Complaints),
		Rows:       make([]ComplaintRow, 0, len(in.Complaints)),
	}
	if in.Role == models.RoleCitizen {
		v.Categories = TopCategories(v.Categories, ProfileCategoryLimit)
		v.Rank, v.RankKnown = RankOf(SortLeaderboard(in.Leaderboard), in.UserID)
	}
	for _, c := range in.Complaints {
		row := ComplaintRow{
			Complaint: c,
			Tone:      ToneFor(c.Status),
			Stages:    TrackStages(c.Status),
		}
		if in.Role == models.RoleGovernment {
			row.Actions = NextTransitions(c.Status)
		} else {
			row.User = nil
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

// MapSummary holds the counters shown above the complaint map
type MapSummary struct {
	Total       int `json:"total"`
	Resolved    int `json:"resolved"`
	Active      int `json:"active"`
	WithAddress int `json:"withAddress"`
}

// SummarizeForMap computes the map header counters.
func SummarizeForMap(complaints []models.Complaint) MapSummary {
	s := MapSummary{
		Total:    len(complaints),
		Resolved: CountResolved(complaints),
		Active:   CountActive(complaints),
	}
	for _, c := range complaints {
		if c.HasLocation() {
			s.WithAddress++
		}
	}
	return s
}
