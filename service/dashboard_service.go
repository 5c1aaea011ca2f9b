package service

import (
	"time"

	"civictrack/models"
	"civictrack/repository"
)

// Points awarded to citizens
const (
	PointsPerComplaint = 10
	PointsPerResolved  = 20
)

// EngagementMonths is how many calendar months the government dashboard charts.
const EngagementMonths = 6

// DashboardService derives dashboard payloads and the leaderboard from stored complaints
type DashboardService struct {
	complaintRepo *repository.ComplaintRepository
	userRepo      *repository.UserRepository
	now           func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(complaintRepo *repository.ComplaintRepository, userRepo *repository.UserRepository) *DashboardService {
	return &DashboardService{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// CitizenSummary computes a citizen's dashboard KPIs. In-progress counts
// complaints that are Pending or In Progress, matching the client-side view.
func (s *DashboardService) CitizenSummary(userID string) models.DashboardSummary {
	complaints := complaintsOf(s.complaintRepo.GetComplaintsByOwner(userID))
	resolved := CountResolved(complaints)
	return models.DashboardSummary{
		TotalComplaints: len(complaints),
		Resolved:        resolved,
		InProgress:      CountActive(complaints),
		Points:          len(complaints)*PointsPerComplaint + resolved*PointsPerResolved,
	}
}

// Leaderboard ranks every citizen who has submitted at least one complaint
func (s *DashboardService) Leaderboard() []models.LeaderboardEntry {
	totals := make(map[string]*models.LeaderboardEntry)
	for _, rec := range s.complaintRepo.GetAllComplaints() {
		e, ok := totals[rec.OwnerID]
		if !ok {
			e = &models.LeaderboardEntry{UserID: rec.OwnerID}
			totals[rec.OwnerID] = e
		}
		e.TotalComplaints++
		if rec.Complaint.Status == models.StatusResolved {
			e.TotalResolved++
		}
	}

	// Registration order makes full ties deterministic.
	entries := make([]models.LeaderboardEntry, 0, len(totals))
	for _, user := range s.userRepo.ListUsersByRole(models.RoleCitizen) {
		if e, ok := totals[user.ID]; ok {
			e.Name = user.Name
			entries = append(entries, *e)
		}
	}
	return SortLeaderboard(entries)
}

// GovernmentDashboard computes the engagement block over the last
// EngagementMonths calendar months. Budget figures are not tracked by this
// backend and are reported as zero for the same months.
func (s *DashboardService) GovernmentDashboard() models.GovernmentDashboard {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(EngagementMonths - 1), 0)

	months := make([]string, EngagementMonths)
	for i := range months {
		months[i] = start.AddDate(0, i, 0).Format("Jan")
	}

	all := s.complaintRepo.GetAllComplaints()
	byMonth := make([]int, EngagementMonths)
	for _, rec := range all {
		created := rec.Complaint.CreatedAt.UTC()
		if created.Before(start) {
			continue
		}
		i := (created.Year()-start.Year())*12 + int(created.Month()) - int(start.Month())
		if i >= 0 && i < EngagementMonths {
			byMonth[i]++
		}
	}

	return models.GovernmentDashboard{
		Budget: models.Budget{
			Months:        months,
			AllocatedData: make([]float64, EngagementMonths),
			SpentData:     make([]float64, EngagementMonths),
			ByDepartment:  []models.BudgetDepartment{},
		},
		Engagement: models.Engagement{
			TotalCitizens:     len(s.userRepo.ListUsersByRole(models.RoleCitizen)),
			TotalComplaints:   len(all),
			ComplaintsByMonth: byMonth,
			Months:            months,
		},
	}
}

func complaintsOf(recs []repository.ComplaintRecord) []models.Complaint {
	out := make([]models.Complaint, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Complaint)
	}
	return out
}
