package models

import (
	"strings"
	"time"
)

// Status represents a step of the complaint lifecycle
type Status string

const (
	StatusPending    Status = "Pending"
	StatusApproved   Status = "Approved"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
)

// Lifecycle is the fixed, ordered complaint lifecycle.
var Lifecycle = []Status{StatusPending, StatusApproved, StatusInProgress, StatusResolved}

// IsKnown reports whether s is one of the lifecycle statuses.
func (s Status) IsKnown() bool {
	for _, st := range Lifecycle {
		if st == s {
			return true
		}
	}
	return false
}

// ParseStatus returns the lifecycle status matching value exactly.
func ParseStatus(value string) (Status, bool) {
	s := Status(value)
	return s, s.IsKnown()
}

// Role represents who is using the system
type Role string

const (
	RoleCitizen    Role = "citizen"
	RoleGovernment Role = "government"
)

// DefaultCategory is used when a complaint carries no category.
const DefaultCategory = "Other"

// ComplaintCategories is the catalogue offered on the submission form.
var ComplaintCategories = []string{
	"Road & Infrastructure",
	"Water Supply",
	"Electricity",
	"Sanitation",
	"Traffic",
	"Public Safety",
	"Environment",
	"Animal Control",
	"Government Services",
	DefaultCategory,
}

// UserSummary is the submitting user as shown to government officials
type UserSummary struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Complaint is a fully normalized complaint record.
// Category and Status are always populated; see NormalizeComplaint.
type Complaint struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Location    string       `json:"location,omitempty"`
	Status      Status       `json:"status"`
	Photos      []string     `json:"photos,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	User        *UserSummary `json:"user,omitempty"`
}

// HasLocation reports whether the complaint has a non-blank location.
func (c Complaint) HasLocation() bool {
	return strings.TrimSpace(c.Location) != ""
}

// DashboardSummary holds the server-side KPIs for one citizen
type DashboardSummary struct {
	TotalComplaints int `json:"totalComplaints"`
	Resolved        int `json:"resolved"`
	InProgress      int `json:"inProgress"`
	Points          int `json:"points"`
}

// LeaderboardEntry is one citizen's ranking record
type LeaderboardEntry struct {
	UserID          string `json:"_id,omitempty"`
	Name            string `json:"name"`
	TotalResolved   int    `json:"totalResolved"`
	TotalComplaints int    `json:"totalComplaints"`
}

// CategoryCount is a derived (category, occurrences) pair
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Profile is the authenticated user's profile
type Profile struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Address   string     `json:"address,omitempty"`
	Role      Role       `json:"role,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// BudgetDepartment is one department's share of the budget
type BudgetDepartment struct {
	Dept  string  `json:"dept"`
	Value float64 `json:"value"`
}

// Budget is the government dashboard budget block
type Budget struct {
	Months         []string           `json:"months"`
	AllocatedData  []float64          `json:"allocatedData"`
	SpentData      []float64          `json:"spentData"`
	TotalAllocated float64            `json:"totalAllocated"`
	TotalSpent     float64            `json:"totalSpent"`
	ByDepartment   []BudgetDepartment `json:"byDepartment"`
}

// Engagement is the government dashboard citizen engagement block
type Engagement struct {
	TotalCitizens     int      `json:"totalCitizens"`
	TotalComplaints   int      `json:"totalComplaints"`
	ComplaintsByMonth []int    `json:"complaintsByMonth"`
	Months            []string `json:"months"`
}

// GovernmentDashboard is returned by GET /api/government/dashboard
type GovernmentDashboard struct {
	Budget     Budget     `json:"budget"`
	Engagement Engagement `json:"engagement"`
}
