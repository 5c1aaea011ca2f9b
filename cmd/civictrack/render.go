package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"civictrack/models"
	"civictrack/service"

	"github.com/dustin/go-humanize"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func submitted(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

func renderKPIs(w io.Writer, k service.KPIs) {
	fmt.Fprintf(w, "Complaints: %d  Resolved: %d  In progress: %d", k.Total, k.Resolved, k.InProgress)
	if k.Source == service.KPISourceServer {
		fmt.Fprintf(w, "  Points: %d", k.Points)
	}
	fmt.Fprintln(w)
}

func renderCategories(w io.Writer, title string, counts []models.CategoryCount) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	tw := newTable(w)
	for _, c := range counts {
		fmt.Fprintf(tw, "  %s\t%d\n", c.Category, c.Count)
	}
	tw.Flush()
}

// renderCitizenView is the citizen adapter over the shared view model
func renderCitizenView(w io.Writer, v service.View) {
	renderKPIs(w, v.KPIs)
	if v.RankKnown {
		fmt.Fprintf(w, "Rank: #%d (%s)\n", v.Rank, service.BadgeFor(v.Rank))
	} else {
		fmt.Fprintln(w, "Rank: not ranked yet")
	}
	renderCategories(w, "Top categories", v.Categories)

	fmt.Fprintln(w)
	renderRows(w, v)
}

// renderGovernmentView is the government adapter over the shared view model
func renderGovernmentView(w io.Writer, v service.View, dash *models.GovernmentDashboard) {
	renderKPIs(w, v.KPIs)
	if dash != nil {
		fmt.Fprintf(w, "Citizens: %d\n", dash.Engagement.TotalCitizens)
		if len(dash.Engagement.Months) > 0 {
			parts := make([]string, 0, len(dash.Engagement.Months))
			for i, m := range dash.Engagement.Months {
				if i < len(dash.Engagement.ComplaintsByMonth) {
					parts = append(parts, fmt.Sprintf("%s %d", m, dash.Engagement.ComplaintsByMonth[i]))
				}
			}
			fmt.Fprintf(w, "By month: %s\n", strings.Join(parts, ", "))
		}
	}
	renderCategories(w, "Categories", v.Categories)

	fmt.Fprintln(w)
	renderRows(w, v)
}

// renderRows prints the complaint table; officials also see the submitter
// and the allowed next statuses.
func renderRows(w io.Writer, v service.View) {
	if len(v.Rows) == 0 {
		if v.Role == models.RoleCitizen {
			fmt.Fprintln(w, "No complaints yet. Submit one with 'civictrack submit'.")
		} else {
			fmt.Fprintln(w, "No complaints.")
		}
		return
	}
	tw := newTable(w)
	if v.Role == models.RoleGovernment {
		fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSTATUS\tSUBMITTER\tSUBMITTED\tNEXT")
	} else {
		fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSTATUS\tSUBMITTED")
	}
	for _, r := range v.Rows {
		if v.Role != models.RoleGovernment {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Title, r.Category, r.Status, submitted(r.CreatedAt))
			continue
		}
		submitter := "-"
		if r.User != nil && r.User.Name != "" {
			submitter = r.User.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Title, r.Category, r.Status, submitter, submitted(r.CreatedAt), joinStatuses(r.Actions))
	}
	tw.Flush()
}

func joinStatuses(statuses []models.Status) string {
	if len(statuses) == 0 {
		return "-"
	}
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, " | ")
}

func stageMarker(s service.StageState) string {
	switch s {
	case service.StageDone:
		return "[x]"
	case service.StageActive:
		return "[>]"
	default:
		return "[ ]"
	}
}

func renderComplaint(w io.Writer, c models.Complaint, photoURL func(string) string) {
	fmt.Fprintf(w, "%s\n", c.Title)
	fmt.Fprintf(w, "ID:        %s\n", c.ID)
	fmt.Fprintf(w, "Category:  %s\n", c.Category)
	if c.HasLocation() {
		fmt.Fprintf(w, "Location:  %s\n", c.Location)
	}
	fmt.Fprintf(w, "Submitted: %s\n", submitted(c.CreatedAt))
	if c.User != nil && c.User.Name != "" {
		fmt.Fprintf(w, "By:        %s <%s>\n", c.User.Name, c.User.Email)
	}
	if c.Description != "" {
		fmt.Fprintf(w, "\n%s\n", c.Description)
	}
	fmt.Fprintln(w)
	for _, st := range service.TrackStages(c.Status) {
		fmt.Fprintf(w, "%s %d. %-12s %s\n", stageMarker(st.State), st.Step, st.Stage, st.Label)
	}
	for _, p := range c.Photos {
		fmt.Fprintf(w, "Photo: %s\n", photoURL(p))
	}
}

func renderLeaderboard(w io.Writer, ranked []service.RankedEntry, userID string) {
	if len(ranked) == 0 {
		fmt.Fprintln(w, "Nobody is on the leaderboard yet.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "RANK\t\tNAME\tRESOLVED\tTOTAL")
	for _, e := range ranked {
		marker := ""
		if userID != "" && e.UserID == userID {
			marker = "  <- you"
		}
		badge := ""
		if e.Badge != service.BadgeNumeric {
			badge = string(e.Badge)
		}
		fmt.Fprintf(tw, "#%d\t%s\t%s (%s)\t%d\t%d%s\n", e.Rank, badge, e.Name, e.Initials, e.TotalResolved, e.TotalComplaints, marker)
	}
	tw.Flush()
}
