package client

import (
	"context"

	"civictrack/models"
	"civictrack/service"

	"golang.org/x/sync/errgroup"
)

// Part is one independently loaded piece of an overview
type Part[T any] struct {
	Value T
	Err   error
}

func load[T any](g *errgroup.Group, dst *Part[T], fn func() (T, error)) {
	g.Go(func() error {
		dst.Value, dst.Err = fn()
		return nil
	})
}

// CitizenOverview is everything the citizen dashboard and profile show
type CitizenOverview struct {
	Profile     Part[*models.Profile]
	Summary     Part[*models.DashboardSummary]
	Complaints  Part[[]models.Complaint]
	Leaderboard Part[[]models.LeaderboardEntry]
}

// LoadCitizenOverview issues the citizen reads concurrently and returns once
// all have finished. A failed read does not cancel the others.
func (c *Client) LoadCitizenOverview(ctx context.Context, sess *Session) *CitizenOverview {
	api := c.Citizen(sess)
	o := &CitizenOverview{}
	var g errgroup.Group
	load(&g, &o.Profile, func() (*models.Profile, error) { return c.Profile(ctx, sess) })
	load(&g, &o.Summary, func() (*models.DashboardSummary, error) { return api.Dashboard(ctx) })
	load(&g, &o.Complaints, func() ([]models.Complaint, error) { return api.Complaints(ctx) })
	load(&g, &o.Leaderboard, func() ([]models.LeaderboardEntry, error) { return api.Leaderboard(ctx) })
	_ = g.Wait()
	return o
}

// ViewInput assembles the presentation input from whatever loaded.
// A missing server summary makes the view derive its KPIs.
func (o *CitizenOverview) ViewInput(userID string) service.ViewInput {
	if userID == "" && o.Profile.Err == nil && o.Profile.Value != nil {
		userID = o.Profile.Value.ID
	}
	return service.ViewInput{
		Role:        models.RoleCitizen,
		UserID:      userID,
		Summary:     o.Summary.Value,
		Complaints:  o.Complaints.Value,
		Leaderboard: o.Leaderboard.Value,
	}
}

// GovernmentOverview is everything the government dashboard shows
type GovernmentOverview struct {
	Profile    Part[*models.Profile]
	Dashboard  Part[*models.GovernmentDashboard]
	Complaints Part[[]models.Complaint]
}

// LoadGovernmentOverview issues the government reads concurrently and
// returns once all have finished.
func (c *Client) LoadGovernmentOverview(ctx context.Context, sess *Session) *GovernmentOverview {
	api := c.Government(sess)
	o := &GovernmentOverview{}
	var g errgroup.Group
	load(&g, &o.Profile, func() (*models.Profile, error) { return c.Profile(ctx, sess) })
	load(&g, &o.Dashboard, func() (*models.GovernmentDashboard, error) { return api.Dashboard(ctx) })
	load(&g, &o.Complaints, func() ([]models.Complaint, error) { return api.Complaints(ctx) })
	_ = g.Wait()
	return o
}

// ViewInput assembles the presentation input for the government view
func (o *GovernmentOverview) ViewInput() service.ViewInput {
	return service.ViewInput{
		Role:       models.RoleGovernment,
		Complaints: o.Complaints.Value,
	}
}
