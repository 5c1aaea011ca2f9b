package main

import (
	"context"
	"fmt"
	"strings"

	"civictrack/client"
	"civictrack/models"
	"civictrack/service"

	"github.com/spf13/cobra"
)

func (a *app) govCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gov",
		Short: "Government official commands",
	}
	cmd.AddCommand(a.govDashboardCmd(), a.govAdvanceCmd())
	return cmd
}

func (a *app) govDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show engagement figures and every complaint",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session(models.RoleGovernment)
			if err != nil {
				return err
			}
			return a.governmentDashboard(cmd.Context(), sess)
		},
	}
}

func (a *app) governmentDashboard(ctx context.Context, sess *client.Session) error {
	o := a.client.LoadGovernmentOverview(ctx, sess)
	if o.Complaints.Err != nil {
		return describe(o.Complaints.Err)
	}
	warnPart("dashboard", o.Dashboard.Err)
	warnPart("profile", o.Profile.Err)

	view := service.BuildView(o.ViewInput())
	if a.jsonOut {
		return a.printJSON(struct {
			service.View
			Dashboard *models.GovernmentDashboard `json:"dashboard,omitempty"`
		}{view, o.Dashboard.Value})
	}
	if o.Profile.Value != nil {
		fmt.Fprintf(a.out, "Signed in as %s (government)\n\n", o.Profile.Value.Name)
	}
	renderGovernmentView(a.out, view, o.Dashboard.Value)
	return nil
}

func (a *app) govAdvanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advance <complaint-id> <status>",
		Short: "Move a complaint to its next status",
		Long: `Move a complaint forward in its lifecycle.

Allowed moves: Pending → Approved, Approved → In Progress,
Approved → Resolved, In Progress → Resolved.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session(models.RoleGovernment)
			if err != nil {
				return err
			}
			next, ok := parseStatusArg(args[1])
			if !ok {
				return fmt.Errorf("unknown status %q (want one of %s)", args[1], joinStatuses(models.Lifecycle))
			}

			api := a.client.Government(sess)
			current, err := api.Complaint(cmd.Context(), args[0])
			if err != nil {
				return describe(err)
			}
			updated, err := api.Advance(cmd.Context(), *current, next)
			if err != nil {
				return describe(err)
			}
			if a.jsonOut {
				return a.printJSON(updated)
			}
			fmt.Fprintf(a.out, "%s: %s → %s\n", updated.ID, current.Status, updated.Status)
			return nil
		},
	}
}

// parseStatusArg accepts lifecycle statuses case-insensitively, with
// "in-progress" and "in_progress" as spellings of "In Progress"
func parseStatusArg(arg string) (models.Status, bool) {
	norm := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(arg))
	for _, s := range models.Lifecycle {
		if strings.EqualFold(string(s), norm) {
			return s, true
		}
	}
	return "", false
}
