package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"civictrack/client"
	"civictrack/models"
	"civictrack/service"
	"civictrack/utils"

	"github.com/spf13/cobra"
)

// complaintsFor lists the complaints visible to the session's role
func (a *app) complaintsFor(ctx context.Context, sess *client.Session) ([]models.Complaint, error) {
	if sess.Role == models.RoleGovernment {
		return a.client.Government(sess).Complaints(ctx)
	}
	return a.client.Citizen(sess).Complaints(ctx)
}

func (a *app) complaintFor(ctx context.Context, sess *client.Session, id string) (*models.Complaint, error) {
	if sess.Role == models.RoleGovernment {
		return a.client.Government(sess).Complaint(ctx, id)
	}
	return a.client.Citizen(sess).Complaint(ctx, id)
}

func warnPart(part string, err error) {
	if err != nil {
		slog.Warn("could not load "+part, "error", describe(err))
	}
}

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard for the logged-in role",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session("")
			if err != nil {
				return err
			}
			if sess.Role == models.RoleGovernment {
				return a.governmentDashboard(cmd.Context(), sess)
			}

			o := a.client.LoadCitizenOverview(cmd.Context(), sess)
			if o.Complaints.Err != nil {
				return describe(o.Complaints.Err)
			}
			warnPart("dashboard summary", o.Summary.Err)
			warnPart("leaderboard", o.Leaderboard.Err)
			warnPart("profile", o.Profile.Err)

			view := service.BuildView(o.ViewInput(sess.UserID))
			if a.jsonOut {
				return a.printJSON(view)
			}
			if o.Profile.Value != nil {
				fmt.Fprintf(a.out, "Welcome, %s\n\n", o.Profile.Value.Name)
			}
			renderCitizenView(a.out, view)
			return nil
		},
	}
}

func (a *app) complaintsCmd() *cobra.Command {
	var status, category string
	cmd := &cobra.Command{
		Use:   "complaints",
		Short: "List complaints (your own, or all for officials)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var want models.Status
			if status != "" {
				parsed, ok := parseStatusArg(status)
				if !ok {
					return fmt.Errorf("unknown status %q (want one of %s)", status, joinStatuses(models.Lifecycle))
				}
				want = parsed
			}
			sess, err := a.session("")
			if err != nil {
				return err
			}
			complaints, err := a.complaintsFor(cmd.Context(), sess)
			if err != nil {
				return describe(err)
			}
			complaints = filterComplaints(complaints, want, category)

			view := service.BuildView(service.ViewInput{Role: sess.Role, UserID: sess.UserID, Complaints: complaints})
			if a.jsonOut {
				return a.printJSON(view.Rows)
			}
			renderRows(a.out, view)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only complaints with this status")
	cmd.Flags().StringVar(&category, "category", "", "Only complaints in this category")
	return cmd
}

// filterComplaints keeps complaints matching status and category; an empty
// filter matches everything.
func filterComplaints(complaints []models.Complaint, status models.Status, category string) []models.Complaint {
	category = strings.TrimSpace(category)
	if status == "" && category == "" {
		return complaints
	}
	out := make([]models.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if status != "" && c.Status != status {
			continue
		}
		if category != "" && !strings.EqualFold(c.Category, category) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (a *app) trackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "track <complaint-id>",
		Short: "Show a complaint and its progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session("")
			if err != nil {
				return err
			}
			c, err := a.complaintFor(cmd.Context(), sess, args[0])
			if err != nil {
				return describe(err)
			}
			if a.jsonOut {
				return a.printJSON(service.ComplaintRow{
					Complaint: *c,
					Tone:      service.ToneFor(c.Status),
					Stages:    service.TrackStages(c.Status),
				})
			}
			renderComplaint(a.out, *c, a.client.UploadURL)
			return nil
		},
	}
}

func (a *app) leaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the citizen leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session(models.RoleCitizen)
			if err != nil {
				return err
			}
			entries, err := a.client.Citizen(sess).Leaderboard(cmd.Context())
			if err != nil {
				return describe(err)
			}
			ranked := service.RankEntries(service.SortLeaderboard(entries))
			if a.jsonOut {
				return a.printJSON(ranked)
			}
			renderLeaderboard(a.out, ranked, sess.UserID)
			return nil
		},
	}
}

func (a *app) submitCmd() *cobra.Command {
	var (
		req    models.SubmitComplaintRequest
		photos []string
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a new complaint",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session(models.RoleCitizen)
			if err != nil {
				return err
			}
			if len(photos) > utils.MaxPhotos {
				return fmt.Errorf("at most %d photos are allowed", utils.MaxPhotos)
			}
			for _, path := range photos {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read photo: %w", err)
				}
				req.Photos = append(req.Photos, models.PhotoUpload{FileName: path, Data: data})
			}

			c, err := a.client.Citizen(sess).SubmitComplaint(cmd.Context(), req)
			if err != nil {
				return describe(err)
			}
			if a.jsonOut {
				return a.printJSON(c)
			}
			fmt.Fprintf(a.out, "Complaint submitted: %s (%s)\n", c.ID, c.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Title, "title", "", "Short title")
	cmd.Flags().StringVar(&req.Category, "category", "", "Category (see 'civictrack categories')")
	cmd.Flags().StringVar(&req.Description, "description", "", "What is wrong, at least 10 characters")
	cmd.Flags().StringVar(&req.Location, "location", "", "Where it is, e.g. street and city")
	cmd.Flags().StringArrayVar(&photos, "photo", nil, "Photo file to attach (repeatable, JPEG/PNG/GIF/WebP, 5 MB max)")
	return cmd
}

func (a *app) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List complaint categories",
		Run: func(cmd *cobra.Command, args []string) {
			for _, c := range models.ComplaintCategories {
				fmt.Fprintln(a.out, c)
			}
		},
	}
}
