package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"civictrack/models"
)

// CitizenAPI is the citizen-scoped part of the API
type CitizenAPI struct {
	c    *Client
	sess *Session
}

// Citizen returns the citizen endpoints bound to sess
func (c *Client) Citizen(sess *Session) *CitizenAPI {
	return &CitizenAPI{c: c, sess: sess}
}

func (a *CitizenAPI) get(ctx context.Context, path string, out interface{}) error {
	return a.c.do(ctx, request{method: http.MethodGet, path: "/citizen" + path, sess: a.sess, auth: true}, out)
}

// Dashboard returns the citizen's server-side KPIs
func (a *CitizenAPI) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	var summary models.DashboardSummary
	if err := a.get(ctx, "/dashboard", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Complaints returns the citizen's own complaints, normalized
func (a *CitizenAPI) Complaints(ctx context.Context) ([]models.Complaint, error) {
	var items []models.ComplaintItem
	if err := a.get(ctx, "/complaints", &items); err != nil {
		return nil, err
	}
	return models.NormalizeComplaints(items), nil
}

// Complaint returns one of the citizen's complaints
func (a *CitizenAPI) Complaint(ctx context.Context, id string) (*models.Complaint, error) {
	var item models.ComplaintItem
	if err := a.get(ctx, "/complaints/"+url.PathEscape(id), &item); err != nil {
		return nil, err
	}
	c := models.NormalizeComplaint(item)
	return &c, nil
}

// Leaderboard returns the leaderboard in server order
func (a *CitizenAPI) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var items []models.LeaderboardItem
	if err := a.get(ctx, "/leaderboard", &items); err != nil {
		return nil, err
	}
	return models.NormalizeLeaderboard(items), nil
}

// SubmitComplaint validates and sends a new complaint as multipart/form-data.
// Nothing is sent when the session is missing or validation fails.
func (a *CitizenAPI) SubmitComplaint(ctx context.Context, payload models.SubmitComplaintRequest) (*models.Complaint, error) {
	if !a.sess.LoggedIn() {
		return nil, errNotLoggedIn()
	}
	payload.Title = strings.TrimSpace(payload.Title)
	payload.Category = strings.TrimSpace(payload.Category)
	payload.Description = strings.TrimSpace(payload.Description)
	payload.Location = strings.TrimSpace(payload.Location)
	if err := validate(payload); err != nil {
		return nil, err
	}

	body, contentType, err := encodeComplaintForm(payload)
	if err != nil {
		return nil, err
	}
	var item models.ComplaintItem
	err = a.c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/citizen/complaints",
		sess:        a.sess,
		auth:        true,
		body:        body,
		contentType: contentType,
		failMessage: msgSubmitFailed,
	}, &item)
	if err != nil {
		return nil, err
	}
	c := models.NormalizeComplaint(item)
	return &c, nil
}

func encodeComplaintForm(payload models.SubmitComplaintRequest) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := []struct{ name, value string }{
		{"title", payload.Title},
		{"category", payload.Category},
		{"description", payload.Description},
		{"location", payload.Location},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("encode form: %w", err)
		}
	}
	for i, photo := range payload.Photos {
		name := filepath.Base(photo.FileName)
		if photo.FileName == "" {
			name = fmt.Sprintf("photo-%d", i+1)
		}
		part, err := mw.CreateFormFile("photos", name)
		if err != nil {
			return nil, "", fmt.Errorf("encode photo: %w", err)
		}
		if _, err := part.Write(photo.Data); err != nil {
			return nil, "", fmt.Errorf("encode photo: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("encode form: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}
