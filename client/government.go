package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"civictrack/models"
	"civictrack/service"
)

// GovernmentAPI is the government-scoped part of the API
type GovernmentAPI struct {
	c    *Client
	sess *Session
}

// Government returns the government endpoints bound to sess
func (c *Client) Government(sess *Session) *GovernmentAPI {
	return &GovernmentAPI{c: c, sess: sess}
}

func (a *GovernmentAPI) get(ctx context.Context, path string, out interface{}) error {
	return a.c.do(ctx, request{method: http.MethodGet, path: "/government" + path, sess: a.sess, auth: true}, out)
}

// Dashboard returns the budget and engagement payload
func (a *GovernmentAPI) Dashboard(ctx context.Context) (*models.GovernmentDashboard, error) {
	var dash models.GovernmentDashboard
	if err := a.get(ctx, "/dashboard", &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}

// Complaints returns every complaint with its submitter, normalized
func (a *GovernmentAPI) Complaints(ctx context.Context) ([]models.Complaint, error) {
	var items []models.ComplaintItem
	if err := a.get(ctx, "/complaints", &items); err != nil {
		return nil, err
	}
	return models.NormalizeComplaints(items), nil
}

// Complaint returns one complaint with its submitter
func (a *GovernmentAPI) Complaint(ctx context.Context, id string) (*models.Complaint, error) {
	var item models.ComplaintItem
	if err := a.get(ctx, "/complaints/"+url.PathEscape(id), &item); err != nil {
		return nil, err
	}
	c := models.NormalizeComplaint(item)
	return &c, nil
}

// UpdateStatus sends a status change as-is; the server decides whether it
// is allowed.
func (a *GovernmentAPI) UpdateStatus(ctx context.Context, id string, status models.Status) (*models.Complaint, error) {
	req, err := a.c.jsonRequest(http.MethodPatch, "/government/complaints/"+url.PathEscape(id)+"/status", a.sess, true,
		models.UpdateStatusRequest{Status: string(status)})
	if err != nil {
		return nil, err
	}
	var item models.ComplaintItem
	if err := a.c.do(ctx, req, &item); err != nil {
		return nil, err
	}
	c := models.NormalizeComplaint(item)
	return &c, nil
}

// Advance moves a complaint to next, refusing locally anything that is not
// a forward lifecycle transition.
func (a *GovernmentAPI) Advance(ctx context.Context, complaint models.Complaint, next models.Status) (*models.Complaint, error) {
	if !a.sess.LoggedIn() {
		return nil, errNotLoggedIn()
	}
	if !service.CanTransition(complaint.Status, next) {
		msg := fmt.Sprintf("Cannot move a %s complaint to %s", complaint.Status, next)
		return nil, &Error{Kind: KindValidation, Message: msg, Fields: map[string]string{"status": msg}}
	}
	return a.UpdateStatus(ctx, complaint.ID, next)
}
