package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"civictrack/models"
	"civictrack/routes"
	"civictrack/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newBackend(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()
	backend := routes.NewBackend("test-secret", 1, t.TempDir(), prometheus.NewRegistry())
	srv := httptest.NewServer(backend.Router)
	t.Cleanup(srv.Close)
	return srv, New(srv.URL)
}

func registerCitizen(t *testing.T, c *Client, name, email string) *Session {
	t.Helper()
	ctx := context.Background()
	_, err := c.Register(ctx, models.RegisterRequest{Name: name, Email: email, Password: "secret123"})
	require.NoError(t, err)
	sess, err := c.Login(ctx, email, "secret123")
	require.NoError(t, err)
	return sess
}

func registerOfficial(t *testing.T, c *Client) *Session {
	t.Helper()
	ctx := context.Background()
	_, err := c.RegisterGovernment(ctx, models.RegisterGovernmentRequest{
		GovernmentID: "GOV-001",
		Name:         "Ward Officer",
		Password:     "secret123",
	})
	require.NoError(t, err)
	sess, err := c.Login(ctx, "GOV-001", "secret123")
	require.NoError(t, err)
	return sess
}

func pothole(category string) models.SubmitComplaintRequest {
	return models.SubmitComplaintRequest{
		Title:       "Pothole on main road",
		Category:    category,
		Description: "Large pothole near the bus stop, causing accidents",
		Location:    "MG Road, Bengaluru",
	}
}

// countingServer counts requests and answers every one with status and body
func countingServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestSubmittedComplaintRoundTrip(t *testing.T) {
	_, c := newBackend(t)
	ctx := context.Background()
	sess := registerCitizen(t, c, "Asha Rao", "asha@example.com")
	assert.Equal(t, models.RoleCitizen, sess.Role)

	created, err := c.Citizen(sess).SubmitComplaint(ctx, pothole("Road & Infrastructure"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, created.Status)

	complaints, err := c.Citizen(sess).Complaints(ctx)
	require.NoError(t, err)
	require.Len(t, complaints, 1)
	assert.Equal(t, created.ID, complaints[0].ID)
	assert.Equal(t, models.StatusPending, complaints[0].Status)
	assert.False(t, complaints[0].CreatedAt.IsZero())

	assert.Equal(t, []models.CategoryCount{{Category: "Road & Infrastructure", Count: 1}},
		service.TallyCategories(complaints))

	one, err := c.Citizen(sess).Complaint(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "MG Road, Bengaluru", one.Location)
}

func TestAuthenticatedCallsWithoutSessionMakeNoRequest(t *testing.T) {
	srv, hits := countingServer(t, http.StatusOK, "{}")
	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.Citizen(nil).Dashboard(ctx)
	assert.Equal(t, KindNotLoggedIn, KindOf(err))
	assert.EqualError(t, err, "Not logged in")

	_, err = c.Citizen(&Session{}).SubmitComplaint(ctx, pothole("Water Supply"))
	assert.Equal(t, KindNotLoggedIn, KindOf(err))

	_, err = c.Government(nil).Advance(ctx, models.Complaint{ID: "x", Status: models.StatusPending}, models.StatusApproved)
	assert.Equal(t, KindNotLoggedIn, KindOf(err))

	_, err = c.Profile(ctx, nil)
	assert.Equal(t, KindNotLoggedIn, KindOf(err))

	assert.NoError(t, c.Logout(ctx, nil))
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestSubmitValidationFailsLocally(t *testing.T) {
	srv, hits := countingServer(t, http.StatusCreated, "{}")
	c := New(srv.URL)

	req := pothole("")
	req.Description = "too short"
	req.Location = ""
	_, err := c.Citizen(&Session{Token: "t"}).SubmitComplaint(context.Background(), req)

	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindValidation, ce.Kind)
	assert.Equal(t, "Select a category", ce.Fields["category"])
	assert.Equal(t, "Description must be at least 10 characters", ce.Fields["description"])
	assert.Equal(t, "Location is required", ce.Fields["location"])
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestSubmitRejectsBlankFieldsLocally(t *testing.T) {
	srv, hits := countingServer(t, http.StatusCreated, "{}")
	c := New(srv.URL)

	req := pothole("Road & Infrastructure")
	req.Title = "   "
	req.Location = "\t "
	_, err := c.Citizen(&Session{Token: "t"}).SubmitComplaint(context.Background(), req)

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindValidation, ce.Kind)
	assert.Equal(t, "Complaint title is required", ce.Fields["title"])
	assert.Equal(t, "Location is required", ce.Fields["location"])
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestRegisterValidation(t *testing.T) {
	_, c := newBackend(t)

	_, err := c.Register(context.Background(), models.RegisterRequest{Name: "A", Email: "not-an-email", Password: "123"})

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindValidation, ce.Kind)
	assert.Equal(t, "Invalid email", ce.Fields["email"])
	assert.Equal(t, "Minimum 6 characters", ce.Fields["password"])
}

func TestServerErrorMessages(t *testing.T) {
	t.Run("server message verbatim", func(t *testing.T) {
		_, c := newBackend(t)
		registerCitizen(t, c, "Asha Rao", "asha@example.com")

		_, err := c.Register(context.Background(), models.RegisterRequest{Name: "Other", Email: "asha@example.com", Password: "secret123"})

		var ce *Error
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, KindServer, ce.Kind)
		assert.Equal(t, http.StatusConflict, ce.StatusCode)
		assert.Equal(t, service.ErrEmailTaken.Error(), ce.Message)
	})

	t.Run("fallback for reads", func(t *testing.T) {
		srv, _ := countingServer(t, http.StatusBadGateway, "<html>bad gateway</html>")
		_, err := New(srv.URL).Citizen(&Session{Token: "t"}).Leaderboard(context.Background())

		var ce *Error
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, KindServer, ce.Kind)
		assert.Equal(t, "Request failed", ce.Message)
		assert.Equal(t, http.StatusBadGateway, ce.StatusCode)
	})

	t.Run("fallback for submit", func(t *testing.T) {
		srv, _ := countingServer(t, http.StatusInternalServerError, "")
		_, err := New(srv.URL).Citizen(&Session{Token: "t"}).SubmitComplaint(context.Background(), pothole("Traffic"))

		assert.Equal(t, KindServer, KindOf(err))
		assert.EqualError(t, err, "Submit failed")
	})

	t.Run("wrong credentials", func(t *testing.T) {
		_, c := newBackend(t)
		_, err := c.Login(context.Background(), "nobody@example.com", "secret123")
		assert.Equal(t, KindServer, KindOf(err))
	})
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := New(srv.URL)
	srv.Close()

	_, err := c.Citizen(&Session{Token: "t"}).Dashboard(context.Background())

	assert.Equal(t, KindNetwork, KindOf(err))
	assert.Contains(t, err.Error(), "Network error")
}

func TestGovernmentFlow(t *testing.T) {
	_, c := newBackend(t)
	ctx := context.Background()
	citizen := registerCitizen(t, c, "Asha Rao", "asha@example.com")
	official := registerOfficial(t, c)
	assert.Equal(t, models.RoleGovernment, official.Role)

	created, err := c.Citizen(citizen).SubmitComplaint(ctx, pothole("Road & Infrastructure"))
	require.NoError(t, err)

	all, err := c.Government(official).Complaints(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].User)
	assert.Equal(t, "Asha Rao", all[0].User.Name)

	_, err = c.Government(official).Advance(ctx, all[0], models.StatusResolved)
	assert.Equal(t, KindValidation, KindOf(err), "Pending cannot jump to Resolved")

	approved, err := c.Government(official).Advance(ctx, all[0], models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)

	_, err = c.Government(official).UpdateStatus(ctx, created.ID, models.StatusPending)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusBadRequest, ce.StatusCode, "backward moves are rejected by the server")

	resolved, err := c.Government(official).Advance(ctx, *approved, models.StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, resolved.Status)

	mine, err := c.Citizen(citizen).Complaint(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, mine.Status)

	dash, err := c.Government(official).Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.Engagement.TotalCitizens)
	assert.Equal(t, 1, dash.Engagement.TotalComplaints)
}

func TestRoleScoping(t *testing.T) {
	_, c := newBackend(t)
	citizen := registerCitizen(t, c, "Asha Rao", "asha@example.com")

	_, err := c.Government(citizen).Complaints(context.Background())

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusForbidden, ce.StatusCode)
}

func TestCitizenOverview(t *testing.T) {
	_, c := newBackend(t)
	ctx := context.Background()
	asha := registerCitizen(t, c, "Asha Rao", "asha@example.com")
	ravi := registerCitizen(t, c, "Ravi Kumar", "ravi@example.com")

	for _, cat := range []string{"Water Supply", "Water Supply", "Sanitation"} {
		_, err := c.Citizen(asha).SubmitComplaint(ctx, pothole(cat))
		require.NoError(t, err)
	}
	_, err := c.Citizen(ravi).SubmitComplaint(ctx, pothole("Traffic"))
	require.NoError(t, err)

	o := c.LoadCitizenOverview(ctx, ravi)
	require.NoError(t, o.Profile.Err)
	require.NoError(t, o.Summary.Err)
	require.NoError(t, o.Complaints.Err)
	require.NoError(t, o.Leaderboard.Err)

	view := service.BuildView(o.ViewInput(ravi.UserID))
	assert.Equal(t, service.KPISourceServer, view.KPIs.Source)
	assert.Equal(t, 1, view.KPIs.Total)
	assert.Equal(t, service.PointsPerComplaint, view.KPIs.Points)
	require.True(t, view.RankKnown)
	assert.Equal(t, 2, view.Rank)
}

func TestOverviewPartsFailIndependently(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/citizen/dashboard":
			http.Error(w, `{"message":"summary unavailable"}`, http.StatusServiceUnavailable)
		case "/api/citizen/complaints":
			io.WriteString(w, `[{"_id":"c1","title":"Leak","status":"Resolved"},{"_id":"c2"}]`)
		case "/api/citizen/leaderboard":
			io.WriteString(w, `[{"_id":"u1","name":"Asha","totalResolved":1}]`)
		default:
			io.WriteString(w, `{"_id":"u1","name":"Asha","email":"asha@example.com"}`)
		}
	}))
	defer srv.Close()

	o := New(srv.URL).LoadCitizenOverview(context.Background(), &Session{Token: "t"})

	assert.Equal(t, KindServer, KindOf(o.Summary.Err))
	require.NoError(t, o.Complaints.Err)
	assert.Equal(t, models.StatusPending, o.Complaints.Value[1].Status)
	assert.Equal(t, models.DefaultCategory, o.Complaints.Value[1].Category)

	view := service.BuildView(o.ViewInput(""))
	assert.Equal(t, service.KPISourceDerived, view.KPIs.Source)
	assert.Equal(t, 2, view.KPIs.Total)
	assert.Equal(t, 1, view.KPIs.Resolved)
	assert.Equal(t, 1, view.KPIs.InProgress)
	assert.True(t, view.RankKnown)
	assert.Equal(t, 1, view.Rank)
}

func TestPhotoUploadIsServed(t *testing.T) {
	srv, c := newBackend(t)
	ctx := context.Background()
	sess := registerCitizen(t, c, "Asha Rao", "asha@example.com")

	req := pothole("Sanitation")
	req.Photos = []models.PhotoUpload{{FileName: "drain.png", Data: pngHeader}}
	created, err := c.Citizen(sess).SubmitComplaint(ctx, req)
	require.NoError(t, err)
	require.Len(t, created.Photos, 1)

	resp, err := http.Get(c.UploadURL(created.Photos[0]))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, srv.URL+created.Photos[0], c.UploadURL(created.Photos[0]))
}

func TestUploadURL(t *testing.T) {
	c := New("http://localhost:5000/")

	assert.Equal(t, "", c.UploadURL(""))
	assert.Equal(t, "http://localhost:5000/uploads/complaints/a.jpg", c.UploadURL("/uploads/complaints/a.jpg"))
	assert.Equal(t, "http://localhost:5000/uploads/a.jpg", c.UploadURL("uploads/a.jpg"))
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "nested", "session.yaml"))

	sess, err := store.Load()
	require.NoError(t, err)
	assert.False(t, sess.LoggedIn())

	want := &Session{Token: "abc", Role: models.RoleGovernment, UserID: "u1", Login: "GOV-001"}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	got, err = store.Load()
	require.NoError(t, err)
	assert.False(t, got.LoggedIn())
}
