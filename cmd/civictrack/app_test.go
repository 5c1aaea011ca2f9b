package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"civictrack/client"
	"civictrack/models"
	"civictrack/routes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cli struct {
	t       *testing.T
	api     string
	session string
}

func (c cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out bytes.Buffer
	root := newApp(&out).rootCmd()
	root.SetArgs(append([]string{"--api", c.api, "--session", c.session, "--log-level", "error"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (c cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "civictrack %v", args)
	return out
}

func TestCitizenAndOfficialWorkflow(t *testing.T) {
	backend := routes.NewBackend("cli-secret", 1, t.TempDir(), prometheus.NewRegistry())
	srv := httptest.NewServer(backend.Router)
	defer srv.Close()

	dir := t.TempDir()
	citizen := cli{t: t, api: srv.URL, session: filepath.Join(dir, "citizen.yaml")}
	official := cli{t: t, api: srv.URL, session: filepath.Join(dir, "official.yaml")}

	assert.Contains(t, citizen.mustRun("register", "--name", "Asha Rao", "--email", "asha@example.com", "--password", "secret123"),
		"Registration successful")
	assert.Contains(t, citizen.mustRun("login", "asha@example.com", "--password", "secret123"),
		"Logged in as asha@example.com (citizen)")

	out := citizen.mustRun("submit", "--json",
		"--title", "Broken streetlight",
		"--category", "Road & Infrastructure",
		"--description", "The streetlight outside house 12 has been off for a week",
		"--location", "Park Street, Kolkata")
	var created models.Complaint
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, models.StatusPending, created.Status)

	dash := citizen.mustRun("dashboard")
	assert.Contains(t, dash, "Welcome, Asha Rao")
	assert.Contains(t, dash, "Complaints: 1")
	assert.Contains(t, dash, "Rank: #1 (gold)")
	assert.Contains(t, dash, "Road & Infrastructure")

	official.mustRun("register", "--government", "--government-id", "GOV-7", "--name", "Ward Officer", "--password", "secret123")
	official.mustRun("login", "GOV-7", "--password", "secret123")

	_, err := official.run("gov", "advance", created.ID, "resolved")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot move a Pending complaint to Resolved")

	assert.Contains(t, official.mustRun("gov", "advance", created.ID, "approved"), "Pending → Approved")

	gov := official.mustRun("dashboard")
	assert.Contains(t, gov, "Asha Rao")
	assert.Contains(t, gov, "In Progress | Resolved")

	track := citizen.mustRun("track", created.ID)
	assert.Contains(t, track, "[x] 1. Pending")
	assert.Contains(t, track, "[>] 2. Approved")
	assert.Contains(t, track, "[ ] 4. Resolved")

	_, err = official.run("leaderboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a citizen account")

	assert.Contains(t, citizen.mustRun("leaderboard"), "<- you")

	assert.Contains(t, citizen.mustRun("logout"), "Logged out")
	_, err = citizen.run("dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestSubmitValidationMessage(t *testing.T) {
	c := cli{t: t, api: "http://127.0.0.1:1", session: filepath.Join(t.TempDir(), "s.yaml")}
	// A stored session is enough: validation fails before any request.
	require.NoError(t, writeSession(c.session))

	_, err := c.run("submit", "--title", "Leak", "--category", "Water Supply", "--description", "short", "--location", "Pune")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Description must be at least 10 characters")
}

func writeSession(path string) error {
	return client.NewSessionStore(path).Save(&client.Session{Token: "t", Role: models.RoleCitizen, UserID: "u1"})
}

func TestParseStatusArg(t *testing.T) {
	tests := []struct {
		in   string
		want models.Status
		ok   bool
	}{
		{"approved", models.StatusApproved, true},
		{"In Progress", models.StatusInProgress, true},
		{"in-progress", models.StatusInProgress, true},
		{"IN_PROGRESS", models.StatusInProgress, true},
		{"done", "", false},
	}
	for _, tt := range tests {
		got, ok := parseStatusArg(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFilterComplaints(t *testing.T) {
	complaints := []models.Complaint{
		{ID: "a", Status: models.StatusPending, Category: "Water Supply"},
		{ID: "b", Status: models.StatusInProgress, Category: "Electricity"},
		{ID: "c", Status: models.StatusInProgress, Category: "Water Supply"},
	}
	ids := func(cs []models.Complaint) []string {
		out := []string{}
		for _, c := range cs {
			out = append(out, c.ID)
		}
		return out
	}

	status, ok := parseStatusArg("in-progress")
	require.True(t, ok)

	assert.Equal(t, []string{"b", "c"}, ids(filterComplaints(complaints, status, "")))
	assert.Equal(t, []string{"c"}, ids(filterComplaints(complaints, status, "water supply")))
	assert.Equal(t, []string{"a", "c"}, ids(filterComplaints(complaints, "", " Water Supply ")))
	assert.Len(t, filterComplaints(complaints, "", ""), 3)
}

func TestComplaintsRejectsUnknownStatus(t *testing.T) {
	c := cli{t: t, api: "http://127.0.0.1:1", session: filepath.Join(t.TempDir(), "session.yaml")}

	_, err := c.run("complaints", "--status", "done")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown status "done"`)
}
