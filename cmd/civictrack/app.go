package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"civictrack/client"
	"civictrack/config"
	"civictrack/models"

	"github.com/spf13/cobra"
)

// app holds the state shared by all commands
type app struct {
	cfg *config.Config
	out io.Writer

	apiURL      string
	sessionFile string
	logLevel    string
	timeout     time.Duration
	jsonOut     bool

	client *client.Client
	store  *client.SessionStore
}

func newApp(out io.Writer) *app {
	return &app{cfg: config.LoadConfig(), out: out}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Citizen complaint tracking client",
		Long: `civictrack talks to a CivicTrack API server.

Citizens submit complaints, follow them through
Pending → Approved → In Progress → Resolved and compete on the leaderboard.
Government officials review every complaint and advance its status.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	cmd.PersistentFlags().StringVar(&a.apiURL, "api", a.cfg.Client.APIURL, "API origin (without /api)")
	cmd.PersistentFlags().StringVar(&a.sessionFile, "session", a.cfg.Client.SessionFile, "Session file path")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", a.cfg.LogLevel, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().DurationVar(&a.timeout, "timeout", a.cfg.Client.HTTPTimeout, "Per-request timeout")
	cmd.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Output JSON instead of tables")

	cmd.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.registerCmd(),
		a.forgotPasswordCmd(),
		a.profileCmd(),
		a.dashboardCmd(),
		a.complaintsCmd(),
		a.trackCmd(),
		a.leaderboardCmd(),
		a.submitCmd(),
		a.categoriesCmd(),
		a.mapCmd(),
		a.govCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(a.out, "%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}

func (a *app) setup() error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(a.logLevel),
	})))
	a.client = client.New(a.apiURL, client.WithTimeout(a.timeout))
	a.store = client.NewSessionStore(a.sessionFile)
	return nil
}

// session loads the stored session and checks it has the wanted role.
// An empty role accepts any logged-in user.
func (a *app) session(role models.Role) (*client.Session, error) {
	sess, err := a.store.Load()
	if err != nil {
		return nil, err
	}
	if !sess.LoggedIn() {
		return nil, errors.New("not logged in: run 'civictrack login' first")
	}
	if role != "" && sess.Role != role {
		return nil, fmt.Errorf("this command needs a %s account (logged in as %s)", role, sess.Role)
	}
	return sess, nil
}

func (a *app) printJSON(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describe turns client errors into a CLI message, listing field problems
func describe(err error) error {
	var ce *client.Error
	if !errors.As(err, &ce) {
		return err
	}
	switch ce.Kind {
	case client.KindValidation:
		return fmt.Errorf("invalid input: %s", ce.Message)
	case client.KindNotLoggedIn:
		return errors.New("not logged in: run 'civictrack login' first")
	case client.KindServer:
		if ce.StatusCode != 0 {
			return fmt.Errorf("%s (HTTP %d)", ce.Message, ce.StatusCode)
		}
	}
	return ce
}
