package main

import (
	"fmt"

	"civictrack/models"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func (a *app) loginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email|government-id>",
		Short: "Log in and store the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.client.Login(cmd.Context(), args[0], password)
			if err != nil {
				return describe(err)
			}
			if err := a.store.Save(sess); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in as %s (%s)\n", sess.Login, sess.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.store.Load()
			if err != nil {
				return err
			}
			if err := a.client.Logout(cmd.Context(), sess); err != nil {
				return describe(err)
			}
			if err := a.store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func (a *app) registerCmd() *cobra.Command {
	var (
		citizen    models.RegisterRequest
		government bool
		govID      string
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a citizen or government account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				msg string
				err error
			)
			if government {
				msg, err = a.client.RegisterGovernment(cmd.Context(), models.RegisterGovernmentRequest{
					GovernmentID: govID,
					Name:         citizen.Name,
					Password:     citizen.Password,
					Phone:        citizen.Phone,
					Address:      citizen.Address,
				})
			} else {
				msg, err = a.client.Register(cmd.Context(), citizen)
			}
			if err != nil {
				return describe(err)
			}
			fmt.Fprintln(a.out, msg)
			return nil
		},
	}
	cmd.Flags().StringVar(&citizen.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&citizen.Email, "email", "", "Email address (citizens)")
	cmd.Flags().StringVarP(&citizen.Password, "password", "p", "", "Password, at least 6 characters")
	cmd.Flags().StringVar(&citizen.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&citizen.Address, "address", "", "Postal address")
	cmd.Flags().BoolVar(&government, "government", false, "Register a government official")
	cmd.Flags().StringVar(&govID, "government-id", "", "Government ID (officials)")
	return cmd
}

func (a *app) forgotPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Request a password reset email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := a.client.ForgotPassword(cmd.Context(), args[0])
			if err != nil {
				return describe(err)
			}
			fmt.Fprintln(a.out, msg)
			return nil
		},
	}
}

func (a *app) profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session("")
			if err != nil {
				return err
			}
			p, err := a.client.Profile(cmd.Context(), sess)
			if err != nil {
				return describe(err)
			}
			if a.jsonOut {
				return a.printJSON(p)
			}
			fmt.Fprintf(a.out, "Name:    %s\n", p.Name)
			if p.Email != "" {
				fmt.Fprintf(a.out, "Email:   %s\n", p.Email)
			}
			if p.Phone != "" {
				fmt.Fprintf(a.out, "Phone:   %s\n", p.Phone)
			}
			if p.Address != "" {
				fmt.Fprintf(a.out, "Address: %s\n", p.Address)
			}
			fmt.Fprintf(a.out, "Role:    %s\n", p.Role)
			if p.CreatedAt != nil {
				fmt.Fprintf(a.out, "Joined:  %s\n", humanize.Time(*p.CreatedAt))
			}
			return nil
		},
	}
}
