package studioctl

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"promptstudio/internal/users"
)

func UsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage account tiers and admin rights",
	}
	cmd.AddCommand(promoteCmd(), demoteCmd(), adminCmd(), listUsersCmd())
	return cmd
}

func promoteCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "promote <email>",
		Short: "Grant premium, optionally for a number of days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 0 {
				return fmt.Errorf("--days must be zero or positive")
			}
			var expires *time.Time
			if days > 0 {
				t := time.Now().UTC().Add(time.Duration(days) * 24 * time.Hour)
				expires = &t
			}
			return withUser(cmd, args[0], func(svc *users.Service, u users.User) (users.User, error) {
				return svc.SetSubscription(cmd.Context(), u.ID, users.TierPremium, expires)
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "premium duration in days (0 = no expiry)")
	return cmd
}

func demoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demote <email>",
		Short: "Return an account to the free tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(cmd, args[0], func(svc *users.Service, u users.User) (users.User, error) {
				return svc.SetSubscription(cmd.Context(), u.ID, users.TierFree, nil)
			})
		},
	}
}

func adminCmd() *cobra.Command {
	var revoke bool
	cmd := &cobra.Command{
		Use:   "admin <email>",
		Short: "Grant or revoke admin rights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUser(cmd, args[0], func(svc *users.Service, u users.User) (users.User, error) {
				return svc.SetAdmin(cmd.Context(), u.ID, !revoke)
			})
		},
	}
	cmd.Flags().BoolVar(&revoke, "revoke", false, "remove admin rights instead of granting them")
	return cmd
}

func listUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts with their effective tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := openUsers(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			all, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range all {
				printUser(cmd, u)
			}
			return nil
		},
	}
}

func withUser(cmd *cobra.Command, email string, fn func(*users.Service, users.User) (users.User, error)) error {
	svc, closeFn, err := openUsers(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	u, err := svc.GetByEmail(cmd.Context(), email)
	if err != nil {
		return fmt.Errorf("%s: %w", email, err)
	}
	updated, err := fn(svc, u)
	if err != nil {
		return err
	}
	printUser(cmd, updated)
	return nil
}

func printUser(cmd *cobra.Command, u users.User) {
	out := cmd.OutOrStdout()
	tier := color.New(color.FgWhite)
	if u.IsPremium(time.Now()) {
		tier = color.New(color.FgGreen, color.Bold)
	}
	fmt.Fprintf(out, "%s  %s", u.Email, tier.Sprint(u.EffectiveTier(time.Now())))
	if u.SubscriptionExpiresAt != nil {
		fmt.Fprintf(out, "  until %s", u.SubscriptionExpiresAt.UTC().Format("2006-01-02"))
	}
	if u.IsAdmin {
		fmt.Fprintf(out, "  %s", color.CyanString("admin"))
	}
	fmt.Fprintln(out)
}
