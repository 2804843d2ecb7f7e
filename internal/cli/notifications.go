package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mhiguchi/boardsync/internal/app"
	"github.com/mhiguchi/boardsync/internal/usecase"
)

// newNotificationsCommand creates the notifications command group.
func newNotificationsCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "List and manage notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := c.RequireSession(); err != nil {
				return err
			}
			uc := c.SyncNotificationsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.SyncNotificationsInput{})
			if err != nil {
				return err
			}
			if len(out.Notifications) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No notifications")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tKIND\tREAD\tMESSAGE")
			for _, n := range out.Notifications {
				read := " "
				if n.Read {
					read = "x"
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, n.Kind, read, n.Message)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(
		newNotificationsReadCommand(c),
		newNotificationsDismissCommand(c),
	)

	return cmd
}

// newNotificationsReadCommand creates the notifications read command.
func newNotificationsReadCommand(c *app.Container) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "read [notification-id]",
		Short: "Mark notifications as read",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.RequireSession(); err != nil {
				return err
			}
			if !all && len(args) == 0 {
				return fmt.Errorf("notification ID or --all required")
			}

			input := usecase.MarkNotificationReadInput{All: all}
			if len(args) == 1 {
				input.NotificationID = args[0]
			}

			// Refresh first so the target exists locally
			if _, err := c.SyncNotificationsUseCase().Execute(cmd.Context(), usecase.SyncNotificationsInput{}); err != nil {
				return err
			}

			uc := c.MarkNotificationReadUseCase()
			if _, err := uc.Execute(cmd.Context(), input); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Marked read")
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Mark all notifications read")

	return cmd
}

// newNotificationsDismissCommand creates the notifications dismiss command.
func newNotificationsDismissCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <notification-id>",
		Short: "Dismiss a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.RequireSession(); err != nil {
				return err
			}
			if _, err := c.SyncNotificationsUseCase().Execute(cmd.Context(), usecase.SyncNotificationsInput{}); err != nil {
				return err
			}
			uc := c.DismissNotificationUseCase()
			if _, err := uc.Execute(cmd.Context(), usecase.DismissNotificationInput{NotificationID: args[0]}); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Dismissed")
			return nil
		},
	}
}
