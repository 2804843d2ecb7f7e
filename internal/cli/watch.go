package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhiguchi/boardsync/internal/app"
	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/usecase"
)

// newWatchCommand creates the watch command.
func newWatchCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <project-id>",
		Short: "Stream project events into the local mirror",
		Long: `Connect to the server push channel and apply incoming events
until interrupted. Other members see you as online while connected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := c.RequireSession()
			if err != nil {
				return err
			}
			if err := loadProject(cmd, c, args[0]); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Watching project %s (Ctrl-C to stop)\n", args[0])
			uc := c.WatchProjectUseCase()
			_, err = uc.Execute(cmd.Context(), usecase.WatchProjectInput{
				ProjectID: args[0],
				Presence: domain.PresenceInfo{
					UserID: sess.User.ID,
					Name:   sess.User.Name,
				},
			})
			return err
		},
	}
}
