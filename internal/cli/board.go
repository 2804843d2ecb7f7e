package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mhiguchi/boardsync/internal/app"
	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/tui"
	"github.com/mhiguchi/boardsync/internal/usecase"
)

// newBoardCommand creates the board command for the interactive TUI.
func newBoardCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "board <project-id>",
		Short: "Open the interactive task board",
		Long: `Open the interactive terminal board for a project. The board
reflects your edits immediately and refreshes as server events arrive.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := c.RequireSession()
			if err != nil {
				return err
			}
			if err := loadProject(cmd, c, args[0]); err != nil {
				return err
			}

			// Stream push events in the background while the board is open
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go func() {
				uc := c.WatchProjectUseCase()
				_, _ = uc.Execute(ctx, usecase.WatchProjectInput{
					ProjectID: args[0],
					Presence: domain.PresenceInfo{
						UserID: sess.User.ID,
						Name:   sess.User.Name,
					},
				})
			}()

			model := tui.New(c, args[0], sess.User.ID)
			p := tea.NewProgram(model, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
