package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhiguchi/boardsync/internal/app"
	"github.com/mhiguchi/boardsync/internal/usecase"
)

// newCommentCommand creates the comment command group.
func newCommentCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Manage task comments",
	}

	cmd.AddCommand(
		newCommentAddCommand(c),
		newCommentRmCommand(c),
	)

	return cmd
}

// newCommentAddCommand creates the comment add command.
func newCommentAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		ProjectID string
		Text      string
	}

	cmd := &cobra.Command{
		Use:   "add <task-id>",
		Short: "Add a comment to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := c.RequireSession()
			if err != nil {
				return err
			}
			if err := loadProject(cmd, c, opts.ProjectID); err != nil {
				return err
			}

			uc := c.AddCommentUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.AddCommentInput{
				TaskID:   args[0],
				AuthorID: sess.User.ID,
				Text:     opts.Text,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added comment %s\n", out.Comment.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ProjectID, "project", "", "Project ID (required)")
	cmd.Flags().StringVar(&opts.Text, "text", "", "Comment text (required)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

// newCommentRmCommand creates the comment rm command.
func newCommentRmCommand(c *app.Container) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "rm <task-id> <comment-id>",
		Short: "Remove a comment from a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadProject(cmd, c, projectID); err != nil {
				return err
			}
			uc := c.DeleteCommentUseCase()
			if _, err := uc.Execute(cmd.Context(), usecase.DeleteCommentInput{
				TaskID:    args[0],
				CommentID: args[1],
			}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed comment %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID (required)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
