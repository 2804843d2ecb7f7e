package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mhiguchi/boardsync/internal/app"
	"github.com/mhiguchi/boardsync/internal/usecase"
)

// newFileCommand creates the file command group.
func newFileCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Manage task attachments",
	}

	cmd.AddCommand(
		newFileAddCommand(c),
		newFileRmCommand(c),
	)

	return cmd
}

// newFileAddCommand creates the file add command.
func newFileAddCommand(c *app.Container) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "add <task-id> <path>",
		Short: "Attach a file to a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadProject(cmd, c, projectID); err != nil {
				return err
			}

			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer func() { _ = f.Close() }()

			uc := c.AddAttachmentUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.AddAttachmentInput{
				TaskID:  args[0],
				Name:    filepath.Base(args[1]),
				Content: f,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Attached %s (%s)\n", out.Attachment.Name, out.Attachment.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID (required)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// newFileRmCommand creates the file rm command.
func newFileRmCommand(c *app.Container) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "rm <task-id> <file-id>",
		Short: "Remove an attachment from a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadProject(cmd, c, projectID); err != nil {
				return err
			}
			uc := c.RemoveAttachmentUseCase()
			if _, err := uc.Execute(cmd.Context(), usecase.RemoveAttachmentInput{
				TaskID: args[0],
				FileID: args[1],
			}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed file %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID (required)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
