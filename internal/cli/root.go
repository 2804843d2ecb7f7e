// Package cli provides the command-line interface for boardsync.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mhiguchi/boardsync/internal/app"
)

// Command group IDs.
const (
	groupAuth    = "auth"
	groupProject = "project"
	groupTask    = "task"
)

// NewRootCommand creates the root command for boardsync.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "boardsync",
		Short: "Collaborative project tracker client",
		Long: `boardsync is a client for a collaborative project tracker.
It keeps a local mirror of projects, tasks and notifications, applies
edits optimistically and reconciles server push events in the background.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
	}

	root.AddGroup(
		&cobra.Group{ID: groupAuth, Title: "Account Commands:"},
		&cobra.Group{ID: groupProject, Title: "Project Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Commands:"},
	)

	loginCmd := newLoginCommand(c)
	loginCmd.GroupID = groupAuth
	registerCmd := newRegisterCommand(c)
	registerCmd.GroupID = groupAuth
	logoutCmd := newLogoutCommand(c)
	logoutCmd.GroupID = groupAuth

	projectCmd := newProjectCommand(c)
	projectCmd.GroupID = groupProject
	notificationsCmd := newNotificationsCommand(c)
	notificationsCmd.GroupID = groupProject
	watchCmd := newWatchCommand(c)
	watchCmd.GroupID = groupProject
	boardCmd := newBoardCommand(c)
	boardCmd.GroupID = groupProject

	taskCmd := newTaskCommand(c)
	taskCmd.GroupID = groupTask
	commentCmd := newCommentCommand(c)
	commentCmd.GroupID = groupTask
	fileCmd := newFileCommand(c)
	fileCmd.GroupID = groupTask

	root.AddCommand(
		loginCmd,
		registerCmd,
		logoutCmd,
		projectCmd,
		notificationsCmd,
		watchCmd,
		boardCmd,
		taskCmd,
		commentCmd,
		fileCmd,
	)

	return root
}
