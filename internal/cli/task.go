package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhiguchi/boardsync/internal/app"
	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/usecase"
	"github.com/mhiguchi/boardsync/internal/view"
)

// dateLayout is the format accepted by --start and --due flags.
const dateLayout = "2006-01-02"

// loadProject fetches the project list and bulk-loads one project into the
// store so task commands operate on current data.
func loadProject(cmd *cobra.Command, c *app.Container, projectID string) error {
	sess, err := c.RequireSession()
	if err != nil {
		return err
	}
	if _, err := c.ListProjectsUseCase().Execute(cmd.Context(), usecase.ListProjectsInput{UserID: sess.User.ID}); err != nil {
		return err
	}
	_, err = c.OpenProjectUseCase().Execute(cmd.Context(), usecase.OpenProjectInput{ProjectID: projectID})
	return err
}

// newTaskCommand creates the task command group.
func newTaskCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskListCommand(c),
		newTaskAddCommand(c),
		newTaskEditCommand(c),
		newTaskDoneCommand(c),
		newTaskRmCommand(c),
		newTaskShowCommand(c),
	)

	return cmd
}

// newTaskListCommand creates the task list command.
func newTaskListCommand(c *app.Container) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks of a project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadProject(cmd, c, projectID); err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), c, projectID)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID (required)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func printTasks(w io.Writer, c *app.Container, projectID string) {
	tasks := c.Store.TasksByProject(projectID)
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(w, "No tasks")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tPRIORITY\tTITLE\tPROGRESS")
	for _, t := range tasks {
		if !t.IsRoot() {
			continue
		}
		progress := ""
		if len(view.SubtasksOf(c.Store, t.ID)) > 0 {
			progress = fmt.Sprintf("%d%%", view.Progress(c.Store, t.ID))
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Status.Display(), t.Priority, t.Title, progress)
		for _, sub := range view.SubtasksOf(c.Store, t.ID) {
			_, _ = fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t\n", sub.ID, sub.Status.Display(), sub.Priority, sub.Title)
		}
	}
	_ = tw.Flush()
}

// newTaskAddCommand creates the task add command.
func newTaskAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		ProjectID   string
		Title       string
		Description string
		Assignee    string
		Priority    string
		ParentID    string
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		Long: `Create a new task in a project.

The task appears immediately; the server-assigned ID replaces the
temporary one once the create settles.

Examples:
  # Create a root task
  boardsync task add --project p1 --title "Auth refactoring"

  # Create a subtask under task t1
  boardsync task add --project p1 --parent t1 --title "OAuth flow"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadProject(cmd, c, opts.ProjectID); err != nil {
				return err
			}

			input := usecase.CreateTaskInput{
				ProjectID:   opts.ProjectID,
				Title:       opts.Title,
				Description: opts.Description,
				AssigneeID:  opts.Assignee,
				Priority:    domain.Priority(opts.Priority),
			}
			if opts.ParentID != "" {
				input.ParentID = &opts.ParentID
			}

			uc := c.CreateTaskUseCase()
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ProjectID, "project", "", "Project ID (required)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Task description")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "Assignee user ID")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "Priority (low, medium, high)")
	cmd.Flags().StringVar(&opts.ParentID, "parent", "", "Parent task ID (creates a subtask)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

// newTaskEditCommand creates the task edit command.
func newTaskEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		ProjectID   string
		Title       string
		Description string
		Status      string
		Priority    string
		Assignee    string
		Start       string
		Due         string
		ClearStart  bool
		ClearDue    bool
	}

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit task fields",
		Long: `Edit task fields. Only the flags you pass are changed; edits
apply immediately and roll back if the server rejects them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadProject(cmd, c, opts.ProjectID); err != nil {
				return err
			}

			var patch domain.TaskPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &opts.Title
			}
			if cmd.Flags().Changed("body") {
				patch.Description = &opts.Description
			}
			if cmd.Flags().Changed("status") {
				status := domain.Status(opts.Status)
				patch.Status = &status
			}
			if cmd.Flags().Changed("priority") {
				priority := domain.Priority(opts.Priority)
				patch.Priority = &priority
			}
			if cmd.Flags().Changed("assignee") {
				patch.AssigneeID = &opts.Assignee
			}
			if cmd.Flags().Changed("start") {
				t, err := time.Parse(dateLayout, opts.Start)
				if err != nil {
					return fmt.Errorf("parse --start: %w", err)
				}
				patch.StartDate = &t
			}
			if cmd.Flags().Changed("due") {
				t, err := time.Parse(dateLayout, opts.Due)
				if err != nil {
					return fmt.Errorf("parse --due: %w", err)
				}
				patch.DueDate = &t
			}
			patch.ClearStartDate = opts.ClearStart
			patch.ClearDueDate = opts.ClearDue

			uc := c.UpdateTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.UpdateTaskInput{
				TaskID: args[0],
				Patch:  patch,
			})
			if err != nil {
				return err
			}
			if out.Skipped {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No changes")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ProjectID, "project", "", "Project ID (required)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.Description, "body", "", "New description")
	cmd.Flags().StringVar(&opts.Status, "status", "", "New status (todo, pending, in_progress, done)")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "New priority (low, medium, high)")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "New assignee user ID")
	cmd.Flags().StringVar(&opts.Start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&opts.ClearStart, "clear-start", false, "Clear the start date")
	cmd.Flags().BoolVar(&opts.ClearDue, "clear-due", false, "Clear the due date")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// newTaskDoneCommand creates the task done command.
func newTaskDoneCommand(c *app.Container) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadProject(cmd, c, projectID); err != nil {
				return err
			}
			status := domain.StatusDone
			uc := c.UpdateTaskUseCase()
			if _, err := uc.Execute(cmd.Context(), usecase.UpdateTaskInput{
				TaskID: args[0],
				Patch:  domain.TaskPatch{Status: &status},
			}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Done: %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID (required)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// newTaskRmCommand creates the task rm command.
func newTaskRmCommand(c *app.Container) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a task and its subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadProject(cmd, c, projectID); err != nil {
				return err
			}
			uc := c.DeleteTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d task(s)\n", out.Removed)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID (required)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// newTaskShowCommand creates the task show command.
func newTaskShowCommand(c *app.Container) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadProject(cmd, c, projectID); err != nil {
				return err
			}
			task := c.Store.Task(args[0])
			if task == nil {
				return domain.ErrTaskNotFound
			}
			printTaskDetail(cmd.OutOrStdout(), c, task)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Project ID (required)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func printTaskDetail(w io.Writer, c *app.Container, task *domain.Task) {
	_, _ = fmt.Fprintf(w, "Task %s: %s\n", task.ID, task.Title)
	_, _ = fmt.Fprintf(w, "  Status:   %s\n", task.Status.Display())
	_, _ = fmt.Fprintf(w, "  Priority: %s\n", task.Priority)
	if task.AssigneeID != "" {
		_, _ = fmt.Fprintf(w, "  Assignee: %s\n", task.AssigneeID)
	}
	if task.StartDate != nil {
		_, _ = fmt.Fprintf(w, "  Start:    %s\n", task.StartDate.Format(dateLayout))
	}
	if task.DueDate != nil {
		_, _ = fmt.Fprintf(w, "  Due:      %s\n", task.DueDate.Format(dateLayout))
	}
	if task.Description != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", task.Description)
	}

	subtasks := view.SubtasksOf(c.Store, task.ID)
	if len(subtasks) > 0 {
		_, _ = fmt.Fprintf(w, "\nSubtasks (%d%% done):\n", view.Progress(c.Store, task.ID))
		for _, sub := range subtasks {
			_, _ = fmt.Fprintf(w, "  [%s] %s %s\n", sub.Status.Display(), sub.ID, sub.Title)
		}
	}

	if len(task.Comments) > 0 {
		_, _ = fmt.Fprintln(w, "\nComments:")
		for _, cm := range task.Comments {
			_, _ = fmt.Fprintf(w, "  %s (%s, %s):\n    %s\n", cm.ID, cm.AuthorID, cm.CreatedAt.Format("2006-01-02 15:04"), cm.Text)
		}
	}

	if len(task.Files) > 0 {
		_, _ = fmt.Fprintln(w, "\nFiles:")
		for _, f := range task.Files {
			_, _ = fmt.Fprintf(w, "  %s %s (%d bytes)\n", f.ID, f.Name, f.Size)
		}
	}
}
