package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mhiguchi/boardsync/internal/app"
	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/usecase"
)

// newProjectCommand creates the project command group.
func newProjectCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects and membership",
	}

	cmd.AddCommand(
		newProjectListCommand(c),
		newProjectCreateCommand(c),
		newProjectEditCommand(c),
		newProjectRmCommand(c),
		newProjectMembersCommand(c),
		newProjectAddMemberCommand(c),
		newProjectRemoveMemberCommand(c),
		newProjectSetRoleCommand(c),
	)

	return cmd
}

// newProjectListCommand creates the project list command.
func newProjectListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects visible to you",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := c.RequireSession()
			if err != nil {
				return err
			}
			uc := c.ListProjectsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListProjectsInput{UserID: sess.User.ID})
			if err != nil {
				return err
			}
			printProjects(cmd.OutOrStdout(), out.Projects)
			return nil
		},
	}
}

func printProjects(w io.Writer, projects []*domain.Project) {
	if len(projects) == 0 {
		_, _ = fmt.Fprintln(w, "No projects")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tMEMBERS\tDESCRIPTION")
	for _, p := range projects {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.ID, p.Name, len(p.Members), p.Description)
	}
	_ = tw.Flush()
}

// newProjectCreateCommand creates the project create command.
func newProjectCreateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Name        string
		Description string
	}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := c.RequireSession(); err != nil {
				return err
			}
			uc := c.CreateProjectUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.CreateProjectInput{
				Name:        opts.Name,
				Description: opts.Description,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", out.Project.Name, out.Project.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Project name (required)")
	cmd.Flags().StringVar(&opts.Description, "description", "", "Project description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// newProjectEditCommand creates the project edit command.
func newProjectEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Name        string
		Description string
	}

	cmd := &cobra.Command{
		Use:   "edit <project-id>",
		Short: "Edit project name or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.RequireSession(); err != nil {
				return err
			}

			var patch domain.ProjectPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &opts.Name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &opts.Description
			}

			uc := c.UpdateProjectUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.UpdateProjectInput{
				ProjectID: args[0],
				Patch:     patch,
			})
			if err != nil {
				return err
			}
			if out.Skipped {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No changes")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "New project name")
	cmd.Flags().StringVar(&opts.Description, "description", "", "New project description")

	return cmd
}

// newProjectRmCommand creates the project rm command.
func newProjectRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <project-id>",
		Short: "Delete a project and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.RequireSession(); err != nil {
				return err
			}
			uc := c.DeleteProjectUseCase()
			if _, err := uc.Execute(cmd.Context(), usecase.DeleteProjectInput{ProjectID: args[0]}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
			return nil
		},
	}
}

// newProjectMembersCommand creates the project members command.
func newProjectMembersCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "members <project-id>",
		Short: "List members of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.RequireSession(); err != nil {
				return err
			}

			// Load the project so the member list is current
			uc := c.OpenProjectUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.OpenProjectInput{ProjectID: args[0]})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			_, _ = fmt.Fprintln(tw, "USER\tROLE")
			for _, m := range out.Project.Members {
				_, _ = fmt.Fprintf(tw, "%s\t%s\n", m.UserID, m.Role)
			}
			return tw.Flush()
		},
	}
}

// newProjectAddMemberCommand creates the project add-member command.
func newProjectAddMemberCommand(c *app.Container) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "add-member <project-id> <user-id>",
		Short: "Add a user to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.RequireSession(); err != nil {
				return err
			}
			uc := c.AddMemberUseCase()
			if _, err := uc.Execute(cmd.Context(), usecase.AddMemberInput{
				ProjectID: args[0],
				UserID:    args[1],
				Role:      domain.Role(role),
			}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s as %s\n", args[1], role)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "member", "Role to grant (member, viewer)")

	return cmd
}

// newProjectRemoveMemberCommand creates the project remove-member command.
func newProjectRemoveMemberCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-member <project-id> <user-id>",
		Short: "Remove a user from a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.RequireSession(); err != nil {
				return err
			}
			uc := c.RemoveMemberUseCase()
			if _, err := uc.Execute(cmd.Context(), usecase.RemoveMemberInput{
				ProjectID: args[0],
				UserID:    args[1],
			}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[1])
			return nil
		},
	}
}

// newProjectSetRoleCommand creates the project set-role command.
func newProjectSetRoleCommand(c *app.Container) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "set-role <project-id> <user-id>",
		Short: "Change a member's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.RequireSession(); err != nil {
				return err
			}
			uc := c.SetMemberRoleUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.SetMemberRoleInput{
				ProjectID: args[0],
				UserID:    args[1],
				Role:      domain.Role(role),
			})
			if err != nil {
				return err
			}
			if out.Skipped {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No changes")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", args[1], role)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "New role (member, viewer)")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}
