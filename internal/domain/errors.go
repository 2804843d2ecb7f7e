package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrParentNotFound       = errors.New("parent task not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrAttachmentNotFound   = errors.New("attachment not found")
	ErrMemberNotFound       = errors.New("member not found")
	ErrMemberExists         = errors.New("user is already a member")
	ErrSubtaskNesting       = errors.New("subtasks cannot have subtasks")
	ErrCrossProjectParent   = errors.New("parent task belongs to a different project")
	ErrEmptyTitle           = errors.New("title cannot be empty")
	ErrEmptyName            = errors.New("name cannot be empty")
	ErrEmptyComment         = errors.New("comment cannot be empty")
	ErrNoFieldsToUpdate     = errors.New("no fields to update")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidPriority      = errors.New("invalid priority")
	ErrInvalidRole          = errors.New("invalid role")
	ErrNotAuthenticated     = errors.New("not authenticated (run 'boardsync login' first)")
	ErrOwnerRoleChange      = errors.New("cannot change the owner's role")
)
