package service

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("Some tasks not found or access denied")
	ErrProjectNotFound  = errors.New("project not found or access denied")
	ErrAssigneeNotFound = errors.New("assignee not found")
	ErrParentNotFound   = errors.New("parent task not found")
	ErrInvalidReference = errors.New("referenced record does not exist")
	ErrInvalidInput     = errors.New("invalid input")
	ErrSelfDependency   = errors.New("a task cannot depend on itself")
	ErrAlreadyExists    = errors.New("already exists")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user with this email or username already exists")
	ErrUserNotFound       = errors.New("user not found")
)
