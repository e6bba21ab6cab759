package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Permission errors
	ErrPermissionDenied = errors.New("permission denied")

	// Task errors
	ErrTaskNotFound  = errors.New("task not found")
	ErrTitleRequired = errors.New("task title is required")
	ErrEmptyPatch    = errors.New("no fields to update")

	// Room errors
	ErrRoomNotFound = errors.New("room not found")
	ErrNameRequired = errors.New("room name is required")

	// Actor errors
	ErrActorNotFound = errors.New("actor not found")
	ErrInvalidToken  = errors.New("invalid authentication token")

	// Validation errors
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrInvalidRole     = errors.New("invalid role")
)
