package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrSessionNotFound     = errors.New("quiz session not found")
	ErrRoomNotFound        = errors.New("room not found")
	ErrSessionCompleted    = errors.New("quiz session already completed")
	ErrWrongPhase          = errors.New("operation not valid in current phase")
	ErrPairModeUnsupported = errors.New("pair mode is not supported")
	ErrLeadNotFound        = errors.New("lead not found")
	ErrInvalidTransition   = errors.New("invalid lead status transition")
	ErrStyleNotFound       = errors.New("style not found")
	ErrImageNotFound       = errors.New("style image not found")
	ErrQuestionNotFound    = errors.New("quiz question not found")
)
