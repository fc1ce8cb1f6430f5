// Package services defines the business logic of the portal: the request
// lifecycle engine, the chat gate, accounts, and announcements. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

// Authorization errors.
var (
	// ErrUnauthorized is returned when the caller's role does not permit
	// the attempted operation (or no session is present at all).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrChatForbidden is returned when the caller may not read or write
	// the chat thread of a request. Unlike the silent empty-list path for
	// the owning resident before acceptance, this is a hard failure.
	ErrChatForbidden = errors.New("chat access denied")
)

// Validation errors.
var (
	// ErrMissingFields is returned when a create/register payload lacks a
	// required field after trimming.
	ErrMissingFields = errors.New("please fill all required fields")

	// ErrEmailRegistered is returned when a registration email is already
	// taken within its role.
	ErrEmailRegistered = errors.New("email already registered")

	// ErrInvalidCredentials is returned on login when the email/password
	// pair does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidRole is returned when a login names an unknown role.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidPriority is returned when a priority value is outside the
	// allowed set.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidStatus is returned when a status value is outside the
	// allowed set.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrEmptyMessage is returned when a chat message is empty after
	// trimming.
	ErrEmptyMessage = errors.New("message cannot be empty")
)

// Lifecycle-state errors.
var (
	// ErrRequestNotFound indicates the referenced maintenance request does
	// not exist.
	ErrRequestNotFound = errors.New("request not found")

	// ErrAnnouncementNotFound indicates the referenced announcement does
	// not exist.
	ErrAnnouncementNotFound = errors.New("announcement not found")

	// ErrRequestComplete is returned when a technician attempts to modify
	// a request whose status is already complete. Completion freezes the
	// record.
	ErrRequestComplete = errors.New("request is complete")

	// ErrChatClosed is returned when a message is sent to a completed
	// request, even by parties the access predicate would admit.
	ErrChatClosed = errors.New("chat is closed for completed requests")
)
