// Package repository provides per-entity persistence handles over gorm.
// Handlers receive these explicitly instead of sharing package-level state.
package repository

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist. The
	// owner-scoped update paths also return it when the row exists but is
	// not owned by the caller, so existence is not leaked.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateVote is returned when a user already voted on a target.
	// A cast vote is immutable: there is no update or retraction path.
	ErrDuplicateVote = errors.New("vote already cast")

	// ErrDuplicateEmail is returned when registration hits the email
	// uniqueness constraint.
	ErrDuplicateEmail = errors.New("email already registered")
)
