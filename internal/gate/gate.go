// Package gate is the capability checkpoint invoked before every mutating
// registry operation. It decides whether the calling subject may perform an
// action; it does not authenticate — that is the verifier middleware's job.
package gate

import (
	"context"
	"errors"
)

// Action names a mutating capability on back-office data.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ErrForbidden is returned when the gate denies an action.
var ErrForbidden = errors.New("action not permitted")

// Gate authorizes a subject to perform an action. Subject is the identity
// extracted from verified token claims; empty means anonymous.
type Gate interface {
	Allow(ctx context.Context, subject string, action Action) error
}

// AllowAll permits every action. Development and test use only.
type AllowAll struct{}

func (AllowAll) Allow(ctx context.Context, subject string, action Action) error { return nil }

// RequireSubject denies anonymous callers and permits any authenticated one.
// This is the production default until role-based policies are introduced.
type RequireSubject struct{}

func (RequireSubject) Allow(ctx context.Context, subject string, action Action) error {
	if subject == "" {
		return ErrForbidden
	}
	return nil
}

// ForEnvironment returns the gate for the given server environment:
// permissive in development, subject-required everywhere else.
func ForEnvironment(env string) Gate {
	if env == "development" || env == "test" {
		return AllowAll{}
	}
	return RequireSubject{}
}
