package engine

import "context"

// Subject is the caller as seen by the policy engine.
type Subject struct {
	Email string
	Role  string
}

// Resource describes the relationship between the target object and the caller's
// email: who owns it, who it is assigned to, and which emails are members.
type Resource struct {
	Type     string
	Owner    string
	Assignee string
	Members  []string
}

// AccessInput is a single access decision request: may Subject act on Resource.
type AccessInput struct {
	Subject  Subject
	Resource Resource
}

// Evaluator decides access requests using OPA or other engines.
type Evaluator interface {
	// EvaluateAccess returns true when the subject is allowed to act on the resource.
	EvaluateAccess(ctx context.Context, input AccessInput) (bool, error)
}
