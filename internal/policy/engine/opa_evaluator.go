package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"

	userdomain "issuehub/internal/user/domain"
)

const allowQuery = "data.issuehub.access.allow"

// Default Rego policy: admins may act on anything, everyone else only on
// resources they own, are assigned to, or are a member of.
const defaultRegoPolicy = `package issuehub.access

default allow = false

allow if {
	input.subject.role == "ADMIN"
}

allow if {
	input.subject.email != ""
	input.subject.email == input.resource.owner
}

allow if {
	input.subject.email != ""
	input.subject.email == input.resource.assignee
}

allow if {
	some member in input.resource.members
	member == input.subject.email
	input.subject.email != ""
}
`

// OPAEvaluator decides access requests with OPA Rego. An empty policy list
// means the built-in default policy.
type OPAEvaluator struct {
	policies []string
}

// NewOPAEvaluator returns an OPA-based access evaluator. Extra policies, if
// given, replace the default policy; they must define issuehub.access.allow.
func NewOPAEvaluator(policies ...string) *OPAEvaluator {
	return &OPAEvaluator{policies: policies}
}

// HealthCheck verifies that the in-process OPA Rego engine can compile and evaluate
// the configured policy. Returns nil on success.
func (e *OPAEvaluator) HealthCheck(ctx context.Context) error {
	minimalInput := buildInput(AccessInput{
		Subject:  Subject{Email: "", Role: ""},
		Resource: Resource{Type: "", Owner: "", Assignee: "", Members: nil},
	})
	_, err := e.eval(ctx, minimalInput)
	return err
}

// EvaluateAccess evaluates the access rule for the given subject and resource.
// Rego evaluation failures fall back to the equivalent hardcoded rule so that a
// broken custom policy never locks everyone out.
func (e *OPAEvaluator) EvaluateAccess(ctx context.Context, input AccessInput) (bool, error) {
	allowed, err := e.eval(ctx, buildInput(input))
	if err != nil {
		log.Printf("policy: evaluation failed: %v, using fallback rule", err)
		return fallbackAccess(input), nil
	}
	return allowed, nil
}

func (e *OPAEvaluator) eval(ctx context.Context, input map[string]interface{}) (bool, error) {
	policies := e.policies
	if len(policies) == 0 {
		policies = []string{defaultRegoPolicy}
	}
	modules := make(map[string]string)
	for i, policy := range policies {
		modules[fmt.Sprintf("policy_%d.rego", i)] = policy
	}

	compiler, err := ast.CompileModules(modules)
	if err != nil {
		return false, fmt.Errorf("compile policies: %w", err)
	}

	q := rego.New(
		rego.Query(allowQuery),
		rego.Compiler(compiler),
		rego.Input(input),
	)
	rs, err := q.Eval(ctx)
	if err != nil {
		return false, fmt.Errorf("eval policies: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return false, fmt.Errorf("policy query returned no result")
	}
	allowed, ok := rs[0].Expressions[0].Value.(bool)
	if !ok {
		return false, fmt.Errorf("policy query returned non-boolean %T", rs[0].Expressions[0].Value)
	}
	return allowed, nil
}

func buildInput(in AccessInput) map[string]interface{} {
	members := make([]interface{}, 0, len(in.Resource.Members))
	for _, m := range in.Resource.Members {
		members = append(members, m)
	}
	return map[string]interface{}{
		"subject": map[string]interface{}{
			"email": in.Subject.Email,
			"role":  in.Subject.Role,
		},
		"resource": map[string]interface{}{
			"type":     in.Resource.Type,
			"owner":    in.Resource.Owner,
			"assignee": in.Resource.Assignee,
			"members":  members,
		},
	}
}

// fallbackAccess is the default policy expressed in Go, used when Rego evaluation fails.
func fallbackAccess(in AccessInput) bool {
	if in.Subject.Role == string(userdomain.RoleAdmin) {
		return true
	}
	if in.Subject.Email == "" {
		return false
	}
	if in.Subject.Email == in.Resource.Owner || in.Subject.Email == in.Resource.Assignee {
		return true
	}
	for _, m := range in.Resource.Members {
		if m == in.Subject.Email {
			return true
		}
	}
	return false
}
