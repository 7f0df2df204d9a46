// Package policy evaluates request admission rules written in Rego.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"

	"github.com/Shuaib-8/Travel-Copilot/internal/domain"
)

const (
	DecisionAllow  = "allow"
	DecisionReject = "reject"
)

// Decision is the outcome of a policy evaluation.
type Decision struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason,omitempty"`
}

// Allowed reports whether the request may proceed.
func (d Decision) Allowed() bool {
	return d.Decision != DecisionReject
}

// Input is the document the policy is evaluated against.
type Input struct {
	Messages    []domain.Message `json:"messages"`
	MaxMessages int              `json:"max_messages"`
}

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.request_policy.result"),
		rego.Module("request_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks an inbound transcript.
func (e *Engine) Evaluate(ctx context.Context, input Input) (Decision, error) {
	doc := map[string]interface{}{
		"messages":     toDocument(input.Messages),
		"max_messages": input.MaxMessages,
	}

	results, err := e.query.Eval(ctx, rego.EvalInput(doc))
	if err != nil {
		return Decision{}, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return Decision{Decision: DecisionAllow, Reason: "default"}, nil
	}

	obj, ok := results[0].Expressions[0].Value.(map[string]interface{})
	if !ok {
		return Decision{}, fmt.Errorf("unexpected policy result type %T", results[0].Expressions[0].Value)
	}

	d := Decision{Decision: DecisionAllow}
	if s, ok := obj["decision"].(string); ok {
		d.Decision = s
	}
	if s, ok := obj["reason"].(string); ok {
		d.Reason = s
	}
	return d, nil
}

func toDocument(messages []domain.Message) []interface{} {
	out := make([]interface{}, 0, len(messages))
	for _, m := range messages {
		out = append(out, map[string]interface{}{
			"role":    string(m.Role),
			"content": m.Content,
		})
	}
	return out
}

// DefaultPolicy is the default policy content.
const DefaultPolicy = `
package request_policy

allowed_roles := {"system", "user", "assistant"}

invalid_roles[role] {
	role := input.messages[_].role
	not allowed_roles[role]
}

too_long {
	input.max_messages > 0
	count(input.messages) > input.max_messages
}

default result = {"decision": "allow"}

result = {"decision": "reject", "reason": sprintf("unknown message role(s): %v", [sort(invalid_roles)])} {
	count(invalid_roles) > 0
}

result = {"decision": "reject", "reason": sprintf("conversation exceeds %d messages", [input.max_messages])} {
	count(invalid_roles) == 0
	too_long
}
`
