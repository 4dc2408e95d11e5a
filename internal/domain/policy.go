package domain

import "fmt"

// MarkPolicy decides how high and low row marks interact
type MarkPolicy string

const (
	// PolicyExclusive keeps a row in at most one of the high/low sets
	PolicyExclusive MarkPolicy = "exclusive"
	// PolicyInspected also records high-quality rows as inspected in the low
	// set, and marking low leaves the high set alone
	PolicyInspected MarkPolicy = "inspected"
)

// ParseMarkPolicy validates a policy name; empty selects PolicyExclusive
func ParseMarkPolicy(s string) (MarkPolicy, error) {
	switch MarkPolicy(s) {
	case "", PolicyExclusive:
		return PolicyExclusive, nil
	case PolicyInspected:
		return PolicyInspected, nil
	default:
		return "", fmt.Errorf("unknown mark policy %q (want %s or %s)", s, PolicyExclusive, PolicyInspected)
	}
}
