package plan

// Rule is the extension point for rule-based plan rewriting. No rule
// is shipped today; Optimize applies whatever rules it is given, in
// order, and is identity over an empty rule set (spec.md §4.5).
type Rule interface {
	// Apply rewrites node, returning either the same node or a
	// replacement. Rules are expected to be pure and total.
	Apply(node *Node) *Node
}

// Optimizer runs a fixed rule chain once over a plan tree.
type Optimizer struct {
	Rules []Rule
}

// NewOptimizer builds an Optimizer over the given rules, applied in
// order. With no rules, Optimize is the identity function.
func NewOptimizer(rules ...Rule) *Optimizer {
	return &Optimizer{Rules: rules}
}

// Optimize applies every configured rule to node in turn. The default
// Optimizer (no rules) returns node unchanged, satisfying spec.md
// §8's idempotence property: optimize(plan) = plan.
func (o *Optimizer) Optimize(node *Node) *Node {
	for _, rule := range o.Rules {
		node = rule.Apply(node)
	}
	return node
}
