package expr

// SelectItem is one entry of a SELECT list: an expression with an
// optional alias, or a wildcard. This mirrors sqlparser's SelectExprs
// but stays in the engine's own AST so operators never import the
// parser package.
type SelectItem struct {
	// Wildcard is true for `*`; Expr/Alias are unused in that case.
	Wildcard bool
	Expr     Expr
	Alias    string // empty when no AS clause was given
}

// Label implements the output-schema rule of spec.md §4.2.2: the
// label is the alias if given, else the identifier name for a bare
// identifier, else the expression's textual form.
func (s SelectItem) Label() string {
	if s.Alias != "" {
		return s.Alias
	}
	if name, ok := IsIdent(s.Expr); ok {
		return name
	}
	return s.Expr.String()
}

// ColumnName implements spec.md §4.2.2's column_name rule: for a bare
// UnnamedExpr identifier, the identifier; for ExprWithAlias where the
// aliased expression is itself an identifier, that identifier; for any
// other expression, the empty ("unnameable") string.
func (s SelectItem) ColumnName() string {
	if name, ok := IsIdent(s.Expr); ok {
		return name
	}
	return ""
}
