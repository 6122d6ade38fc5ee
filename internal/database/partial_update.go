package database

import (
	"fmt"
	"sort"
	"strings"

	reasoncodes "github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/reason_codes"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/rest"
)

// Statement is SQL text with positional placeholders ($1..$n) and its arguments in order.
type Statement struct {
	SQL  string
	Args []any
}

// PartialUpdate builds UPDATE statements that only touch the columns supplied.
// Columns is the allowlist and fixes the assignment order.
type PartialUpdate struct {
	Table     string
	Key       string
	Columns   []string
	Returning []string
}

// Build produces one "column = $n" assignment per present value, in Columns
// order, followed by the key as the last parameter. Values are never inlined.
func (p PartialUpdate) Build(id any, values map[string]any) (Statement, error) {
	if unknown := p.unknownColumns(values); len(unknown) > 0 {
		details := make([]rest.FieldError, 0, len(unknown))
		for _, column := range unknown {
			details = append(details, rest.NewFieldError("body", column, "unknown column", nil))
		}
		return Statement{}, reasoncodes.Validation("Invalid request body", details)
	}

	assignments := make([]string, 0, len(values))
	args := make([]any, 0, len(values)+1)
	for _, column := range p.Columns {
		value, ok := values[column]
		if !ok {
			continue
		}
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if len(assignments) == 0 {
		return Statement{}, reasoncodes.NoFieldsProvided("no fields provided for update")
	}

	args = append(args, id)

	var sb strings.Builder
	fmt.Fprintf(&sb, "UPDATE %s SET %s WHERE %s = $%d", p.Table, strings.Join(assignments, ", "), p.Key, len(args))
	if len(p.Returning) > 0 {
		sb.WriteString(" RETURNING ")
		sb.WriteString(strings.Join(p.Returning, ", "))
	}

	return Statement{SQL: sb.String(), Args: args}, nil
}

func (p PartialUpdate) unknownColumns(values map[string]any) []string {
	allowed := make(map[string]struct{}, len(p.Columns))
	for _, column := range p.Columns {
		allowed[column] = struct{}{}
	}

	var unknown []string
	for column := range values {
		if _, ok := allowed[column]; !ok {
			unknown = append(unknown, column)
		}
	}
	sort.Strings(unknown)
	return unknown
}
