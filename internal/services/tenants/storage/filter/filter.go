// Package filter provides AIP-160 filter expression parsing for tenant event
// history, with SQL translation and in-memory matching.
package filter

import (
	"fmt"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	"github.com/polycoder/tenants/internal/services/tenants/storage"
)

// EventDeclarations returns the field declarations for event filtering.
func EventDeclarations() (*filtering.Declarations, error) {
	return filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent("type", filtering.TypeString),
		filtering.DeclareIdent("seq", filtering.TypeInt),
		filtering.DeclareIdent("ts", filtering.TypeTimestamp),
	)
}

// Condition is a parsed filter. The zero Condition matches every record.
type Condition struct {
	// Clause is the SQL WHERE clause fragment (e.g., "event_type = ?").
	Clause string
	// Params are the positional parameters for the clause.
	Params []any

	match func(storage.EventRecord) bool
}

// Empty reports whether the condition places no constraint.
func (c Condition) Empty() bool {
	return c.Clause == ""
}

// Matches reports whether rec satisfies the condition.
func (c Condition) Matches(rec storage.EventRecord) bool {
	if c.match == nil {
		return true
	}
	return c.match(rec)
}

// fieldMapping maps filter field names to SQL column names.
var fieldMapping = map[string]string{
	"type": "event_type",
	"seq":  "seq",
	"ts":   "timestamp",
}

// ParseEventFilter parses an AIP-160 filter expression.
// Returns an empty condition for an empty filter string.
func ParseEventFilter(filterStr string) (Condition, error) {
	if strings.TrimSpace(filterStr) == "" {
		return Condition{}, nil
	}

	decls, err := EventDeclarations()
	if err != nil {
		return Condition{}, fmt.Errorf("create declarations: %w", err)
	}

	filter, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return Condition{}, fmt.Errorf("parse filter: %w", err)
	}

	return translateExpr(filter.CheckedExpr.Expr)
}

func translateExpr(e *expr.Expr) (Condition, error) {
	if e == nil {
		return Condition{}, nil
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_CallExpr:
		return translateCall(kind.CallExpr)
	default:
		return Condition{}, fmt.Errorf("unsupported expression type: %T", kind)
	}
}

func translateCall(call *expr.Expr_Call) (Condition, error) {
	switch call.Function {
	case "_&&_", "AND":
		return translateLogical(call.Args, "AND")
	case "_||_", "OR":
		return translateLogical(call.Args, "OR")
	case "_==_", "=":
		return translateComparison(call.Args, "=")
	case "_!=_", "!=":
		return translateComparison(call.Args, "!=")
	case "_<_", "<":
		return translateComparison(call.Args, "<")
	case "_<=_", "<=":
		return translateComparison(call.Args, "<=")
	case "_>_", ">":
		return translateComparison(call.Args, ">")
	case "_>=_", ">=":
		return translateComparison(call.Args, ">=")
	default:
		return Condition{}, fmt.Errorf("unsupported function: %s", call.Function)
	}
}

func translateLogical(args []*expr.Expr, op string) (Condition, error) {
	if len(args) != 2 {
		return Condition{}, fmt.Errorf("%s requires 2 arguments", op)
	}

	left, err := translateExpr(args[0])
	if err != nil {
		return Condition{}, err
	}
	right, err := translateExpr(args[1])
	if err != nil {
		return Condition{}, err
	}

	match := func(rec storage.EventRecord) bool {
		if op == "AND" {
			return left.Matches(rec) && right.Matches(rec)
		}
		return left.Matches(rec) || right.Matches(rec)
	}
	return Condition{
		Clause: fmt.Sprintf("(%s %s %s)", left.Clause, op, right.Clause),
		Params: append(append([]any(nil), left.Params...), right.Params...),
		match:  match,
	}, nil
}

func translateComparison(args []*expr.Expr, op string) (Condition, error) {
	if len(args) != 2 {
		return Condition{}, fmt.Errorf("comparison requires 2 arguments")
	}

	field, err := extractFieldName(args[0])
	if err != nil {
		return Condition{}, err
	}

	column, ok := fieldMapping[field]
	if !ok {
		return Condition{}, fmt.Errorf("unknown field: %s", field)
	}

	value, err := extractValue(args[1])
	if err != nil {
		return Condition{}, err
	}

	match, err := comparisonMatcher(field, op, value)
	if err != nil {
		return Condition{}, err
	}

	return Condition{
		Clause: fmt.Sprintf("%s %s ?", column, op),
		Params: []any{value},
		match:  match,
	}, nil
}

func comparisonMatcher(field, op string, value any) (func(storage.EventRecord) bool, error) {
	switch field {
	case "type":
		want, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("type must be compared with a string")
		}
		return func(rec storage.EventRecord) bool {
			return compare(strings.Compare(rec.Type, want), op)
		}, nil
	case "seq":
		want, ok := value.(int64)
		if !ok {
			return nil, fmt.Errorf("seq must be compared with an integer")
		}
		return func(rec storage.EventRecord) bool {
			return compare(compareInt64(int64(rec.Seq), want), op)
		}, nil
	case "ts":
		want, ok := value.(int64)
		if !ok {
			return nil, fmt.Errorf("ts must be compared with a timestamp")
		}
		return func(rec storage.EventRecord) bool {
			return compare(compareInt64(rec.Timestamp.UTC().UnixMilli(), want), op)
		}, nil
	default:
		return nil, fmt.Errorf("unknown field: %s", field)
	}
}

func compare(cmp int, op string) bool {
	switch op {
	case "=":
		return cmp == 0
	case "!=":
		return cmp != 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	default:
		return false
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func extractFieldName(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_IdentExpr:
		return kind.IdentExpr.Name, nil
	default:
		return "", fmt.Errorf("expected identifier, got %T", kind)
	}
}

func extractValue(e *expr.Expr) (any, error) {
	if e == nil {
		return nil, fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_ConstExpr:
		return extractConstValue(kind.ConstExpr)
	case *expr.Expr_CallExpr:
		if kind.CallExpr.Function == "timestamp" && len(kind.CallExpr.Args) == 1 {
			return extractTimestampValue(kind.CallExpr.Args[0])
		}
		return nil, fmt.Errorf("unsupported function in value position: %s", kind.CallExpr.Function)
	default:
		return nil, fmt.Errorf("expected constant or timestamp, got %T", kind)
	}
}

func extractConstValue(c *expr.Constant) (any, error) {
	if c == nil {
		return nil, fmt.Errorf("nil constant")
	}

	switch kind := c.ConstantKind.(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return kind.Int64Value, nil
	case *expr.Constant_Uint64Value:
		return int64(kind.Uint64Value), nil
	default:
		return nil, fmt.Errorf("unsupported constant type: %T", kind)
	}
}

// extractTimestampValue returns Unix milliseconds, the unit timestamps are stored in.
func extractTimestampValue(e *expr.Expr) (int64, error) {
	if e == nil {
		return 0, fmt.Errorf("nil timestamp argument")
	}

	kind, ok := e.ExprKind.(*expr.Expr_ConstExpr)
	if !ok {
		return 0, fmt.Errorf("timestamp argument must be a constant string")
	}
	strVal, ok := kind.ConstExpr.ConstantKind.(*expr.Constant_StringValue)
	if !ok {
		return 0, fmt.Errorf("timestamp argument must be a string")
	}
	t, err := time.Parse(time.RFC3339Nano, strVal.StringValue)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp format: %s", strVal.StringValue)
	}
	return t.UTC().UnixMilli(), nil
}
