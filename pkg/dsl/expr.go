package dsl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/cantype"
	"github.com/aretw0/cantype/pkg/kind"
	"github.com/aretw0/cantype/pkg/reflection"
)

var (
	// ErrUnknownType is returned for expressions naming no primitive or declared record.
	ErrUnknownType = errors.New("unknown type")
	// ErrSyntax is returned for malformed expressions.
	ErrSyntax = errors.New("invalid type expression")
	// ErrReservedName is returned when a record is named like a builtin type.
	ErrReservedName = errors.New("reserved type name")
)

const anyName = "Any"

// IsBuiltin reports whether name is a primitive type or Any.
func IsBuiltin(name string) bool {
	if name == anyName {
		return true
	}
	_, ok := kind.Lookup(kind.Kind(name))
	return ok
}

// Expr is a parsed type expression. Nested policies collapse to the
// outermost one, so maybe(convert(Number)) is maybe(Number).
type Expr struct {
	Name    string
	Policy  cantype.Policy
	Wrapped bool
}

func (e Expr) String() string {
	if !e.Wrapped {
		return e.Name
	}
	return fmt.Sprintf("%s(%s)", e.Policy, e.Name)
}

// ParseExpr parses the syntax of an expression without looking names up.
func ParseExpr(s string) (Expr, error) {
	p, body, wrapped, err := splitPolicy(s)
	if err != nil {
		return Expr{}, err
	}
	for wrapped {
		var inner bool
		if _, body, inner, err = splitPolicy(body); err != nil {
			return Expr{}, err
		}
		if !inner {
			break
		}
	}

	if body == "" {
		return Expr{}, fmt.Errorf("%w: empty", ErrSyntax)
	}
	if strings.ContainsAny(body, "() \t") {
		return Expr{}, fmt.Errorf("%w: %q", ErrSyntax, body)
	}
	return Expr{Name: body, Policy: p, Wrapped: wrapped}, nil
}

// splitPolicy splits "policy(body)". ok is false when expr has no policy.
func splitPolicy(expr string) (p cantype.Policy, body string, ok bool, err error) {
	expr = strings.TrimSpace(expr)
	open := strings.IndexByte(expr, '(')
	if open < 0 {
		return 0, expr, false, nil
	}
	if !strings.HasSuffix(expr, ")") {
		return 0, "", false, fmt.Errorf("%w: %q is missing a closing parenthesis", ErrSyntax, expr)
	}
	p, err = cantype.ParsePolicy(strings.TrimSpace(expr[:open]))
	if err != nil {
		return 0, "", false, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return p, strings.TrimSpace(expr[open+1 : len(expr)-1]), true, nil
}

// parse turns an expression into a field subtype: a marker or a TypeObject.
func (d *Declarations) parse(s string) (any, error) {
	e, err := ParseExpr(s)
	if err != nil {
		return nil, err
	}
	m, err := d.lookup(e.Name)
	if err != nil {
		return nil, err
	}
	if !e.Wrapped {
		return m, nil
	}

	f := d.factory
	switch m := m.(type) {
	case *reflection.RecordType:
		// The record may not have all its fields yet.
		return f.Late(func() any { return f.AllOf(e.Policy, m) }), nil
	case cantype.TypeObject:
		return m, nil
	}
	return f.Variant(e.Policy, m), nil
}

func (d *Declarations) lookup(name string) (any, error) {
	if name == anyName {
		return cantype.Any, nil
	}
	if IsBuiltin(name) {
		return kind.Kind(name), nil
	}
	if rec, ok := d.records[name]; ok {
		return rec, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
}
