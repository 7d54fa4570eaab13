// Package exprhook builds projection hooks from expr-lang expressions. The
// projection map is the expression environment, so hooks declared here can
// compute over whatever keys the view selected. Programs compile once, at
// declaration time; projection calls only run them.
package exprhook

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	dico "github.com/dico-go/dico"
)

// Derive returns a hook adding key to the projection with the expression's
// result, e.g. Derive("full_name", `firstname + " " + lastname`). A run-time
// evaluation error aborts the projection.
func Derive(key, expression string) (dico.Hook, error) {
	program, err := compile(expression)
	if err != nil {
		return dico.Hook{}, err
	}
	return dico.Hook{
		Name: "derive " + key,
		Apply: func(m map[string]any) (map[string]any, error) {
			v, err := exprlang.Run(program, m)
			if err != nil {
				return nil, err
			}
			m[key] = v
			return m, nil
		},
	}, nil
}

// MustDerive is Derive panicking on compile errors; intended for
// declaration-time hook lists.
func MustDerive(key, expression string) dico.Hook {
	h, err := Derive(key, expression)
	if err != nil {
		panic(err)
	}
	return h
}

// When gates another hook behind a boolean expression over the projection.
// When the predicate is false the projection passes through untouched.
func When(expression string, h dico.Hook) (dico.Hook, error) {
	program, err := compile(expression)
	if err != nil {
		return dico.Hook{}, err
	}
	return dico.Hook{
		Name: "when " + expression + ": " + h.Name,
		Apply: func(m map[string]any) (map[string]any, error) {
			v, err := exprlang.Run(program, m)
			if err != nil {
				return nil, err
			}
			ok, isBool := v.(bool)
			if !isBool {
				return nil, fmt.Errorf("exprhook: predicate %q evaluated to %T, want bool", expression, v)
			}
			if !ok {
				return m, nil
			}
			return h.Apply(m)
		},
	}, nil
}

// MustWhen is When panicking on compile errors.
func MustWhen(expression string, h dico.Hook) dico.Hook {
	out, err := When(expression, h)
	if err != nil {
		panic(err)
	}
	return out
}

func compile(expression string) (*exprvm.Program, error) {
	if expression == "" {
		return nil, fmt.Errorf("exprhook: expression must not be empty")
	}
	program, err := exprlang.Compile(expression,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("exprhook: compile %q: %w", expression, err)
	}
	return program, nil
}
