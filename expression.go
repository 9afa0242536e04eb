package funcrouter

import (
	"errors"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// errNotAName is wrapped into an ExpressionError when an expression
// evaluates to something other than a non-blank string.
var errNotAName = errors.New("expression did not evaluate to a non-blank handler name")

// ExpressionResolver evaluates routing expressions against an input to
// produce a handler name. Compiled programs are cached by source text;
// the resolver is safe for concurrent use and is expected to be shared
// across routing calls.
type ExpressionResolver struct {
	programs sync.Map // expression text -> *vm.Program
}

// NewExpressionResolver returns a resolver with an empty program cache.
func NewExpressionResolver() *ExpressionResolver {
	return &ExpressionResolver{}
}

// Resolve compiles expression (or reuses a cached program) and
// evaluates it against root. The result must be a non-blank string.
//
// Root binding: a Message is exposed as `payload` and `headers`, with
// header keys addressable as attributes (headers.destination); a
// map[string]any is exposed directly, so its keys are attributes; any
// other value is exposed as `payload`.
func (r *ExpressionResolver) Resolve(expression string, root any) (string, error) {
	prog, err := r.program(expression)
	if err != nil {
		return "", err
	}
	out, err := expr.Run(prog, evalEnv(root))
	if err != nil {
		return "", err
	}
	name, ok := out.(string)
	if !ok || !hasText(name) {
		return "", errNotAName
	}
	return name, nil
}

func (r *ExpressionResolver) program(expression string) (*vm.Program, error) {
	if p, ok := r.programs.Load(expression); ok {
		return p.(*vm.Program), nil
	}
	p, err := expr.Compile(expression,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, err
	}
	cached, _ := r.programs.LoadOrStore(expression, p)
	return cached.(*vm.Program), nil
}

// evalEnv shapes the evaluation root for the expression engine.
func evalEnv(root any) map[string]any {
	switch v := root.(type) {
	case *Message:
		if v == nil {
			break
		}
		return evalEnv(*v)
	case Message:
		headers := v.Headers
		if headers == nil {
			headers = map[string]any{}
		}
		return map[string]any{"payload": v.Payload, "headers": headers}
	case map[string]any:
		return v
	}
	return map[string]any{"payload": root}
}
