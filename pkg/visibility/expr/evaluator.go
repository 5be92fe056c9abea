// Package expr implements a small expression language for visibility rules
// loaded from form definition files.
//
//	country == "US"
//	newsletter && !extras.beta
//	(plan == "pro" || seats != 1) && coupon != null
//
// Identifiers resolve against the current form values; dotted paths walk
// nested maps and the `extras.` prefix reads visibility.Context.Extras.
package expr

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-dynform/pkg/visibility"
)

// Evaluator parses rules on first use and caches the compiled form.
type Evaluator struct {
	mu       sync.RWMutex
	compiled map[string]program
}

var _ visibility.Evaluator = (*Evaluator)(nil)

// New returns an Evaluator with an empty compile cache.
func New() *Evaluator {
	return &Evaluator{compiled: make(map[string]program)}
}

// Eval evaluates rule against ctx. An empty rule is always true.
func (e *Evaluator) Eval(_ string, rule string, ctx visibility.Context) (bool, error) {
	prog, err := e.program(rule)
	if err != nil {
		return false, err
	}
	if prog == nil {
		return true, nil
	}
	return prog(ctx), nil
}

// Check parses rule without evaluating it so loaders can reject bad rules up
// front.
func (e *Evaluator) Check(rule string) error {
	_, err := e.program(rule)
	return err
}

func (e *Evaluator) program(rule string) (program, error) {
	key := strings.TrimSpace(rule)
	if key == "" {
		return nil, nil
	}

	e.mu.RLock()
	prog, ok := e.compiled[key]
	e.mu.RUnlock()
	if ok {
		return prog, nil
	}

	prog, err := Compile(key)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	if e.compiled == nil {
		e.compiled = make(map[string]program)
	}
	e.compiled[key] = prog
	e.mu.Unlock()
	return prog, nil
}

type program func(visibility.Context) bool

// Compile parses rule into an evaluable program.
func Compile(rule string) (func(visibility.Context) bool, error) {
	tokens, err := scan(rule)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	if p.done() {
		return nil, fmt.Errorf("visibility/expr: empty expression")
	}
	prog, err := p.or()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, fmt.Errorf("visibility/expr: unexpected token %q", p.peek().text)
	}
	return prog, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) done() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() token {
	if p.done() {
		return token{}
	}
	return p.tokens[p.pos]
}

func (p *parser) accept(kind tokenKind) bool {
	if p.done() || p.tokens[p.pos].kind != kind {
		return false
	}
	p.pos++
	return true
}

func (p *parser) or() (program, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.accept(tokOr) {
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		l, r := left, right
		left = func(ctx visibility.Context) bool { return l(ctx) || r(ctx) }
	}
	return left, nil
}

func (p *parser) and() (program, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.accept(tokAnd) {
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		l, r := left, right
		left = func(ctx visibility.Context) bool { return l(ctx) && r(ctx) }
	}
	return left, nil
}

func (p *parser) unary() (program, error) {
	if p.accept(tokNot) {
		inner, err := p.unary()
		if err != nil {
			return nil, err
		}
		return func(ctx visibility.Context) bool { return !inner(ctx) }, nil
	}
	return p.primary()
}

func (p *parser) primary() (program, error) {
	if p.accept(tokLParen) {
		inner, err := p.or()
		if err != nil {
			return nil, err
		}
		if !p.accept(tokRParen) {
			return nil, fmt.Errorf("visibility/expr: missing closing ')'")
		}
		return inner, nil
	}

	if p.done() {
		return nil, fmt.Errorf("visibility/expr: unexpected end of expression")
	}
	ident := p.peek()
	if ident.kind != tokIdent {
		return nil, fmt.Errorf("visibility/expr: expected identifier, got %q", ident.text)
	}
	p.pos++

	negate := false
	switch {
	case p.accept(tokEq):
	case p.accept(tokNeq):
		negate = true
	default:
		path := ident.text
		return func(ctx visibility.Context) bool {
			value, ok := resolve(ctx, path)
			return ok && truthy(value)
		}, nil
	}

	lit := p.peek()
	if p.done() || !lit.kind.literal() {
		return nil, fmt.Errorf("visibility/expr: expected literal after %q", ident.text)
	}
	p.pos++

	match, err := matcher(lit)
	if err != nil {
		return nil, err
	}
	path := ident.text
	return func(ctx visibility.Context) bool {
		value, _ := resolve(ctx, path)
		return match(value) != negate
	}, nil
}

func matcher(lit token) (func(any) bool, error) {
	switch lit.kind {
	case tokNull:
		return func(v any) bool { return v == nil }, nil
	case tokBool:
		want := lit.text == "true"
		return func(v any) bool {
			got, ok := asBool(v)
			return ok && got == want
		}, nil
	case tokNumber:
		want, err := strconv.ParseFloat(lit.text, 64)
		if err != nil {
			return nil, fmt.Errorf("visibility/expr: invalid number %q", lit.text)
		}
		return func(v any) bool {
			got, ok := asNumber(v)
			return ok && got == want
		}, nil
	default:
		want := lit.text
		return func(v any) bool {
			s, ok := v.(string)
			return ok && s == want
		}, nil
	}
}

func resolve(ctx visibility.Context, path string) (any, bool) {
	if value, ok := ctx.Values[path]; ok {
		return value, true
	}
	var current any = map[string]any(ctx.Values)
	segments := strings.Split(path, ".")
	if segments[0] == "extras" && len(segments) > 1 {
		current = ctx.Extras
		segments = segments[1:]
	}
	for _, segment := range segments {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(t)
		if err == nil {
			return b
		}
		return t != ""
	default:
		if n, ok := asNumber(v); ok {
			return n != 0
		}
		return true
	}
}

func asBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return b, err == nil
	default:
		return false, false
	}
}

func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
