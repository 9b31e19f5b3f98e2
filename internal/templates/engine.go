package templates

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-sprout/sprout"
	"github.com/go-sprout/sprout/registry/conversion"
	sproutstrings "github.com/go-sprout/sprout/registry/strings"
	"github.com/mailgun/raymond/v2"
	"github.com/mailgun/raymond/v2/ast"
	"github.com/mailgun/raymond/v2/parser"

	oerrors "github.com/stamp-dev/stamp/internal/errors"
)

// Helpers built into raymond.
var builtinHelpers = map[string]bool{
	"if":     true,
	"unless": true,
	"with":   true,
	"each":   true,
	"log":    true,
	"lookup": true,
	"equal":  true,
}

// Block helpers whose body runs against a different context.
var scopeHelpers = map[string]bool{
	"with": true,
	"each": true,
}

var safeStringType = reflect.TypeOf(raymond.SafeString(""))

// Engine parses and renders Handlebars placeholders in file names and
// contents against a flat string map: {{name}} interpolates a variable and
// {{toUpper name}} passes one to a helper. Helpers are the string and
// conversion functions of sprout. Output is never HTML-escaped.
type Engine struct {
	helpers map[string]interface{}
}

// NewEngine creates an engine with the sprout string and conversion helpers.
func NewEngine() (*Engine, error) {
	handler := sprout.New()
	if err := handler.AddRegistries(sproutstrings.NewRegistry(), conversion.NewRegistry()); err != nil {
		return nil, fmt.Errorf("registering template helpers: %w", err)
	}

	helpers := make(map[string]interface{})
	for name, fn := range handler.Build() {
		if builtinHelpers[name] {
			continue
		}
		if h, ok := wrapHelper(fn); ok {
			helpers[name] = h
		}
	}

	return &Engine{helpers: helpers}, nil
}

// wrapHelper adapts fn to raymond's helper calling convention: a fixed
// number of arguments raymond can supply and a single result, returned as a
// SafeString so it is not escaped.
func wrapHelper(fn any) (interface{}, bool) {
	v := reflect.ValueOf(fn)
	t := v.Type()
	// Zero-argument helpers are skipped so {{name}} always reads a variable.
	if t.Kind() != reflect.Func || t.IsVariadic() || t.NumIn() == 0 || t.NumOut() != 1 {
		return nil, false
	}

	in := make([]reflect.Type, t.NumIn())
	for i := range in {
		in[i] = t.In(i)
		switch in[i].Kind() {
		case reflect.String, reflect.Bool, reflect.Int, reflect.Interface:
		default:
			return nil, false
		}
	}

	wrapped := reflect.MakeFunc(reflect.FuncOf(in, []reflect.Type{safeStringType}, false),
		func(args []reflect.Value) []reflect.Value {
			out := v.Call(args)[0].Interface()
			return []reflect.Value{reflect.ValueOf(raymond.SafeString(fmt.Sprint(out)))}
		})

	return wrapped.Interface(), true
}

// ParseVariables returns the variable names referenced by text in order of
// first occurrence. It never executes the template.
//
// A plain {{name}} references name, even when a helper has that name. A
// helper call references each of its path arguments. {{lookup this "name"}}
// references name.
//
// name identifies the template in errors.
func (e *Engine) ParseVariables(name, text string) ([]string, error) {
	w, err := e.walk(name, text)
	if err != nil {
		return nil, err
	}
	return w.vars, nil
}

func (e *Engine) walk(name, text string) (*varWalker, error) {
	program, err := parser.Parse(text)
	if err != nil {
		return nil, oerrors.NewRenderError("parsing template", name, err)
	}

	w := &varWalker{
		helpers: e.helpers,
		seen:    make(map[string]bool),
		called:  make(map[string]bool),
	}
	w.program(program, 0)
	for _, v := range w.vars {
		if w.called[v] {
			w.fail("%q is used both as a variable and as a helper", v)
			break
		}
	}
	if w.err != nil {
		return nil, oerrors.NewRenderError("parsing template", name, w.err)
	}

	return w, nil
}

// Render executes text against ctx. A reference to a variable missing from
// ctx is an error rather than an empty string.
func (e *Engine) Render(name, text string, ctx map[string]string) (string, error) {
	w, err := e.walk(name, text)
	if err != nil {
		return "", err
	}

	var missing []string
	for _, v := range w.vars {
		if _, ok := ctx[v]; !ok {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return "", oerrors.NewRenderError(
			fmt.Sprintf("rendering template: no value for %s", strings.Join(missing, ", ")), name, nil)
	}

	tpl, err := raymond.Parse(text)
	if err != nil {
		return "", oerrors.NewRenderError("parsing template", name, err)
	}
	// A variable shadows the helper of the same name.
	for helper, fn := range e.helpers {
		if !w.seen[helper] {
			tpl.RegisterHelper(helper, fn)
		}
	}

	values := make(map[string]raymond.SafeString, len(ctx))
	for k, v := range ctx {
		values[k] = raymond.SafeString(v)
	}

	out, err := tpl.Exec(values)
	if err != nil {
		return "", oerrors.NewRenderError("rendering template", name, err)
	}

	return out, nil
}

// varWalker collects the root-context variables of a syntax tree.
//
// depth counts the enclosing blocks that rebind the context ({{#each}},
// {{#with}} and sections). A path names a root variable when its ../ count
// reaches that depth, or when it starts with @root.
type varWalker struct {
	helpers map[string]interface{}
	vars    []string
	seen    map[string]bool
	called  map[string]bool
	err     error
}

func (w *varWalker) add(name string) {
	if name == "" || w.seen[name] {
		return
	}
	w.seen[name] = true
	w.vars = append(w.vars, name)
}

func (w *varWalker) fail(format string, args ...any) {
	if w.err == nil {
		w.err = fmt.Errorf(format, args...)
	}
}

func (w *varWalker) program(p *ast.Program, depth int) {
	if p == nil {
		return
	}
	for _, node := range p.Body {
		w.node(node, depth)
	}
}

func (w *varWalker) node(node ast.Node, depth int) {
	switch n := node.(type) {
	case *ast.MustacheStatement:
		w.expression(n.Expression, depth)
	case *ast.BlockStatement:
		w.expression(n.Expression, depth)

		inner := depth
		if w.rebindsContext(n.Expression) {
			inner++
		}
		w.program(n.Program, inner)
		w.program(n.Inverse, depth)
	case *ast.PartialStatement:
		w.fail("partials are not supported")
	}
}

// helperCall returns the helper expr invokes. A sprout helper named without
// arguments is read as a variable instead.
func (w *varWalker) helperCall(expr *ast.Expression) (string, bool) {
	name, ok := helperName(expr)
	if !ok {
		return "", false
	}
	if builtinHelpers[name] {
		return name, true
	}
	hasArgs := len(expr.Params) > 0 || expr.Hash != nil
	return name, hasArgs && w.helpers[name] != nil
}

// rebindsContext reports whether a block's body runs against a new context.
func (w *varWalker) rebindsContext(expr *ast.Expression) bool {
	name, ok := w.helperCall(expr)
	if ok {
		return scopeHelpers[name]
	}
	// {{#name}} on a plain variable is a section over its value.
	return true
}

func (w *varWalker) expression(expr *ast.Expression, depth int) {
	if expr == nil {
		return
	}

	name, isHelper := w.helperCall(expr)

	switch {
	case isHelper && name == "lookup":
		w.lookup(expr, depth)
		return
	case isHelper:
		w.called[name] = true
	case len(expr.Params) > 0 || expr.Hash != nil:
		w.fail("unknown helper %q", pathOriginal(expr.Path))
		return
	default:
		w.path(expr.Path, depth)
	}

	for _, param := range expr.Params {
		w.value(param, depth)
	}
	if expr.Hash != nil {
		for _, pair := range expr.Hash.Pairs {
			w.value(pair.Val, depth)
		}
	}
}

// lookup handles {{lookup this "key"}}, which reads a root variable by a
// literal name. A computed key cannot be checked and is rejected.
func (w *varWalker) lookup(expr *ast.Expression, depth int) {
	if len(expr.Params) != 2 {
		w.fail("lookup takes an object and a key")
		return
	}

	if obj, ok := expr.Params[0].(*ast.PathExpression); ok && isContext(obj, depth) {
		key, ok := expr.Params[1].(*ast.StringLiteral)
		if !ok {
			w.fail("lookup on the template context needs a literal key")
			return
		}
		w.add(key.Value)
		return
	}

	for _, param := range expr.Params {
		w.value(param, depth)
	}
}

func (w *varWalker) value(node ast.Node, depth int) {
	switch n := node.(type) {
	case *ast.PathExpression:
		w.path(n, depth)
	case *ast.SubExpression:
		w.expression(n.Expression, depth)
	}
}

func (w *varWalker) path(node ast.Node, depth int) {
	p, ok := node.(*ast.PathExpression)
	if !ok {
		return
	}

	parts := p.Parts
	switch {
	case p.Data && len(parts) > 0 && parts[0] == "root":
		parts = parts[1:]
	case p.Data:
		// @index, @key and friends.
		return
	case p.Depth < depth:
		// Relative to a block's own context.
		return
	}

	switch len(parts) {
	case 0:
		w.fail("%q reads the whole template context; use a variable name", p.Original)
	case 1:
		w.add(parts[0])
	default:
		w.fail("%q reads a field of %q, but variables are plain strings", p.Original, parts[0])
	}
}

// isContext reports whether p denotes the root context itself.
func isContext(p *ast.PathExpression, depth int) bool {
	if p.Data {
		return len(p.Parts) == 1 && p.Parts[0] == "root"
	}
	return len(p.Parts) == 0 && p.Depth >= depth
}

func pathOriginal(node ast.Node) string {
	if p, ok := node.(*ast.PathExpression); ok {
		return p.Original
	}
	return fmt.Sprint(node)
}

// helperName returns the head of expr when it is a single-segment name.
func helperName(expr *ast.Expression) (string, bool) {
	p, ok := expr.Path.(*ast.PathExpression)
	if !ok || p.Data || p.Depth > 0 || len(p.Parts) != 1 {
		return "", false
	}
	return p.Parts[0], true
}
