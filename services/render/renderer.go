package render

import (
	"bytes"
	"text/template"

	"github.com/pkg/errors"

	"github.com/flowstack/resendstack/interfaces"
)

// contextRenderer substitutes {{ ... }} expressions against the variables
// of a single run. Unknown variables are an error, not an empty string: a
// half-rendered value must never reach the provider.
type contextRenderer struct {
	vars map[string]interface{}
}

func NewRenderer(vars map[string]interface{}) interfaces.TemplateRenderer {
	if vars == nil {
		vars = map[string]interface{}{}
	}
	return &contextRenderer{vars: vars}
}

func (r *contextRenderer) String(expr string) (string, error) {
	if expr == "" {
		return "", nil
	}

	tmpl, err := template.New("expr").Option("missingkey=error").Parse(expr)
	if err != nil {
		return "", errors.Wrap(err, "invalid template expression")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.vars); err != nil {
		return "", errors.Wrap(err, "cannot resolve template expression")
	}
	return buf.String(), nil
}

func (r *contextRenderer) StringSlice(exprs []string) ([]string, error) {
	if exprs == nil {
		return nil, nil
	}

	rendered := make([]string, 0, len(exprs))
	for _, expr := range exprs {
		value, err := r.String(expr)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, value)
	}
	return rendered, nil
}

func (r *contextRenderer) StringMap(exprs map[string]string) (map[string]string, error) {
	if exprs == nil {
		return nil, nil
	}

	rendered := make(map[string]string, len(exprs))
	for key, expr := range exprs {
		value, err := r.String(expr)
		if err != nil {
			return nil, err
		}
		rendered[key] = value
	}
	return rendered, nil
}
