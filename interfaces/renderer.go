package interfaces

// TemplateRenderer substitutes template expressions embedded in task
// configuration values against the variables of a single run. A renderer
// is bound to one run's variables; implementations must be side-effect
// free beyond reading those variables.
type TemplateRenderer interface {
	String(expr string) (string, error)
	StringSlice(exprs []string) ([]string, error)
	StringMap(exprs map[string]string) (map[string]string, error)
}
