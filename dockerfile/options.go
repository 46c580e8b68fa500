package dockerfile

// Configures an optional clause on a directive method.
//
// Each directive documents the options it honors; options that do not
// apply to a directive are ignored, consistent with the package's
// no-validation contract.
type Option func(*clauses)

// Optional clause values collected from a directive call.
type clauses struct {
	chown      string
	from       string
	as         string
	platform   string
	group      string
	proto      string
	def        string
	hasDefault bool
}

// Resolves a directive's options into clause values.
func resolve(opts []Option) clauses {
	var c clauses
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Sets the --chown owner on ADD and COPY.
func WithChown(owner string) Option {
	return func(c *clauses) { c.chown = owner }
}

// Sets the --from source stage on COPY.
func WithFrom(stage string) Option {
	return func(c *clauses) { c.from = stage }
}

// Sets the stage alias ("as <name>") on FROM.
func WithAs(name string) Option {
	return func(c *clauses) { c.as = name }
}

// Sets the --platform clause on FROM.
func WithPlatform(platform string) Option {
	return func(c *clauses) { c.platform = platform }
}

// Sets the group on USER ("<user>:<group>").
func WithGroup(group string) Option {
	return func(c *clauses) { c.group = group }
}

// Sets the protocol on EXPOSE. The default is "tcp".
func WithProto(protocol string) Option {
	return func(c *clauses) { c.proto = protocol }
}

// Sets the default value on ARG. The value is JSON-quoted in the output;
// an empty string still emits a default (`ARG NAME=""`).
func WithDefault(value string) Option {
	return func(c *clauses) {
		c.def = value
		c.hasDefault = true
	}
}
