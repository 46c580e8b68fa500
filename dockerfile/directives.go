package dockerfile

import (
	"fmt"
	"slices"
)

// Appends an ADD directive. Honors [WithChown].
func (d *Dockerfile) Add(src, dest string, opts ...Option) {
	c := resolve(opts)

	chown := ""
	if c.chown != "" {
		chown = "--chown=" + c.chown + " "
	}

	d.append(fmt.Sprintf("ADD %s%s %s", chown, src, dest))
}

// Appends an ARG directive. Honors [WithDefault]; the default value is
// JSON-quoted.
func (d *Dockerfile) Arg(name string, opts ...Option) {
	c := resolve(opts)

	def := ""
	if c.hasDefault {
		def = "=" + jsonQuote(c.def)
	}

	d.append("ARG " + name + def)
}

// Appends a COPY directive. Honors [WithFrom] and [WithChown].
//
// A single-path source renders as "<src> <dest>"; a list source renders
// the paths and the destination together as one JSON array. Returns
// [ErrInvalidSource] for a zero-value [Source]; nothing is appended in
// that case.
func (d *Dockerfile) Copy(src Source, dest string, opts ...Option) error {
	c := resolve(opts)

	var payload string
	switch src.form {
	case formSingle:
		payload = src.path + " " + dest
	case formList:
		payload = jsonList(append(slices.Clone(src.paths), dest))
	default:
		return ErrInvalidSource
	}

	from := ""
	if c.from != "" {
		from = "--from=" + c.from + " "
	}

	chown := ""
	if c.chown != "" {
		chown = "--chown=" + c.chown + " "
	}

	d.append("COPY " + from + chown + payload)
	return nil
}

// Appends a CMD directive.
//
// Uses the shell form when only command is given and the exec form (a
// JSON array) when additional arguments are present.
func (d *Dockerfile) Cmd(command string, args ...string) {
	d.append("CMD " + commandForm(command, args))
}

// Appends an ENTRYPOINT directive.
//
// Uses the shell form when only command is given and the exec form (a
// JSON array) when additional arguments are present.
func (d *Dockerfile) Entrypoint(command string, args ...string) {
	d.append("ENTRYPOINT " + commandForm(command, args))
}

// Appends an ENV directive for a single variable. The value is always
// JSON-quoted. Multiple variables in one ENV line are not supported.
func (d *Dockerfile) Env(name, value string) {
	d.append("ENV " + name + "=" + jsonQuote(value))
}

// Appends an EXPOSE directive. Honors [WithProto]; the protocol defaults
// to "tcp".
func (d *Dockerfile) Expose(port int, opts ...Option) {
	c := resolve(opts)

	proto := c.proto
	if proto == "" {
		proto = "tcp"
	}

	d.append(fmt.Sprintf("EXPOSE %d/%s", port, proto))
}

// Appends a FROM directive. Honors [WithPlatform] and [WithAs].
//
// The platform clause is emitted immediately before the base image with
// no separating space; callers wanting a separator must include it in
// the platform value.
func (d *Dockerfile) From(base string, opts ...Option) {
	c := resolve(opts)

	platform := ""
	if c.platform != "" {
		platform = "--platform=" + c.platform
	}

	as := ""
	if c.as != "" {
		as = " as " + c.as
	}

	d.append("FROM " + platform + base + as)
}

// Appends a LABEL directive for a single label. Both key and value are
// JSON-quoted. Multiple labels in one LABEL line are not supported.
func (d *Dockerfile) Label(key, value string) {
	d.append("LABEL " + jsonQuote(key) + "=" + jsonQuote(value))
}

// Appends a RUN directive.
//
// Uses the shell form when only command is given and the exec form (a
// JSON array) when additional arguments are present.
func (d *Dockerfile) Run(command string, args ...string) {
	d.append("RUN " + commandForm(command, args))
}

// Appends a SHELL directive. Always uses the JSON array form, as the
// grammar requires.
func (d *Dockerfile) Shell(executable string, params ...string) {
	d.append("SHELL " + jsonList(prepend(executable, params)))
}

// Appends a USER directive. Honors [WithGroup].
func (d *Dockerfile) User(user string, opts ...Option) {
	c := resolve(opts)

	group := ""
	if c.group != "" {
		group = ":" + c.group
	}

	d.append("USER " + user + group)
}

// Appends a VOLUME directive. Always uses the JSON list form.
func (d *Dockerfile) Volume(path string, additional ...string) {
	d.append("VOLUME " + jsonList(prepend(path, additional)))
}

// Appends a WORKDIR directive.
func (d *Dockerfile) Workdir(path string) {
	d.append("WORKDIR " + path)
}

// Formats a command in shell form when args is empty and exec form
// otherwise.
func commandForm(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return jsonList(prepend(command, args))
}

// Returns a new slice with head followed by rest.
func prepend(head string, rest []string) []string {
	return append([]string{head}, rest...)
}
