package manifest

import (
	"fmt"
	"maps"
	"slices"

	"github.com/containerd/errdefs"
	"github.com/containerd/platforms"

	"github.com/kilnhq/kiln/dockerfile"
)

// Controls recipe compilation.
type CompileOptions struct {
	// Overrides for the default values of global build args. Only args
	// declared in the recipe are affected; unknown keys are ignored.
	Args map[string]string
}

// Compiles the recipe into a Dockerfile.
//
// Global build args are emitted first, in name order for deterministic
// output, then each stage in declaration order. The returned Dockerfile
// remains appendable by the caller.
func (r *Recipe) Compile(opts CompileOptions) (*dockerfile.Dockerfile, error) {
	df := dockerfile.New(dockerfile.Options{Syntax: r.Syntax, Escape: r.Escape})

	for _, name := range slices.Sorted(maps.Keys(r.Args)) {
		value := r.Args[name]
		if override, ok := opts.Args[name]; ok {
			value = override
		}

		if value == "" {
			df.Arg(name)
		} else {
			df.Arg(name, dockerfile.WithDefault(value))
		}
	}

	for i, stage := range r.Stages {
		if err := compileStage(df, stage); err != nil {
			return nil, fmt.Errorf("%w: stage %s: %w", ErrCompile, stageLabel(stage.Name, i), err)
		}
	}

	return df, nil
}

// Compiles a single stage: its FROM directive, then its steps in order.
func compileStage(df *dockerfile.Dockerfile, stage Stage) error {
	if stage.From == "" {
		return fmt.Errorf("stage requires a base image: %w", errdefs.ErrInvalidArgument)
	}

	var opts []dockerfile.Option

	if stage.Platform != "" {
		p, err := stage.ParsePlatform()
		if err != nil {
			return fmt.Errorf("platform %q: %w", stage.Platform, err)
		}
		// The FROM platform clause is joined to the base image with no
		// separating space; pad the value so the rendered line stays
		// parseable.
		opts = append(opts, dockerfile.WithPlatform(platforms.Format(p)+" "))
	}

	if stage.Name != "" {
		opts = append(opts, dockerfile.WithAs(stage.Name))
	}

	df.From(stage.From, opts...)

	for i, step := range stage.Steps {
		if err := compileStep(df, step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	return nil
}

// One instruction a step can emit.
type emitter struct {
	name string
	emit func(*dockerfile.Dockerfile) error
}

// Compiles a single step, requiring exactly one instruction.
func compileStep(df *dockerfile.Dockerfile, step Step) error {
	es := step.emitters()

	if len(es) == 0 {
		return fmt.Errorf("step has no instruction: %w", errdefs.ErrInvalidArgument)
	}
	if len(es) > 1 {
		return fmt.Errorf("step has multiple instructions (%s and %s): %w", es[0].name, es[1].name, errdefs.ErrInvalidArgument)
	}

	if err := es[0].emit(df); err != nil {
		return fmt.Errorf("%s: %w", es[0].name, err)
	}
	return nil
}

// Collects the instructions present on a step.
func (s Step) emitters() []emitter {
	var es []emitter

	if s.Run.isSet() {
		es = append(es, emitter{"run", emitCommand(s.Run, (*dockerfile.Dockerfile).Run)})
	}
	if s.Cmd.isSet() {
		es = append(es, emitter{"cmd", emitCommand(s.Cmd, (*dockerfile.Dockerfile).Cmd)})
	}
	if s.Entrypoint.isSet() {
		es = append(es, emitter{"entrypoint", emitCommand(s.Entrypoint, (*dockerfile.Dockerfile).Entrypoint)})
	}
	if len(s.Shell) > 0 {
		es = append(es, emitter{"shell", func(df *dockerfile.Dockerfile) error {
			df.Shell(s.Shell[0], s.Shell[1:]...)
			return nil
		}})
	}
	if s.Copy != nil {
		es = append(es, emitter{"copy", s.Copy.emit})
	}
	if s.Add != nil {
		es = append(es, emitter{"add", s.Add.emit})
	}
	if len(s.Env) > 0 {
		es = append(es, emitter{"env", func(df *dockerfile.Dockerfile) error {
			for _, name := range slices.Sorted(maps.Keys(s.Env)) {
				df.Env(name, s.Env[name])
			}
			return nil
		}})
	}
	if s.Arg != nil {
		es = append(es, emitter{"arg", s.Arg.emit})
	}
	if s.Label != nil {
		es = append(es, emitter{"label", s.Label.emit})
	}
	if s.Expose != nil {
		es = append(es, emitter{"expose", s.Expose.emit})
	}
	if s.Workdir != "" {
		es = append(es, emitter{"workdir", func(df *dockerfile.Dockerfile) error {
			df.Workdir(s.Workdir)
			return nil
		}})
	}
	if s.User != nil {
		es = append(es, emitter{"user", s.User.emit})
	}
	if len(s.Volume) > 0 {
		es = append(es, emitter{"volume", func(df *dockerfile.Dockerfile) error {
			df.Volume(s.Volume[0], s.Volume[1:]...)
			return nil
		}})
	}

	return es
}

// Builds an emitter for a run, cmd, or entrypoint instruction. The exec
// form passes its argv through to the directive method, which picks the
// shell form for a single-element argv.
func emitCommand(c Command, method func(*dockerfile.Dockerfile, string, ...string)) func(*dockerfile.Dockerfile) error {
	return func(df *dockerfile.Dockerfile) error {
		if len(c.Argv) > 0 {
			method(df, c.Argv[0], c.Argv[1:]...)
			return nil
		}
		method(df, c.Line)
		return nil
	}
}

// Emits a COPY directive.
func (c *CopyStep) emit(df *dockerfile.Dockerfile) error {
	if !c.Src.isSet() {
		return fmt.Errorf("requires src: %w", errdefs.ErrInvalidArgument)
	}
	if c.Dest == "" {
		return fmt.Errorf("requires dest: %w", errdefs.ErrInvalidArgument)
	}

	var opts []dockerfile.Option
	if c.From != "" {
		opts = append(opts, dockerfile.WithFrom(c.From))
	}
	if c.Chown != "" {
		opts = append(opts, dockerfile.WithChown(c.Chown))
	}

	return df.Copy(c.Src.source(), c.Dest, opts...)
}

// Emits an ADD directive.
func (a *AddStep) emit(df *dockerfile.Dockerfile) error {
	if a.Src == "" || a.Dest == "" {
		return fmt.Errorf("requires src and dest: %w", errdefs.ErrInvalidArgument)
	}

	var opts []dockerfile.Option
	if a.Chown != "" {
		opts = append(opts, dockerfile.WithChown(a.Chown))
	}

	df.Add(a.Src, a.Dest, opts...)
	return nil
}

// Emits an ARG directive.
func (a *ArgStep) emit(df *dockerfile.Dockerfile) error {
	if a.Name == "" {
		return fmt.Errorf("requires name: %w", errdefs.ErrInvalidArgument)
	}

	if a.Default != nil {
		df.Arg(a.Name, dockerfile.WithDefault(*a.Default))
	} else {
		df.Arg(a.Name)
	}
	return nil
}

// Emits a LABEL directive.
func (l *LabelStep) emit(df *dockerfile.Dockerfile) error {
	if l.Key == "" {
		return fmt.Errorf("requires key: %w", errdefs.ErrInvalidArgument)
	}

	df.Label(l.Key, l.Value)
	return nil
}

// Emits an EXPOSE directive, defaulting the protocol to tcp.
func (e *ExposeStep) emit(df *dockerfile.Dockerfile) error {
	if e.Port == 0 {
		return fmt.Errorf("requires port: %w", errdefs.ErrInvalidArgument)
	}

	var opts []dockerfile.Option
	if e.Protocol != "" {
		opts = append(opts, dockerfile.WithProto(e.Protocol))
	}

	df.Expose(e.Port, opts...)
	return nil
}

// Emits a USER directive.
func (u *UserStep) emit(df *dockerfile.Dockerfile) error {
	if u.Name == "" {
		return fmt.Errorf("requires name: %w", errdefs.ErrInvalidArgument)
	}

	var opts []dockerfile.Option
	if u.Group != "" {
		opts = append(opts, dockerfile.WithGroup(u.Group))
	}

	df.User(u.Name, opts...)
	return nil
}

// Returns a label for a stage, preferring the name when available and
// falling back to the 1-based index.
func stageLabel(name string, index int) string {
	if name != "" {
		return fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("%d", index+1)
}
