package manifest

import (
	"fmt"
	"io"
	"os"

	"github.com/containerd/errdefs"
	"github.com/containerd/platforms"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"gopkg.in/yaml.v3"

	"github.com/kilnhq/kiln/dockerfile"
)

// A recipe manifest describing the Dockerfile to generate.
type Recipe struct {
	Syntax string            `yaml:"syntax,omitempty"` // Optional "# syntax" parser directive.
	Escape string            `yaml:"escape,omitempty"` // Optional "# escape" parser directive.
	Args   map[string]string `yaml:"args,omitempty"`   // Global build args; empty value means no default.
	Stages []Stage           `yaml:"stages"`           // Stages in declaration order.
}

// One build stage of a recipe.
type Stage struct {
	Name     string `yaml:"name,omitempty"`     // Stage alias, referenced by cross-stage copies.
	From     string `yaml:"from"`               // Base image. Required.
	Platform string `yaml:"platform,omitempty"` // Target platform (e.g. "linux/amd64").
	Steps    []Step `yaml:"steps,omitempty"`    // Steps in declaration order.
}

// Parses the stage's platform string into a normalized OCI platform.
func (s Stage) ParsePlatform() (ocispec.Platform, error) {
	return platforms.Parse(s.Platform)
}

// One step of a stage. Exactly one instruction field must be set; the
// compiler rejects steps with zero or several.
type Step struct {
	Run        Command           `yaml:"run,omitempty"`
	Cmd        Command           `yaml:"cmd,omitempty"`
	Entrypoint Command           `yaml:"entrypoint,omitempty"`
	Shell      []string          `yaml:"shell,omitempty"`
	Copy       *CopyStep         `yaml:"copy,omitempty"`
	Add        *AddStep          `yaml:"add,omitempty"`
	Env        map[string]string `yaml:"env,omitempty"`
	Arg        *ArgStep          `yaml:"arg,omitempty"`
	Label      *LabelStep        `yaml:"label,omitempty"`
	Expose     *ExposeStep       `yaml:"expose,omitempty"`
	Workdir    string            `yaml:"workdir,omitempty"`
	User       *UserStep         `yaml:"user,omitempty"`
	Volume     []string          `yaml:"volume,omitempty"`
}

// A command in shell form (YAML scalar) or exec form (YAML sequence).
type Command struct {
	Line string   // Shell form.
	Argv []string // Exec form.
}

// Decodes a scalar into the shell form and a sequence into the exec form.
func (c *Command) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&c.Line)
	case yaml.SequenceNode:
		return node.Decode(&c.Argv)
	}
	return fmt.Errorf("command must be a string or a sequence: %w", errdefs.ErrInvalidArgument)
}

// Whether either form is present.
func (c Command) isSet() bool {
	return c.Line != "" || len(c.Argv) > 0
}

// The source of a copy step: a single path (YAML scalar) or a path list
// (YAML sequence).
type PathSource struct {
	path  string
	paths []string
	list  bool
}

// Decodes a scalar into a single path and a sequence into a path list.
func (p *PathSource) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&p.path)
	case yaml.SequenceNode:
		p.list = true
		return node.Decode(&p.paths)
	}
	return fmt.Errorf("copy source must be a path or a path list: %w", errdefs.ErrInvalidArgument)
}

// Whether a source was given.
func (p PathSource) isSet() bool {
	return p.list || p.path != ""
}

// Converts the parsed source into the builder's sum type.
func (p PathSource) source() dockerfile.Source {
	if p.list {
		return dockerfile.SrcList(p.paths...)
	}
	return dockerfile.Src(p.path)
}

// A copy instruction.
type CopyStep struct {
	Src   PathSource `yaml:"src"`
	Dest  string     `yaml:"dest"`
	From  string     `yaml:"from,omitempty"`
	Chown string     `yaml:"chown,omitempty"`
}

// An add instruction.
type AddStep struct {
	Src   string `yaml:"src"`
	Dest  string `yaml:"dest"`
	Chown string `yaml:"chown,omitempty"`
}

// A build arg declaration. A nil Default declares the arg without a
// default value.
type ArgStep struct {
	Name    string  `yaml:"name"`
	Default *string `yaml:"default,omitempty"`
}

// A label instruction.
type LabelStep struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// An expose instruction. An empty protocol defaults to "tcp".
type ExposeStep struct {
	Port     int    `yaml:"port"`
	Protocol string `yaml:"protocol,omitempty"`
}

// A user instruction.
type UserStep struct {
	Name  string `yaml:"name"`
	Group string `yaml:"group,omitempty"`
}

// Reads and decodes a recipe manifest.
//
// Decoding is strict: unknown fields are an error, catching misspelled
// instruction keys early.
func Load(r io.Reader) (*Recipe, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var rec Recipe
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return &rec, nil
}

// Reads and decodes a recipe manifest from a file.
func LoadFile(path string) (*Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	defer f.Close()

	rec, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rec, nil
}
