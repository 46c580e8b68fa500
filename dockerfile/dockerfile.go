package dockerfile

import (
	"io"
	"strings"

	"github.com/opencontainers/go-digest"
)

// Accumulates formatted directive lines in call order.
//
// The zero value is usable; [New] additionally seeds parser-directive
// comments. The line sequence is owned exclusively by the Dockerfile:
// [Dockerfile.Include] copies lines, it never aliases them.
type Dockerfile struct {
	lines []string
}

// Configures parser directives emitted before any instruction.
//
// See https://docs.docker.com/reference/dockerfile/#parser-directives
// for the meaning of the syntax and escape directives.
type Options struct {
	Syntax string // Emits "# syntax: <value>" when non-empty.
	Escape string // Emits "# escape: <value>" when non-empty.
}

// Creates a new [Dockerfile].
//
// Parser-directive comments are appended first, syntax before escape,
// each only when the corresponding option is set. The values are not
// validated.
func New(opts Options) *Dockerfile {
	d := &Dockerfile{}

	if opts.Syntax != "" {
		d.append("# syntax: " + opts.Syntax)
	}
	if opts.Escape != "" {
		d.append("# escape: " + opts.Escape)
	}

	return d
}

// Renders the accumulated document.
//
// Each stored line carries its own trailing newline, so the lines are
// joined without any additional separator. Rendering is non-destructive
// and repeatable; the Dockerfile remains appendable afterwards.
func (d *Dockerfile) String() string {
	return strings.Join(d.lines, "")
}

// Returns the rendered document as an in-memory reader, for handing to
// image-build APIs that consume Dockerfiles as streams.
func (d *Dockerfile) Reader() io.Reader {
	return strings.NewReader(d.String())
}

// Returns the content digest of the rendered document.
//
// Useful for fingerprinting generated output, e.g. to decide whether a
// previously written Dockerfile is stale.
func (d *Dockerfile) Digest() digest.Digest {
	return digest.FromString(d.String())
}

// Returns the number of stored lines, parser-directive comments included.
func (d *Dockerfile) Len() int {
	return len(d.lines)
}

// Appends a copy of other's current lines, in order.
//
// The copy is a snapshot taken at call time: mutating either Dockerfile
// afterwards does not affect the other.
func (d *Dockerfile) Include(other *Dockerfile) {
	d.lines = append(d.lines, other.lines...)
}

// Stores one formatted directive line with its trailing newline.
func (d *Dockerfile) append(line string) {
	d.lines = append(d.lines, line+"\n")
}
