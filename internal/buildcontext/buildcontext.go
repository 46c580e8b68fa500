// Package buildcontext assembles in-memory tar build contexts.
//
// Image-build APIs consume the build context as a tar stream. A
// [Context] collects the generated Dockerfile and any supporting files
// into a tar archive held entirely in memory, so no temporary directory
// is needed.
package buildcontext

import (
	"archive/tar"
	"bytes"
	"fmt"

	"github.com/kilnhq/kiln/dockerfile"
)

// Conventional archive name for the Dockerfile inside a build context.
const DockerfileName = "Dockerfile"

// File mode recorded for archive entries.
const entryMode = 0644

// An in-memory tar build context.
//
// Files are added with [Context.Add]; [Context.Close] finalizes the
// archive. A closed context cannot be added to.
type Context struct {
	buf *bytes.Buffer
	tw  *tar.Writer
}

// Creates a new empty [Context].
func New() *Context {
	buf := &bytes.Buffer{}
	return &Context{
		buf: buf,
		tw:  tar.NewWriter(buf),
	}
}

// Adds a file to the archive under the given name.
func (c *Context) Add(name string, data []byte) error {
	header := &tar.Header{
		Name: name,
		Mode: entryMode,
		Size: int64(len(data)),
	}

	if err := c.tw.WriteHeader(header); err != nil {
		return fmt.Errorf("add %s: %w", name, err)
	}
	if _, err := c.tw.Write(data); err != nil {
		return fmt.Errorf("add %s: %w", name, err)
	}

	return nil
}

// Adds the rendered Dockerfile under its conventional archive name.
func (c *Context) AddDockerfile(df *dockerfile.Dockerfile) error {
	return c.Add(DockerfileName, []byte(df.String()))
}

// Finalizes the archive and returns its bytes.
func (c *Context) Close() (*bytes.Buffer, error) {
	if err := c.tw.Close(); err != nil {
		return nil, fmt.Errorf("close build context: %w", err)
	}
	return c.buf, nil
}
