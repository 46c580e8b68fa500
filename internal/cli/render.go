package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/kilnhq/kiln/dockerfile"
	"github.com/kilnhq/kiln/internal/manifest"
	"github.com/kilnhq/kiln/internal/paths"
)

// Represents the 'kiln render' command.
type RenderCmd struct {
	Manifest string `short:"m" help:"Path to the recipe manifest. Defaults to ./kiln.yaml, then the user-level fallback." placeholder:"PATH"`
	Output   string `short:"o" default:"-" help:"Output path, or - for stdout." placeholder:"PATH"`
	EnvFile  string `help:"Env file providing build arg overrides." placeholder:"PATH"`
	Digest   bool   `help:"Log the content digest of the rendered Dockerfile."`
}

// Executes the render command.
//
// Loads the recipe manifest, merges build arg overrides from the env
// file, compiles the recipe, and writes the rendered Dockerfile.
func (c *RenderCmd) Run(ctx context.Context) error {
	path := c.Manifest
	if path == "" {
		found, err := paths.FindManifest()
		if err != nil {
			return err
		}
		path = found
	}

	slog.Debug("loading recipe", "manifest", path)

	rec, err := manifest.LoadFile(path)
	if err != nil {
		return err
	}

	var args map[string]string
	if c.EnvFile != "" {
		args, err = godotenv.Read(c.EnvFile)
		if err != nil {
			return fmt.Errorf("read env file %s: %w", c.EnvFile, err)
		}
		slog.Debug("loaded build arg overrides", "env-file", c.EnvFile, "count", len(args))
	}

	df, err := rec.Compile(manifest.CompileOptions{Args: args})
	if err != nil {
		return err
	}

	if c.Digest {
		slog.Info("rendered recipe", "manifest", path, "digest", df.Digest())
	}

	return c.write(df)
}

// Writes the rendered Dockerfile to the configured output.
func (c *RenderCmd) write(df *dockerfile.Dockerfile) error {
	if c.Output == "-" {
		_, err := fmt.Print(df.String())
		return err
	}

	if err := os.WriteFile(c.Output, []byte(df.String()), paths.DefaultFileMode); err != nil {
		return fmt.Errorf("write %s: %w", c.Output, err)
	}

	slog.Info("wrote Dockerfile", "output", c.Output)
	return nil
}
