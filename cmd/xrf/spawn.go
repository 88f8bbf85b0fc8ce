package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"xrf/orchestrator"
	"xrf/project"
	"xrf/state"
)

func unpackSpawn(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	path := cmd.String("path")
	if path == "" {
		return fmt.Errorf("--path is required")
	}
	destination := cmd.String("destination")
	if destination == "" {
		return fmt.Errorf("--destination is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read spawn file %q: %w", path, err)
	}
	f, err := orchestrator.ReadSpawnFile(data)
	if err != nil {
		return fmt.Errorf("unable to decode spawn file %q: %w", path, err)
	}

	env.Log.Info("Unpacking spawn file",
		zap.String("path", path),
		zap.String("destination", destination),
		zap.Uint32("objects", f.Header.ObjectCount),
		zap.Uint32("levels", f.Header.LevelCount))

	if err := project.ExportSpawnProject(destination, f); err != nil {
		return fmt.Errorf("unable to write spawn project %q: %w", destination, err)
	}
	return nil
}

func packSpawn(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	source := cmd.String("source")
	if source == "" {
		return fmt.Errorf("--source is required")
	}
	output := cmd.String("output")
	if output == "" {
		return fmt.Errorf("--output is required")
	}

	f, err := project.ImportSpawnProject(source)
	if err != nil {
		return fmt.Errorf("unable to read spawn project %q: %w", source, err)
	}

	env.Log.Info("Packing spawn file", zap.String("source", source), zap.String("output", output))

	data, err := f.Write()
	if err != nil {
		return fmt.Errorf("unable to encode spawn file: %w", err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("unable to write spawn file %q: %w", output, err)
	}
	return nil
}
