package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"xrf/state"
	"xrf/xrdb/xrarchive"
)

func unpackArchive(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	archives := cmd.StringSlice("archive")
	if len(archives) == 0 {
		return fmt.Errorf("at least one --archive path is required")
	}
	destination := cmd.String("destination")
	if destination == "" {
		return fmt.Errorf("--destination is required")
	}
	workers := int(cmd.Int("parallel"))
	if workers == 0 {
		workers = env.Cfg.Archive.Workers
	}

	for _, path := range archives {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to read archive %q: %w", path, err)
		}
		_, descriptorPayload, headerLen, err := xrarchive.ReadHeaderChunks(data)
		if err != nil {
			return fmt.Errorf("unable to parse archive header %q: %w", path, err)
		}
		table, err := xrarchive.ReadDescriptorTable(descriptorPayload)
		if err != nil {
			return fmt.Errorf("unable to decode descriptor table %q: %w", path, err)
		}

		env.Log.Info("Unpacking archive",
			zap.String("archive", path),
			zap.String("destination", destination),
			zap.Int("entries", len(table)),
			zap.Int("header_len", headerLen),
			zap.Int("workers", workers))

		src := bytes.NewReader(data)
		if workers > 1 {
			err = xrarchive.UnpackPool(src, table, destination, workers)
		} else {
			err = xrarchive.UnpackSerial(src, table, destination)
		}
		if err != nil {
			return fmt.Errorf("unable to unpack archive %q: %w", path, err)
		}
	}
	return nil
}

func packArchive(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	source := cmd.String("source")
	if source == "" {
		return fmt.Errorf("--source is required")
	}
	output := cmd.String("output")
	if output == "" {
		return fmt.Errorf("--output is required")
	}
	entryPoint := cmd.String("entry-point")
	if entryPoint == "" {
		entryPoint = "gamedata"
	}

	env.Log.Info("Building archive", zap.String("source", source), zap.String("output", output))

	data, err := xrarchive.BuildArchive(source, entryPoint)
	if err != nil {
		return fmt.Errorf("unable to build archive from %q: %w", source, err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("unable to write archive %q: %w", output, err)
	}
	return nil
}
