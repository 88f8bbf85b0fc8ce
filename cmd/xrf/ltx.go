package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"xrf/ltx"
	"xrf/state"
)

func findLtxFiles(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".ltx") {
			return nil
		}
		out = append(out, path)
		return nil
	})
	return out, err
}

func compileSchemaSet(schemaDir string) (map[string]*ltx.Schema, error) {
	if schemaDir == "" {
		return map[string]*ltx.Schema{}, nil
	}
	files, err := findLtxFiles(schemaDir)
	if err != nil {
		return nil, fmt.Errorf("unable to walk schema directory %q: %w", schemaDir, err)
	}
	schemas := make(map[string]*ltx.Schema)
	for _, f := range files {
		doc, err := ltx.ResolveIncludes(f)
		if err != nil {
			return nil, fmt.Errorf("unable to load schema %q: %w", f, err)
		}
		compiled, err := ltx.CompileSchemas(doc, f)
		if err != nil {
			return nil, fmt.Errorf("unable to compile schema %q: %w", f, err)
		}
		for name, s := range compiled {
			schemas[name] = s
		}
	}
	return schemas, nil
}

func verifyLtx(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	path := cmd.String("path")
	if path == "" {
		return fmt.Errorf("--path is required")
	}

	schemas, err := compileSchemaSet(env.Cfg.Ltx.SchemaDir)
	if err != nil {
		return err
	}

	files, err := findLtxFiles(path)
	if err != nil {
		return fmt.Errorf("unable to walk %q: %w", path, err)
	}

	var errs error
	for _, f := range files {
		doc, err := ltx.ResolveIncludes(f)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", f, err))
			continue
		}
		if err := ltx.ResolveInheritance(doc); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", f, err))
			continue
		}
		if err := ltx.Validate(doc, schemas, f); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	env.Log.Info("Verified LTX files", zap.String("path", path), zap.Int("count", len(files)))
	return errs
}

func formatLtx(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	path := cmd.String("path")
	if path == "" {
		return fmt.Errorf("--path is required")
	}
	write := cmd.Bool("write")

	files, err := findLtxFiles(path)
	if err != nil {
		return fmt.Errorf("unable to walk %q: %w", path, err)
	}

	var errs error
	dirty := 0
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to read %q: %w", f, err))
			continue
		}
		doc, err := ltx.Parse(string(data))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", f, err))
			continue
		}
		formatted := ltx.Format(doc)
		if formatted == string(data) {
			continue
		}
		dirty++
		if write {
			if err := os.WriteFile(f, []byte(formatted), 0o644); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("unable to write %q: %w", f, err))
				continue
			}
			env.Log.Info("Reformatted", zap.String("file", f))
		} else {
			env.Log.Warn("Not canonically formatted", zap.String("file", f))
		}
	}

	if !write && dirty > 0 {
		return fmt.Errorf("%d file(s) are not canonically formatted; rerun with --write", dirty)
	}
	return errs
}
