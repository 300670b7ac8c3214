package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/notebook/pkg/adapters/sqlite"
	"github.com/aretw0/notebook/pkg/core"
)

// Init opens the storage backend selected by the options.
// The 'uri' argument is adapter-specific (a file path for 'sqlite').
//
// It returns the configured core.Repository, ready for use.
func Init(ctx context.Context, uri string, opts ...Option) (core.Repository, error) {
	o := apply(opts)

	// 1. Check for injected repository
	if o.repository != nil {
		return o.repository, nil
	}

	// 2. Initialize based on Adapter
	switch o.adapter {
	case "sqlite":
		return initSQLite(ctx, uri, o)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// initSQLite resolves the database path and opens the SQLite store.
func initSQLite(ctx context.Context, path string, o *options) (core.Repository, error) {
	tempDir, _ := o.config["temp_dir"].(bool)
	isReadOnly, _ := o.config["read_only"].(bool)
	// Default to true (safe) if not present.
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	// Bypass Safety if:
	// 1. ReadOnly is active (inherently safe)
	// 2. User explicitly disabled DevSafety
	bypassSafety := isReadOnly || !devSafety

	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolvedPath := ResolveDBPath(path, useTemp)

	if o.logger != nil {
		switch {
		case useTemp && resolvedPath != path:
			o.logger.Warn("running in SAFE MODE (dev sandbox)", "original_path", path, "resolved_path", resolvedPath)
		case IsDevRun() && isReadOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolvedPath)
		case IsDevRun() && !devSafety:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolvedPath)
		}
	}

	store, err := sqlite.Open(ctx, sqlite.Config{
		Path:     resolvedPath,
		ReadOnly: isReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", resolvedPath, err)
	}

	if o.logger != nil {
		o.logger.Debug("store opened", "path", resolvedPath, "read_only", isReadOnly)
	}
	return store, nil
}
