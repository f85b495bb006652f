package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/goldpath/spectra/internal/codec"
	"github.com/goldpath/spectra/internal/common"
	"github.com/goldpath/spectra/internal/model"
	"github.com/goldpath/spectra/internal/storage"
)

// initStorage opens the signature library and applies pending migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "spectra", "library.db")
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError("failed to open signature library", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, common.NewUserError("failed to migrate signature library", err)
	}
	return store, nil
}

// loadSignatureFile decodes one signature file, picking the encoding from
// the extension: .csv is tabular, .json is structured. Tabular files carry
// no identity, so the file stem becomes the signature ID, matching the way
// field teams name their exports.
func loadSignatureFile(path string) (*model.Signature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		sig, err := codec.DecodeTabular(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if sig.ID == "" {
			sig = sig.WithID(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		}
		return sig, nil
	case ".json":
		sig, err := codec.DecodeStructured(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return sig, nil
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownFormat, path)
	}
}

// signatureFiles lists the importable files directly under dir.
func signatureFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".json":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", common.ErrNoSignatures, dir)
	}
	return paths, nil
}

// parseFocusBands converts the --focus flag values, nil meaning default.
func parseFocusBands(focus []int) []int {
	if len(focus) == 0 {
		return nil
	}
	return focus
}
