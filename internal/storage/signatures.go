package storage

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/goldpath/spectra/internal/codec"
	"github.com/goldpath/spectra/internal/model"
	"github.com/goldpath/spectra/internal/service"
)

// SaveSignature persists a signature, replacing any existing record with the
// same ID. Records failing structural validation are refused with the full
// error list.
func (s *SQLiteStorage) SaveSignature(ctx context.Context, sig *model.Signature) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSignature(sig); err != nil {
		return err
	}

	var payload bytes.Buffer
	if err := codec.EncodeStructured(&payload, sig); err != nil {
		return fmt.Errorf("failed to encode signature %q: %w", sig.ID, err)
	}

	var sensor, sceneID string
	if sig.Source != nil {
		sensor = sig.Source.Sensor
		sceneID = sig.Source.SceneID
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO signatures (id, category, payload, sensor, scene_id)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			category = excluded.category,
			payload = excluded.payload,
			sensor = excluded.sensor,
			scene_id = excluded.scene_id`,
		sig.ID, string(sig.Category), payload.String(), sensor, sceneID)
	if err != nil {
		return fmt.Errorf("failed to save signature %q: %w", sig.ID, err)
	}
	return nil
}

// GetSignature loads one signature by ID.
func (s *SQLiteStorage) GetSignature(ctx context.Context, id string) (*model.Signature, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM signatures WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get signature %q: %w", id, err)
	}

	sig, err := codec.DecodeStructured(strings.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored signature %q: %w", id, err)
	}
	return sig, nil
}

// ListSignatures returns library records matching the filter, ordered by ID
// for deterministic output.
func (s *SQLiteStorage) ListSignatures(ctx context.Context, filter service.SignatureFilter) ([]*model.Signature, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT payload FROM signatures`
	var args []any
	if filter.Category != "" {
		query += ` WHERE category = ?`
		args = append(args, string(filter.Category))
	}
	query += ` ORDER BY id`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list signatures: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sigs []*model.Signature
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan signature row: %w", err)
		}
		sig, err := codec.DecodeStructured(strings.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to decode stored signature: %w", err)
		}
		sigs = append(sigs, sig)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate signatures: %w", err)
	}
	return sigs, nil
}

// DeleteSignature removes one signature by ID.
func (s *SQLiteStorage) DeleteSignature(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM signatures WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete signature %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// CountByCategory returns how many signatures each category holds.
func (s *SQLiteStorage) CountByCategory(ctx context.Context) (map[model.Category]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM signatures GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to count signatures: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[model.Category]int)
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts[model.Category(category)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate counts: %w", err)
	}
	return counts, nil
}
