package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"provmark/internal/domain"
	"provmark/internal/ports"
)

// datasetTx implements ports.DatasetTx
type datasetTx struct {
	tx       *sqlx.Tx
	position int64
}

// Ensure datasetTx implements DatasetTx
var _ ports.DatasetTx = (*datasetTx)(nil)

// BeginTx starts a new transaction
func (s *Store) BeginTx(ctx context.Context) (ports.DatasetTx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &datasetTx{tx: tx}, nil
}

// DeleteRows removes every cached row
func (t *datasetTx) DeleteRows() error {
	_, err := t.tx.Exec(`DELETE FROM rows`)
	t.position = 0
	return err
}

// InsertRow appends a row after the previously inserted one
func (t *datasetTx) InsertRow(row *domain.DataRow) error {
	rec := rowRecord{
		Position:       t.position,
		ID:             row.ID,
		Idx:            row.Idx,
		Text:           row.Text,
		Label:          row.Label,
		Transforms:     row.Transforms,
		Features:       row.Features,
		OldSentence:    row.OldSentence,
		Diff:           row.Diff,
		Alignment:      row.Alignment,
		Fluency:        row.Fluency,
		Grammaticality: row.Grammaticality,
	}
	if len(row.Extra) > 0 {
		b, err := json.Marshal(row.Extra)
		if err != nil {
			return err
		}
		rec.Extra.String, rec.Extra.Valid = string(b), true
	}

	_, err := t.tx.NamedExec(`
		INSERT INTO rows (position, id, idx, text, label, transforms, features,
		                  old_sentence, diff, alignment, fluency, grammaticality, extra)
		VALUES (:position, :id, :idx, :text, :label, :transforms, :features,
		        :old_sentence, :diff, :alignment, :fluency, :grammaticality, :extra)
	`, rec)
	if err != nil {
		return err
	}
	t.position++
	return nil
}

// SetFingerprint records the schema version and source fingerprint
func (t *datasetTx) SetFingerprint(fingerprint string) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('fingerprint', ?);
	`, schemaVersion, fingerprint)
	return err
}

// Commit commits the transaction
func (t *datasetTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *datasetTx) Rollback() error {
	return t.tx.Rollback()
}
