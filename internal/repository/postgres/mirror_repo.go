package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cast"

	"dealerops/internal/domain"
	"dealerops/internal/port"
)

type mirrorRepo struct {
	db *sqlx.DB
}

// NewMirrorRepo creates a PostgreSQL-backed MirrorStore. Each record is kept
// verbatim as a JSONB payload next to the identifier columns used for lookup.
func NewMirrorRepo(db *sqlx.DB) port.MirrorStore {
	return &mirrorRepo{db: db}
}

func (r *mirrorRepo) ReplaceLocation(ctx context.Context, location domain.MirrorLocation, records []map[string]any) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("mirrorRepo.ReplaceLocation begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM mirror_records WHERE location = $1", location); err != nil {
		return fmt.Errorf("mirrorRepo.ReplaceLocation delete: %w", err)
	}

	for i, rec := range records {
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("mirrorRepo.ReplaceLocation record %d: %w", i, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO mirror_records (location, vin, car_code, vin_alias, record_id, payload)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			location,
			firstString(rec, domain.MirrorVINKeys...),
			firstString(rec, domain.MirrorCarCodeKeys...),
			firstString(rec, domain.MirrorVINAliasKeys...),
			firstString(rec, domain.MirrorIDKeys...),
			string(payload))
		if err != nil {
			return fmt.Errorf("mirrorRepo.ReplaceLocation record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("mirrorRepo.ReplaceLocation commit: %w", err)
	}
	return nil
}

func (r *mirrorRepo) FindByIdentifier(ctx context.Context, location domain.MirrorLocation, identifier string) ([]domain.SourceRecord, error) {
	var payloads []json.RawMessage
	err := r.db.SelectContext(ctx, &payloads,
		`SELECT payload FROM mirror_records
		 WHERE location = $1
		   AND $2 <> ''
		   AND (UPPER(vin) = UPPER($2) OR UPPER(car_code) = UPPER($2)
		        OR UPPER(vin_alias) = UPPER($2) OR UPPER(record_id) = UPPER($2))
		 ORDER BY id`, location, identifier)
	if err != nil {
		return nil, fmt.Errorf("mirrorRepo.FindByIdentifier: %w", err)
	}

	records := make([]domain.SourceRecord, 0, len(payloads))
	for _, p := range payloads {
		fields := make(map[string]any)
		if err := json.Unmarshal(p, &fields); err != nil {
			return nil, fmt.Errorf("mirrorRepo.FindByIdentifier payload: %w", err)
		}
		records = append(records, domain.SourceRecord{
			Shape:    domain.ShapeMirror,
			Location: location,
			Fields:   fields,
		})
	}
	return records, nil
}

// firstString returns the first key of rec holding a non-blank scalar.
func firstString(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := rec[k]
		if !ok || v == nil {
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
