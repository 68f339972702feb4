package store

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lox/cropdss/internal/models"
)

type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

func New(db *sql.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger.Named("store")}
}

// DatasetImport audits one load of the crop dataset.
type DatasetImport struct {
	ID           int64
	Source       string
	StartedAt    time.Time
	FinishedAt   sql.NullTime
	PayloadHash  sql.NullString
	RowsParsed   sql.NullInt64
	RowsRejected sql.NullInt64
	Success      bool
	ErrorMessage sql.NullString
}

func (s *Store) StartImport(source string) (*DatasetImport, error) {
	imp := &DatasetImport{
		Source:    source,
		StartedAt: time.Now().UTC(),
	}
	result, err := s.db.Exec(`
		INSERT INTO dataset_imports (source, started_at, success)
		VALUES (?, ?, FALSE)
	`, imp.Source, imp.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("insert import: %w", err)
	}
	imp.ID, err = result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get import id: %w", err)
	}
	return imp, nil
}

// FailImport records why an import did not complete.
func (s *Store) FailImport(imp *DatasetImport, cause error) error {
	imp.FinishedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	imp.ErrorMessage = sql.NullString{String: cause.Error(), Valid: true}
	_, err := s.db.Exec(`
		UPDATE dataset_imports SET finished_at = ?, success = FALSE, error_message = ?
		WHERE id = ?
	`, imp.FinishedAt, imp.ErrorMessage, imp.ID)
	return err
}

// ReplaceCropRecords swaps the dataset snapshot for records in a single
// transaction and marks imp successful. Row order is preserved.
func (s *Store) ReplaceCropRecords(imp *DatasetImport, hash string, records []models.CropRecord, rejected int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM crop_records`); err != nil {
		return fmt.Errorf("clear crop records: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO crop_records (import_id, crop, temperature_c, rainfall_mm, yield, total_cost_inr, area_hectare, risk_level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(imp.ID, r.Crop, r.TemperatureC, r.RainfallMM, r.Yield, r.TotalCostINR, r.AreaHectare, string(r.RiskLevel)); err != nil {
			return fmt.Errorf("insert crop %s: %w", r.Crop, err)
		}
	}

	imp.FinishedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	imp.PayloadHash = sql.NullString{String: hash, Valid: true}
	imp.RowsParsed = sql.NullInt64{Int64: int64(len(records)), Valid: true}
	imp.RowsRejected = sql.NullInt64{Int64: int64(rejected), Valid: true}
	imp.Success = true
	if _, err := tx.Exec(`
		UPDATE dataset_imports
		SET finished_at = ?, payload_hash = ?, rows_parsed = ?, rows_rejected = ?, success = TRUE
		WHERE id = ?
	`, imp.FinishedAt, imp.PayloadHash, imp.RowsParsed, imp.RowsRejected, imp.ID); err != nil {
		return fmt.Errorf("finish import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.Info("dataset replaced", zap.Int64("import", imp.ID), zap.Int("rows", len(records)), zap.Int("rejected", rejected))
	return nil
}

// LatestImport returns the most recent successful import, or nil if none.
func (s *Store) LatestImport() (*DatasetImport, error) {
	row := s.db.QueryRow(`
		SELECT id, source, started_at, finished_at, payload_hash, rows_parsed, rows_rejected, success, error_message
		FROM dataset_imports
		WHERE success = TRUE
		ORDER BY id DESC
		LIMIT 1
	`)

	var imp DatasetImport
	err := row.Scan(&imp.ID, &imp.Source, &imp.StartedAt, &imp.FinishedAt, &imp.PayloadHash, &imp.RowsParsed, &imp.RowsRejected, &imp.Success, &imp.ErrorMessage)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &imp, nil
}

// LoadCropRecords returns the current dataset snapshot in import order.
func (s *Store) LoadCropRecords() ([]models.CropRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, crop, temperature_c, rainfall_mm, yield, total_cost_inr, area_hectare, risk_level
		FROM crop_records
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.CropRecord
	for rows.Next() {
		var r models.CropRecord
		var risk string
		if err := rows.Scan(&r.ID, &r.Crop, &r.TemperatureC, &r.RainfallMM, &r.Yield, &r.TotalCostINR, &r.AreaHectare, &risk); err != nil {
			return nil, err
		}
		r.RiskLevel = models.RiskLevel(risk)
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) CountCropRecords() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM crop_records`).Scan(&n)
	return n, err
}
