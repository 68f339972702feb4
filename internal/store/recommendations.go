package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lox/cropdss/internal/models"
)

func (s *Store) InsertRecommendation(rec models.RecommendationLog) (int64, error) {
	cropsJSON, err := json.Marshal(rec.Crops)
	if err != nil {
		return 0, fmt.Errorf("marshal crops: %w", err)
	}

	var best sql.NullString
	var profit sql.NullFloat64
	if rec.BestCrop != "" {
		best = sql.NullString{String: rec.BestCrop, Valid: true}
		profit = sql.NullFloat64{Float64: rec.ExpectedProfit, Valid: true}
	}

	result, err := s.db.Exec(`
		INSERT INTO recommendations (requested_at, temperature, rainfall, area, risk_preference, best_crop, expected_profit, crops_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.RequestedAt.UTC(), rec.Temperature, rec.Rainfall, rec.Area, string(rec.RiskPreference), best, profit, string(cropsJSON))
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListRecommendations returns the most recent requests, newest first.
func (s *Store) ListRecommendations(limit int) ([]models.RecommendationLog, error) {
	rows, err := s.db.Query(`
		SELECT id, requested_at, temperature, rainfall, area, risk_preference, best_crop, expected_profit, crops_json
		FROM recommendations
		ORDER BY requested_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.RecommendationLog
	for rows.Next() {
		var rec models.RecommendationLog
		var risk string
		var best sql.NullString
		var profit sql.NullFloat64
		var cropsJSON sql.NullString
		if err := rows.Scan(&rec.ID, &rec.RequestedAt, &rec.Temperature, &rec.Rainfall, &rec.Area, &risk, &best, &profit, &cropsJSON); err != nil {
			return nil, err
		}
		rec.RiskPreference = models.RiskLevel(risk)
		rec.BestCrop = best.String
		rec.ExpectedProfit = profit.Float64
		if cropsJSON.Valid && cropsJSON.String != "" {
			if err := json.Unmarshal([]byte(cropsJSON.String), &rec.Crops); err != nil {
				return nil, fmt.Errorf("unmarshal crops for %d: %w", rec.ID, err)
			}
		}
		logs = append(logs, rec)
	}
	return logs, rows.Err()
}
