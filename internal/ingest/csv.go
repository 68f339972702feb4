package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lox/cropdss/internal/models"
)

const (
	colCrop        = "Crop"
	colTemperature = "Temperature_C"
	colRainfall    = "Rainfall_mm"
	colYield       = "Yield"
	colCost        = "Total_Cost_INR"
	colArea        = "Area_Hectare"
	colRisk        = "Risk_Level"
)

var requiredColumns = []string{colCrop, colTemperature, colRainfall, colYield, colCost, colArea, colRisk}

// RowError describes a rejected data row. Line is 1-based and counts the
// header.
type RowError struct {
	Line   int
	Reason string
	Flags  []string
}

func (e RowError) Error() string {
	if len(e.Flags) > 0 {
		return fmt.Sprintf("line %d: %s %s", e.Line, e.Reason, QualityFlagsToJSON(e.Flags))
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

type ParseResult struct {
	Records  []models.CropRecord
	Rejected []RowError
}

// ParseCropCSV reads the merged crop dataset. Columns are matched by header
// name; extra columns are ignored. Malformed rows are rejected, not fatal.
func ParseCropCSV(r io.Reader) (*ParseResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns %s", strings.Join(missing, ", "))
	}

	result := &ParseResult{}
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				result.Rejected = append(result.Rejected, RowError{Line: line, Reason: perr.Err.Error()})
				continue
			}
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		rec, err := parseRow(row, index)
		if err != nil {
			result.Rejected = append(result.Rejected, RowError{Line: line, Reason: err.Error()})
			continue
		}
		if flags := ValidateCropRecord(&rec); len(flags) > 0 {
			result.Rejected = append(result.Rejected, RowError{Line: line, Reason: "failed validation", Flags: flags})
			continue
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}

func parseRow(row []string, index map[string]int) (models.CropRecord, error) {
	field := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	number := func(col string) (float64, error) {
		v, err := strconv.ParseFloat(field(col), 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %q is not a number", col, field(col))
		}
		return v, nil
	}

	rec := models.CropRecord{Crop: field(colCrop)}
	var err error
	if rec.TemperatureC, err = number(colTemperature); err != nil {
		return rec, err
	}
	if rec.RainfallMM, err = number(colRainfall); err != nil {
		return rec, err
	}
	if rec.Yield, err = number(colYield); err != nil {
		return rec, err
	}
	if rec.TotalCostINR, err = number(colCost); err != nil {
		return rec, err
	}
	if rec.AreaHectare, err = number(colArea); err != nil {
		return rec, err
	}

	risk, err := models.ParseRiskLevel(field(colRisk))
	if err != nil {
		// Left invalid so validation reports it with the other flags.
		risk = models.RiskLevel(field(colRisk))
	}
	rec.RiskLevel = risk
	return rec, nil
}
