package util

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/seanazu/value-hunter/model"
)

// ReadPresets parses preset rows. The header must contain "name"; any filter wire
// name (marketCapLowerThan, exchange, ...) and "active" are optional columns.
// Blank filter cells stay absent.
func ReadPresets(r io.Reader) ([]model.PresetDto, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	headerMap := make(map[string]int)
	for i, name := range header {
		headerMap[strings.TrimSpace(name)] = i
	}

	nameIdx, hasName := headerMap["name"]
	if !hasName {
		return nil, fmt.Errorf("missing required column: name")
	}

	var presets []model.PresetDto
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading csv record: %w", err)
		}
		line++

		name := strings.TrimSpace(record[nameIdx])
		if name == "" {
			continue
		}

		dto := model.PresetDto{Name: name, Active: true}
		for _, field := range model.FieldOrder {
			idx, ok := headerMap[string(field)]
			if !ok || idx >= len(record) {
				continue
			}
			cell := strings.TrimSpace(record[idx])
			if cell == "" {
				continue
			}
			value, err := CoerceFieldValue(field, cell)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if dto.Filters, err = dto.Filters.With(field, value); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}

		if idx, ok := headerMap["active"]; ok && idx < len(record) {
			if cell := strings.TrimSpace(record[idx]); cell != "" {
				active, err := strconv.ParseBool(cell)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid active flag %q", line, cell)
				}
				dto.Active = active
			}
		}

		presets = append(presets, dto)
	}

	return presets, nil
}
