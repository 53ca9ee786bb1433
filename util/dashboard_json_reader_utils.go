package util

import (
	"encoding/json"
	"fmt"
	"os"

	"covid-dashboard/models"
	"covid-dashboard/models/geo"
)

// ReadRawAggregateFromJSON loads a category -> number object from JSON on disk.
func ReadRawAggregateFromJSON(filePath string) (models.RawAggregate, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return models.RawAggregate{}, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var raw models.RawAggregate
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.RawAggregate{}, fmt.Errorf("failed to unmarshal RawAggregate: %w", err)
	}
	return raw, nil
}

// ReadSemesterMatrixFromJSON loads a SemesterDepartmentMatrix from JSON on disk.
func ReadSemesterMatrixFromJSON(filePath string) (models.SemesterDepartmentMatrix, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	matrix := models.SemesterDepartmentMatrix{}
	if err := json.Unmarshal(data, &matrix); err != nil {
		return nil, fmt.Errorf("failed to unmarshal SemesterDepartmentMatrix: %w", err)
	}
	return matrix, nil
}

// ReadFeatureCollectionFromJSON loads a GeoJSON feature collection from disk.
func ReadFeatureCollectionFromJSON(filePath string) (*geo.FeatureCollection, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var fc geo.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal FeatureCollection: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("unexpected GeoJSON type %q in %q", fc.Type, filePath)
	}
	return &fc, nil
}
