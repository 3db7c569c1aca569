package layout

import (
	"encoding/json"
	"os"
)

// =============================================================================
// Positions Serialization API
// =============================================================================

// MarshalPositions serializes computed positions to indented JSON.
func MarshalPositions(positions map[string]Point) ([]byte, error) {
	return json.MarshalIndent(positions, "", "  ")
}

// UnmarshalPositions deserializes positions from JSON.
func UnmarshalPositions(data []byte) (map[string]Point, error) {
	var positions map[string]Point
	if err := json.Unmarshal(data, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

// WritePositionsFile writes positions to a JSON file.
func WritePositionsFile(positions map[string]Point, path string) error {
	data, err := MarshalPositions(positions)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadPositionsFile reads positions from a JSON file.
func ReadPositionsFile(path string) (map[string]Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalPositions(data)
}
