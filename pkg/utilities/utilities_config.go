package utilities

import (
	"encoding/json"
	"os"
)

type JsonConfigObj[T any] interface {
	ConvertToDomain() T
}

// ReadConfig decodes a JSON file into T and converts it to its domain form.
// A missing file yields os.ErrNotExist so callers can fall back to defaults.
func ReadConfig[T JsonConfigObj[U], U any](file string) (U, error) {
	var empty U

	fileContent, err := os.ReadFile(file)
	if err != nil {
		return empty, err
	}

	var config T
	err = json.Unmarshal(fileContent, &config)
	if err != nil {
		return empty, err
	}

	return config.ConvertToDomain(), nil
}

// DecodeConfig is ReadConfig for content that is already in memory.
func DecodeConfig[T JsonConfigObj[U], U any](content []byte) (U, error) {
	var config T
	if err := json.Unmarshal(content, &config); err != nil {
		var empty U
		return empty, err
	}

	return config.ConvertToDomain(), nil
}

func ConvertJsonArrayToDomain[T JsonConfigObj[U], U any](jsonArray []T) []U {
	return Map(jsonArray, func(item T) U { return item.ConvertToDomain() })
}
