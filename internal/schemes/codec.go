package schemes

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/opencode-ai/schemer/internal/models"
)

// Encode serializes a scheme to its JSON payload.
func Encode(scheme *models.Scheme) ([]byte, error) {
	if scheme == nil {
		return nil, fmt.Errorf("scheme is required")
	}
	data, err := json.Marshal(scheme)
	if err != nil {
		return nil, fmt.Errorf("encode scheme %q: %w", scheme.Name, err)
	}
	return data, nil
}

// EncodeIndent serializes a scheme for export.
func EncodeIndent(scheme *models.Scheme) ([]byte, error) {
	if scheme == nil {
		return nil, fmt.Errorf("scheme is required")
	}
	data, err := json.MarshalIndent(scheme, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode scheme %q: %w", scheme.Name, err)
	}
	return data, nil
}

// Decode parses a JSON payload. The result is normalized to the taxonomy.
func Decode(data []byte) (*models.Scheme, error) {
	var scheme models.Scheme
	if err := json.Unmarshal(data, &scheme); err != nil {
		return nil, fmt.Errorf("decode scheme: %w", err)
	}
	scheme.Normalize()
	if err := scheme.Validate(); err != nil {
		return nil, err
	}
	return &scheme, nil
}

// EncodeYAML serializes a scheme in the built-in definition format.
// Unset colors are written as null.
func EncodeYAML(scheme *models.Scheme) ([]byte, error) {
	if scheme == nil {
		return nil, fmt.Errorf("scheme is required")
	}
	data, err := yaml.Marshal(scheme)
	if err != nil {
		return nil, fmt.Errorf("encode scheme %q: %w", scheme.Name, err)
	}
	return data, nil
}

// DecodeYAML parses a scheme in the built-in definition format. The result
// is normalized to the taxonomy and is never marked built-in.
func DecodeYAML(data []byte) (*models.Scheme, error) {
	var scheme models.Scheme
	if err := yaml.Unmarshal(data, &scheme); err != nil {
		return nil, fmt.Errorf("decode scheme: %w", err)
	}
	scheme.Normalize()
	if err := scheme.Validate(); err != nil {
		return nil, err
	}
	return &scheme, nil
}
