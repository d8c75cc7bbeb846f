package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Specification is a single titled description row on a product.
type Specification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SpecificationList is the jsonb-backed list of product specifications.
type SpecificationList []Specification

// Value marshals the list into its jsonb representation.
func (s SpecificationList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan decodes the jsonb column back into the slice.
func (s *SpecificationList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("specifications: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, s)
}

// Property is a variant axis on a product (e.g. Size with options S/M/L).
type Property struct {
	Title   string   `json:"title"`
	Options []string `json:"options"`
}

// PropertyList is the jsonb-backed list of product variant properties.
type PropertyList []Property

// Value marshals the list into its jsonb representation.
func (p PropertyList) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan decodes the jsonb column back into the slice.
func (p *PropertyList) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("properties: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, p)
}
