package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidSelection is returned for an unknown selection type
var ErrInvalidSelection = errors.New("invalid selection type")

// SelectionType chooses which rows a provenance view looks at
type SelectionType string

const (
	SelectionDefault     SelectionType = "default"
	SelectionHighQuality SelectionType = "high_Q"
	SelectionLowQuality  SelectionType = "low_Q"
)

// SelectionTypes lists the selection types in dropdown order
var SelectionTypes = []SelectionType{SelectionDefault, SelectionHighQuality, SelectionLowQuality}

// ParseSelectionType validates a selection type string
func ParseSelectionType(s string) (SelectionType, error) {
	for _, st := range SelectionTypes {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSelection, s)
}

// Label returns the dropdown label
func (s SelectionType) Label() string {
	switch s {
	case SelectionHighQuality:
		return "👍 high quality"
	case SelectionLowQuality:
		return "👎 low quality"
	default:
		return "default"
	}
}

// Next cycles to the following selection type
func (s SelectionType) Next() SelectionType {
	for i, st := range SelectionTypes {
		if st == s {
			return SelectionTypes[(i+1)%len(SelectionTypes)]
		}
	}
	return SelectionDefault
}
