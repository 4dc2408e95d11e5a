package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidNamespace = errors.New("invalid category namespace")
	ErrInvalidQuality   = errors.New("invalid quality")
)

// Namespace separates transform categories from feature categories
type Namespace string

const (
	NamespaceTransform Namespace = "transform"
	NamespaceFeature   Namespace = "feature"
)

// ParseNamespace accepts singular or plural names
func ParseNamespace(s string) (Namespace, error) {
	switch s {
	case "transform", "transforms":
		return NamespaceTransform, nil
	case "feature", "features":
		return NamespaceFeature, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidNamespace, s)
}

// Quality is a reviewer judgement
type Quality string

const (
	QualityHigh Quality = "high"
	QualityLow  Quality = "low"
)

// ParseQuality validates a quality name
func ParseQuality(s string) (Quality, error) {
	switch Quality(s) {
	case QualityHigh, QualityLow:
		return Quality(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidQuality, s)
}
