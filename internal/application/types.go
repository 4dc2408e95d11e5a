package application

import "provmark/internal/domain"

// Re-export domain types for use by adapters
type (
	DataRow       = domain.DataRow
	RowSummary    = domain.RowSummary
	IndexSet      = domain.IndexSet
	Namespace     = domain.Namespace
	Quality       = domain.Quality
	SelectionType = domain.SelectionType
	Vocabulary    = domain.Vocabulary
	QualityStats  = domain.QualityStats
)

const (
	NamespaceTransform = domain.NamespaceTransform
	NamespaceFeature   = domain.NamespaceFeature

	QualityHigh = domain.QualityHigh
	QualityLow  = domain.QualityLow

	SelectionDefault     = domain.SelectionDefault
	SelectionHighQuality = domain.SelectionHighQuality
	SelectionLowQuality  = domain.SelectionLowQuality
)

// ParseSelectionType validates a selection dropdown value
func ParseSelectionType(s string) (SelectionType, error) {
	return domain.ParseSelectionType(s)
}
