package domain

// DataRow is one example of an augmented dataset
type DataRow struct {
	ID          string
	Idx         int    // Dataset index, stable across sorts
	Text        string // Augmented sentence shown in the table
	Label       string
	Transforms  string // Bit-vector of applied transforms, e.g. "[1 0 1]"
	Features    string // Bit-vector of detected features
	OldSentence string // Text before any transform was applied
	Diff        string // HTML diff between old and new sentence

	Alignment      float64
	Fluency        float64
	Grammaticality float64

	Extra map[string]string // Columns without a dedicated field
}

// Summary returns the lightweight record kept in category indices
func (r DataRow) Summary(text string) RowSummary {
	return RowSummary{
		ID:    r.ID,
		Idx:   r.Idx,
		Text:  text,
		Label: r.Label,
	}
}

// TransformPositions decodes the row's transform bit-vector
func (r DataRow) TransformPositions() []int {
	return DecodeBitPositions(r.Transforms)
}

// FeaturePositions decodes the row's feature bit-vector
func (r DataRow) FeaturePositions() []int {
	return DecodeBitPositions(r.Features)
}

// RowSummary is the per-category view of a row
type RowSummary struct {
	ID    string `json:"id"`
	Idx   int    `json:"idx"`
	Text  string `json:"text"`
	Label string `json:"label"`
}

// RowsByIdx indexes rows by their dataset index
func RowsByIdx(rows []DataRow) map[int]DataRow {
	byIdx := make(map[int]DataRow, len(rows))
	for _, r := range rows {
		byIdx[r.Idx] = r
	}
	return byIdx
}
