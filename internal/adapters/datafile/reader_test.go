package datafile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"provmark/internal/domain"
)

const gluedCSV = "idx,text,label,llm_label,llm_explanation,different_label,features,transforms,alignment_score,fluency_score,grammar_score,old_text,diff_html\n" +
	"0,a fine film,1,1,ok,False,[0 1],[1 0],0.913,1.4,-0.2,a good film,<del>good</del><ins>fine</ins>\n" +
	"1,\"dull, slow\",0,0,meh,False,[1 1],[0 1],,0.5,0.5,boring slow,<ins>dull</ins>\n" +
	",,,,,,,,,,,,\n" +
	"x,broken,1,1,,,,,,,,,\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReader_CSV(t *testing.T) {
	path := writeFile(t, "glue.csv", gluedCSV)
	r := NewReader(path, domain.DefaultVocabulary(), nil)

	rows, stats, err := r.ReadRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 4, stats.RowsRead)
	assert.Equal(t, 2, stats.RowsImported)
	assert.Equal(t, 2, stats.RowsSkipped)

	first := rows[0]
	assert.Equal(t, 0, first.Idx)
	assert.Equal(t, "a fine film", first.Text)
	assert.Equal(t, "pos", first.Label)
	assert.Equal(t, "[1 0]", first.Transforms)
	assert.Equal(t, "[0 1]", first.Features)
	assert.Equal(t, "a good film", first.OldSentence)
	assert.Equal(t, "<del>good</del><ins>fine</ins>", first.Diff)
	assert.Equal(t, 0.91, first.Alignment)
	assert.Equal(t, 1.0, first.Fluency)
	assert.Equal(t, 0.0, first.Grammaticality)
	assert.Equal(t, "ok", first.Extra["llm_explanation"])
	assert.Equal(t, "1", first.Extra["llm_label"])
	assert.NotEmpty(t, first.ID)

	second := rows[1]
	assert.Equal(t, "dull, slow", second.Text)
	assert.Equal(t, "neg", second.Label)
	assert.Equal(t, 0.0, second.Alignment)
}

func TestReader_DeterministicIDs(t *testing.T) {
	path := writeFile(t, "glue.csv", gluedCSV)

	a, _, err := NewReader(path, domain.DefaultVocabulary(), nil).ReadRows(context.Background())
	require.NoError(t, err)
	b, _, err := NewReader(path, domain.DefaultVocabulary(), nil).ReadRows(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a[0].ID, b[0].ID)
	assert.NotEqual(t, a[0].ID, a[1].ID)
}

func TestReader_AliasesAndPositionIdx(t *testing.T) {
	path := writeFile(t, "plain.csv", "\ufeffSentence,label,old_sentence,diff\nhello,neg,hi,<ins>hello</ins>\nbye,pos,ciao,\n")

	rows, _, err := NewReader(path, domain.DefaultVocabulary(), nil).ReadRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 0, rows[0].Idx)
	assert.Equal(t, 1, rows[1].Idx)
	assert.Equal(t, "hello", rows[0].Text)
	assert.Equal(t, "hi", rows[0].OldSentence)
	assert.Equal(t, "<ins>hello</ins>", rows[0].Diff)
	assert.Nil(t, rows[0].Extra)
}

func TestReader_MissingTextColumn(t *testing.T) {
	path := writeFile(t, "bad.csv", "idx,label\n0,pos\n")

	_, _, err := NewReader(path, domain.DefaultVocabulary(), nil).ReadRows(context.Background())
	assert.ErrorContains(t, err, "missing text column")
}

func TestReader_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glue.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"idx", "text", "label", "transforms", "features", "fluency_score"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{7, "from excel", "1", "[1 0 1]", "[0]", "0.456"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, stats, err := NewReader(path, domain.DefaultVocabulary(), nil).ReadRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, stats.RowsImported)

	assert.Equal(t, 7, rows[0].Idx)
	assert.Equal(t, "from excel", rows[0].Text)
	assert.Equal(t, "pos", rows[0].Label)
	assert.Equal(t, []int{0, 2}, rows[0].TransformPositions())
	assert.Equal(t, 0.46, rows[0].Fluency)
}

func TestReader_Fingerprint(t *testing.T) {
	path := writeFile(t, "glue.csv", gluedCSV)
	r := NewReader(path, domain.DefaultVocabulary(), nil)

	fp1, err := r.Fingerprint()
	require.NoError(t, err)
	assert.Len(t, fp1, 32)

	require.NoError(t, os.WriteFile(path, []byte(gluedCSV+"2,more,0,,,,,,,,,,\n"), 0644))
	fp2, err := r.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp2)
}

func TestReader_CanceledContext(t *testing.T) {
	path := writeFile(t, "glue.csv", gluedCSV)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewReader(path, domain.DefaultVocabulary(), nil).ReadRows(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReader_DuplicateIdxSkipped(t *testing.T) {
	path := writeFile(t, "dups.csv", "idx,text,transforms\n5,first,[0 0]\n7,other,[1 0]\n5,second,[1 1]\n")
	r := NewReader(path, domain.DefaultVocabulary(), nil)

	rows, stats, err := r.ReadRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "first", rows[0].Text)
	assert.Equal(t, 7, rows[1].Idx)
	assert.Equal(t, 3, stats.RowsRead)
	assert.Equal(t, 1, stats.RowsSkipped)
}
