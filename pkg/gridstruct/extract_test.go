package gridstruct

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/goleak"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/classify"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// writeWorkbook saves a two-sheet workbook: a table on "Data" and an outline
// with a nested table on "Plan".
func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Data"))
	data := [][]string{
		{"Name", "Age", "City"},
		{"Ann", "31", "Oslo"},
		{"Bob", "45", "Rome"},
	}
	for r, row := range data {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Data", cell, v))
		}
	}
	require.NoError(t, f.SetCellValue("Data", "F10", "note"))

	_, err := f.NewSheet("Plan")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Plan", "A1", "Plan"))
	require.NoError(t, f.SetCellValue("Plan", "A2", "Phase"))
	require.NoError(t, f.SetCellValue("Plan", "B2", "Owner"))
	require.NoError(t, f.SetCellValue("Plan", "C2", "Due"))
	require.NoError(t, f.SetCellValue("Plan", "B3", "ann"))
	require.NoError(t, f.SetCellValue("Plan", "C3", "may"))

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestExtractWorkbook(t *testing.T) {
	wb, err := Extract(writeWorkbook(t), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "book.xlsx", wb.BookName)
	assert.Equal(t, []string{"Data", "Plan"}, wb.SheetNames())

	data := wb.Sheets["Data"]
	require.Len(t, data.Constructs, 1)
	assert.Equal(t, classify.TypeTable, data.Constructs[0].Type)
	assert.Equal(t, []string{"A1:C3"}, data.TableCandidates)
	assert.Nil(t, data.Rows)
	assert.Nil(t, data.Unclassified)

	plan := wb.Sheets["Plan"]
	assert.Equal(t, 1, plan.Index)
	require.Len(t, plan.Constructs, 1)
	tree := plan.Constructs[0].Tree
	require.NotNil(t, tree)
	phase, ok := tree.Find("Phase")
	require.True(t, ok)
	require.True(t, phase.Domain.HasNested)
	assert.Equal(t, classify.TypeTable, phase.Domain.Nested.Type)
	assert.Empty(t, plan.TableCandidates)
}

func TestExtractLightSkipsNested(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = ModeLight
	wb, err := Extract(writeWorkbook(t), opts)
	require.NoError(t, err)

	tree := wb.Sheets["Plan"].Constructs[0].Tree
	phase, _ := tree.Find("Phase")
	require.NotNil(t, phase.Domain)
	assert.False(t, phase.Domain.HasNested)
}

func TestExtractVerbose(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = ModeVerbose
	opts.Workers = 1
	wb, err := Extract(writeWorkbook(t), opts)
	require.NoError(t, err)

	data := wb.Sheets["Data"]
	require.Len(t, data.Rows, 4)
	assert.Equal(t, int64(31), data.Rows[1].C["2"])
	require.Len(t, data.Unclassified, 1)
	assert.Equal(t, grid.Rect{Top: 10, Bottom: 10, Left: 6, Right: 6}, data.Unclassified[0].Bounds)
}

func TestExtractSheetFilter(t *testing.T) {
	path := writeWorkbook(t)

	opts := DefaultOptions()
	opts.Sheets = []string{"Plan"}
	wb, err := Extract(path, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Plan"}, wb.SheetNames())

	opts.Sheets = []string{"Missing"}
	_, err = Extract(path, opts)
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestExtractPrintAreaViews(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	for cell, v := range map[string]string{
		"A1": "Fruits", "A2": "Apple", "A3": "Pear",
		"D1": "k", "E1": "v", "D2": "a", "E2": "1",
	} {
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: "Sheet1!$D$1:$E$2",
		Scope:    "Sheet1",
	}))
	path := filepath.Join(t.TempDir(), "areas.xlsx")
	require.NoError(t, f.SaveAs(path))

	wb, err := Extract(path, DefaultOptions())
	require.NoError(t, err)

	sheet := wb.Sheets["Sheet1"]
	require.Len(t, sheet.Constructs, 2)
	require.Len(t, sheet.PrintAreas, 1)
	require.Len(t, sheet.PrintAreaViews, 1)
	view := sheet.PrintAreaViews[0]
	assert.Equal(t, "areas.xlsx", view.BookName)
	require.Len(t, view.Constructs, 1)
	assert.Equal(t, classify.TypeTable, view.Constructs[0].Type)
	assert.Equal(t, []string{"D1:E2"}, view.TableCandidates)

	opts := DefaultOptions()
	opts.IncludePrintAreas = Bool(false)
	wb, err = Extract(path, opts)
	require.NoError(t, err)
	assert.Empty(t, wb.Sheets["Sheet1"].PrintAreaViews)
}

func TestExtractCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fruits.csv")
	require.NoError(t, os.WriteFile(path, []byte("Fruits\nApple\nPear\n"), 0o644))

	wb, err := Extract(path, DefaultOptions())
	require.NoError(t, err)
	require.Contains(t, wb.Sheets, "fruits")
	cs := wb.Sheets["fruits"].Constructs
	require.Len(t, cs, 1)
	assert.Equal(t, classify.TypeList, cs[0].Type)
}

func TestExtractErrors(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)

	bad := filepath.Join(t.TempDir(), "bad.xlsx")
	require.NoError(t, os.WriteFile(bad, []byte("not a zip"), 0o644))
	_, err = Extract(bad, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestExtractSurface(t *testing.T) {
	s := grid.SheetFromRows([][]string{{"a", "b"}, {"c", "d"}})
	opts := DefaultOptions()
	opts.IncludeCells = Bool(true)

	data := ExtractSurface("mem", s, opts)
	require.Len(t, data.Constructs, 1)
	assert.Equal(t, "A1:B2", data.TableCandidates[0])
	assert.Len(t, data.Rows, 2)
}

func TestOptionsResolution(t *testing.T) {
	tests := []struct {
		mode         Mode
		cells, areas bool
		unclassified bool
		skipNested   bool
	}{
		{ModeLight, false, false, false, true},
		{ModeStandard, false, true, false, false},
		{ModeVerbose, true, true, true, false},
	}

	for _, tt := range tests {
		o := DefaultOptions()
		o.Mode = tt.mode
		assert.Equal(t, tt.cells, o.ShouldIncludeCells(), tt.mode)
		assert.Equal(t, tt.areas, o.ShouldIncludePrintAreas(), tt.mode)
		assert.Equal(t, tt.unclassified, o.ShouldIncludeUnclassified(), tt.mode)
		assert.Equal(t, tt.skipNested, o.DetectionParams().SkipNested, tt.mode)
		assert.True(t, tt.mode.Valid())
	}
	assert.False(t, Mode("heavy").Valid())
}
