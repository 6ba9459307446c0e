package models

// WorkbookData represents workbook-level container with per-sheet data.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name" yaml:"book_name"`
	// Sheets maps sheet name to SheetData.
	Sheets map[string]SheetData `json:"sheets" yaml:"sheets"`
}

// SheetNames returns the sheet names in workbook order when known, else sorted.
func (w *WorkbookData) SheetNames() []string {
	names := make([]string, 0, len(w.Sheets))
	for name := range w.Sheets {
		names = append(names, name)
	}
	sortSheets(names, w.Sheets)
	return names
}
