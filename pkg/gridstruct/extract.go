package gridstruct

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/construct"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/detect"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/models"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/parser"
)

// sheetInput is a loaded sheet waiting for detection.
type sheetInput struct {
	name    string
	index   int
	surface grid.Surface
	rows    []models.CellRow
	areas   []models.PrintArea
}

// Extract extracts structured data from an xlsx workbook or a CSV file.
func Extract(path string, opts Options) (*models.WorkbookData, error) {
	return ExtractContext(context.Background(), path, opts)
}

// ExtractContext is Extract with a context that cancels pending sheets.
func ExtractContext(ctx context.Context, path string, opts Options) (*models.WorkbookData, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	var (
		inputs []sheetInput
		err    error
	)
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		inputs, err = loadCSV(path, opts)
	} else {
		inputs, err = loadWorkbook(path, opts)
	}
	if err != nil {
		return nil, err
	}

	bookName := filepath.Base(path)
	results := make([]models.SheetData, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = in.analyze(bookName, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sheets := make(map[string]models.SheetData, len(inputs))
	for i, in := range inputs {
		sheets[in.name] = results[i]
	}
	return &models.WorkbookData{
		BookName: bookName,
		Sheets:   sheets,
	}, nil
}

// ExtractSurface runs detection over an in-memory surface.
func ExtractSurface(name string, s grid.Surface, opts Options) models.SheetData {
	in := sheetInput{name: name, surface: s}
	if opts.ShouldIncludeCells() {
		in.rows = parser.ExtractCells(nil, name, s, false)
	}
	return in.analyze("", opts)
}

// loadWorkbook reads the selected sheets sequentially. A sheet whose cells
// cannot be read is kept with an empty surface.
func loadWorkbook(path string, opts Options) ([]sheetInput, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	logger := opts.logger()
	sheetList := f.GetSheetList()
	names, err := selectSheets(sheetList, opts.Sheets)
	if err != nil {
		return nil, err
	}

	var printAreas map[string][]models.PrintArea
	if opts.ShouldIncludePrintAreas() {
		printAreas, err = parser.ExtractPrintAreas(f)
		if err != nil {
			logger.Warn("skipping print areas", "error", NewExtractionError("", "print_areas", err))
		}
	}

	inputs := make([]sheetInput, 0, len(names))
	for _, name := range names {
		in := sheetInput{name: name, index: indexOf(sheetList, name), areas: printAreas[name]}

		s, err := parser.LoadSurface(f, name)
		if err != nil {
			logger.Warn("reading sheet failed", "error", NewExtractionError(name, "cells", err))
			s = grid.NewSheet(0, 0)
		}
		in.surface = s
		if opts.ShouldIncludeCells() {
			in.rows = parser.ExtractCells(f, name, s, opts.ShouldIncludeLinks())
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// loadCSV reads a CSV file as a single sheet named after the file.
func loadCSV(path string, opts Options) ([]sheetInput, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := parser.LoadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if _, err := selectSheets([]string{name}, opts.Sheets); err != nil {
		return nil, err
	}
	in := sheetInput{name: name, surface: s}
	if opts.ShouldIncludeCells() {
		in.rows = parser.ExtractCells(nil, name, s, false)
	}
	return []sheetInput{in}, nil
}

func (in sheetInput) analyze(bookName string, opts Options) models.SheetData {
	d := detect.New(opts.DetectionParams(),
		detect.WithScope(in.name),
		detect.WithLogger(opts.logger().With("sheet", in.name)))
	rep := d.Detect(in.surface)

	data := models.SheetData{
		Index:           in.index,
		Rows:            in.rows,
		Constructs:      nonNil(rep.Constructs),
		TableCandidates: parser.TableCandidates(rep.Constructs),
		PrintAreas:      in.areas,
		Truncated:       rep.Truncated,
	}
	if opts.ShouldIncludeUnclassified() {
		data.Unclassified = rep.Unclassified
	}
	for _, err := range rep.Errors {
		data.Errors = append(data.Errors, err.Error())
	}

	for _, area := range in.areas {
		view := d.Detect(grid.Region(in.surface, area.Rect()))
		data.PrintAreaViews = append(data.PrintAreaViews, models.PrintAreaView{
			BookName:        bookName,
			SheetName:       in.name,
			Area:            area,
			Rows:            area.Clip(in.rows),
			Constructs:      nonNil(view.Constructs),
			TableCandidates: parser.TableCandidates(view.Constructs),
		})
	}
	return data
}

// selectSheets filters all down to the names in want, keeping workbook order.
func selectSheets(all, want []string) ([]string, error) {
	if len(want) == 0 {
		return all, nil
	}
	var out []string
	for _, name := range want {
		if indexOf(all, name) < 0 {
			return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
		}
	}
	for _, name := range all {
		if indexOf(want, name) >= 0 {
			out = append(out, name)
		}
	}
	return out, nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func nonNil(cs []*construct.Construct) []*construct.Construct {
	if cs == nil {
		return []*construct.Construct{}
	}
	return cs
}
