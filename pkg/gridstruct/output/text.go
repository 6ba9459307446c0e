package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/classify"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/construct"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/models"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/parser"
)

var typeColors = map[classify.Type]*color.Color{
	classify.TypeTable:    color.New(color.FgGreen),
	classify.TypeMatrix:   color.New(color.FgCyan),
	classify.TypeKeyValue: color.New(color.FgYellow),
	classify.TypeList:     color.New(color.FgBlue),
	classify.TypeTree:     color.New(color.FgMagenta),
}

// RenderText writes a human-readable summary of wb: one table of constructs
// per sheet followed by an outline of each tree.
func RenderText(w io.Writer, wb *models.WorkbookData) error {
	heading := color.New(color.Bold)
	for _, name := range wb.SheetNames() {
		sheet := wb.Sheets[name]
		if _, err := heading.Fprintf(w, "Sheet %s\n", name); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, constructTable(sheet)); err != nil {
			return err
		}

		for _, c := range sheet.Constructs {
			if c.Tree == nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "\nTree %s\n%s\n", parser.RangeRef(c.Bounds), treeOutline(c.Tree)); err != nil {
				return err
			}
		}

		if sheet.Truncated > 0 {
			warn := color.New(color.FgRed)
			if _, err := warn.Fprintf(w, "%d domain(s) not parsed: depth limit reached\n", sheet.Truncated); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func constructTable(sheet models.SheetData) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"#", "Type", "Range", "Orientation", "Confidence", "Cells", "Nested"})

	for i, c := range sheet.Constructs {
		tbl.AppendRow(table.Row{
			i + 1,
			typeLabel(c.Type),
			parser.RangeRef(c.Bounds),
			c.Orientation.String(),
			fmt.Sprintf("%.2f", c.Confidence),
			len(c.Cells),
			countNested(c),
		})
	}

	footer := fmt.Sprintf("Total: %d constructs", len(sheet.Constructs))
	if n := len(sheet.Unclassified); n > 0 {
		footer += fmt.Sprintf(", %d unclassified", n)
	}
	tbl.AppendFooter(table.Row{footer})
	return tbl.Render()
}

func typeLabel(t classify.Type) string {
	if c, ok := typeColors[t]; ok {
		return c.Sprint(t.String())
	}
	return t.String()
}

// countNested counts the constructs attached to tree domains of c, at any depth.
func countNested(c *construct.Construct) int {
	if c.Tree == nil {
		return 0
	}
	n := 0
	for _, e := range c.Tree.Elements {
		if e.Domain != nil && e.Domain.HasNested {
			n += 1 + countNested(e.Domain.Nested)
		}
	}
	return n
}

func treeOutline(t *construct.Tree) string {
	l := list.NewWriter()
	l.SetStyle(list.StyleConnectedRounded)
	for _, root := range t.Roots {
		appendElement(l, t, root)
	}
	return l.Render()
}

func appendElement(l list.Writer, t *construct.Tree, i int) {
	e := t.Element(i)
	item := e.Content
	if d := e.Domain; d != nil {
		switch {
		case d.HasNested:
			item += fmt.Sprintf("  [%s %s]", typeLabel(d.Nested.Type), parser.RangeRef(d.Nested.Bounds))
		case d.Error != "":
			item += "  [truncated]"
		}
	}
	l.AppendItem(item)

	if len(e.Children) == 0 {
		return
	}
	l.Indent()
	for _, ch := range e.Children {
		appendElement(l, t, ch)
	}
	l.UnIndent()
}
