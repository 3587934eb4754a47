package views

import (
	"net/url"
	"strconv"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/preston-bernstein/logo-scatter-service/internal/dataset"
)

// Selection is the chart the visitor asked for.
type Selection struct {
	Sheet      string
	X          string
	Y          string
	ShowLabels bool
}

// Query encodes the selection as /plot.png parameters.
func (s Selection) Query() url.Values {
	q := url.Values{}
	q.Set("sheet", s.Sheet)
	q.Set("x", s.X)
	q.Set("y", s.Y)
	q.Set("labels", strconv.FormatBool(s.ShowLabels))
	return q
}

// PlotURL is the inline chart source.
func (s Selection) PlotURL() string {
	return "/plot.png?" + s.Query().Encode()
}

// DownloadURL is PlotURL with the attachment flag set.
func (s Selection) DownloadURL() string {
	q := s.Query()
	q.Set("download", "1")
	return "/plot.png?" + q.Encode()
}

// HomeData feeds the main page.
type HomeData struct {
	Workbook    *dataset.Workbook
	Selection   Selection
	PreviewRows int
	ShowSidebar bool
	Error       string
}

// HomePage is the upload, selection and chart page.
func HomePage(d HomeData) Node {
	var sheet *dataset.Sheet
	if d.Workbook != nil {
		sheet, _ = d.Workbook.Sheet(d.Selection.Sheet)
	}

	return page(appTitle,
		Aside(
			If(d.ShowSidebar, Img(Class("brand"), Src("/sidebar"), Alt("logo"))),
			uploadForm(),
			Iff(d.Workbook != nil, func() Node { return selectionForm(d.Workbook, sheet, d.Selection) }),
		),
		Main(
			H1(Text(appTitle)),
			errorLine(d.Error),
			content(d, sheet),
		),
	)
}

func uploadForm() Node {
	return Form(
		Method("post"),
		Action("/upload"),
		Attr("enctype", "multipart/form-data"),
		Label(For("file"), Text("Upload Excel file")),
		Input(Type("file"), ID("file"), Name("file"), Attr("accept", ".xlsx"), Required()),
		Button(Type("submit"), Text("Upload")),
	)
}

func selectionForm(wb *dataset.Workbook, sheet *dataset.Sheet, sel Selection) Node {
	columns := sheet.SelectableColumns()
	return Form(
		Method("get"),
		Action("/"),
		Input(Type("hidden"), Name("submitted"), Value("1")),
		Label(For("sheet"), Text("Select sheet")),
		options("sheet", wb.SheetNames, sel.Sheet),
		Label(For("x"), Text("X axis")),
		options("x", columns, sel.X),
		Label(For("y"), Text("Y axis")),
		options("y", columns, sel.Y),
		Label(
			Input(Type("checkbox"), Name("labels"), Value("true"), If(sel.ShowLabels, Checked()), Attr("onchange", "this.form.submit()")),
			Text(" Include Variable Names in Plot"),
		),
	)
}

func options(name string, values []string, selected string) Node {
	return Select(
		ID(name),
		Name(name),
		Attr("onchange", "this.form.submit()"),
		Map(values, func(v string) Node {
			return Option(Value(v), If(v == selected, Selected()), Text(v))
		}),
	)
}

func content(d HomeData, sheet *dataset.Sheet) Node {
	if d.Workbook == nil {
		return P(Text("Upload an .xlsx file to get started."))
	}
	if sheet == nil {
		return P(Text("The selected sheet does not exist."))
	}
	if d.Selection.X == "" || d.Selection.Y == "" {
		return Group{
			previewTable(sheet, d.PreviewRows),
			P(Text("This sheet needs at least one numeric column besides the category.")),
		}
	}
	return Group{
		H2(Text(d.Workbook.FileName + " / " + sheet.Name)),
		previewTable(sheet, d.PreviewRows),
		Img(Class("chart"), Src(d.Selection.PlotURL()), Alt(d.Selection.X+" vs "+d.Selection.Y)),
		P(A(Href(d.Selection.DownloadURL()), Attr("download", ""), Text("Download Logos Scatter Plot"))),
	}
}

func previewTable(sheet *dataset.Sheet, limit int) Node {
	rows := sheet.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return Table(
		THead(Tr(Map(sheet.Columns, func(c string) Node { return Th(Text(c)) }))),
		TBody(Map(rows, func(row []string) Node {
			return Tr(Map(row, func(cell string) Node { return Td(Text(cell)) }))
		})),
	)
}
