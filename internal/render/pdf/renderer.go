// Package pdf renders a stored GVA report as a printable A4 document.
package pdf

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/mamadbah2/livestock-gva/internal/domain/models"
	"github.com/mamadbah2/livestock-gva/pkg/currency"
)

const (
	title      = "SMART LIVESTOCK CARE (SLC)"
	subtitle   = "Village GVA Economic Report"
	disclaimer = "DISCLAIMER: These calculations are planning estimates only. " +
		"Final economic decisions depend on local conditions. " +
		"This report is generated by Smart Livestock Care (SLC) for reference purposes."
)

type rgb struct{ r, g, b int }

var (
	censusHeader = rgb{0x1e, 0x40, 0xaf}
	gvaHeader    = rgb{0x05, 0x96, 0x69}
	totalFill    = rgb{0xdc, 0x26, 0x26}
)

// Renderer writes GVA reports as PDF documents.
type Renderer struct{}

// NewRenderer returns a PDF renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// ContentType is the MIME type of rendered documents.
func (r *Renderer) ContentType() string {
	return "application/pdf"
}

// Filename returns the attachment name for a report.
func (r *Renderer) Filename(report models.Report) string {
	id := report.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("GVA_Report_%s.pdf", id)
}

// Render writes the report document to w.
func (r *Renderer) Render(w io.Writer, report models.Report) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 13, 15)
	doc.SetAutoPageBreak(true, 13)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 9, title, "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 8, subtitle, "", 1, "C", false, 0, "")
	doc.Ln(6)

	// Free-text labels may carry non-ASCII; map them to the core font encoding.
	tr := doc.UnicodeTranslatorFromDescriptor("")
	writeInfo(doc, tr, report)
	doc.Ln(6)
	writeCensus(doc, report.Inputs)
	doc.Ln(6)
	writeResults(doc, report.Results)
	doc.Ln(10)

	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(128, 128, 128)
	doc.MultiCell(0, 4, disclaimer, "", "C", false)

	if err := doc.Error(); err != nil {
		return fmt.Errorf("render gva report %s: %w", report.ID, err)
	}
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write gva report %s: %w", report.ID, err)
	}
	return nil
}

func writeInfo(doc *fpdf.Fpdf, tr func(string) string, report models.Report) {
	rows := [][2]string{
		{"Report Date:", report.CreatedAt.Format("2006-01-02")},
		{"Village:", orNA(report.Inputs.VillageName)},
		{"Mandal:", orNA(report.Inputs.Mandal)},
		{"District:", orNA(report.Inputs.District)},
		{"Vet Name:", orNA(report.Author.Name)},
		{"Institution:", orNA(report.Author.Institution)},
	}
	for _, row := range rows {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(38, 7, row[0], "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(76, 7, tr(row[1]), "", 1, "L", false, 0, "")
	}
}

func writeCensus(doc *fpdf.Fpdf, in models.CensusInput) {
	section(doc, "LIVESTOCK CENSUS")

	widths := []float64{50, 38}
	header(doc, censusHeader, widths, []string{"Species", "Count"}, []string{"L", "C"})

	rows := [][]string{
		{"Cattle", strconv.FormatInt(in.CattleCount, 10)},
		{"Buffalo", strconv.FormatInt(in.BuffaloCount, 10)},
		{"Sheep", strconv.FormatInt(in.SheepCount, 10)},
		{"Goat", strconv.FormatInt(in.GoatCount, 10)},
		{"Poultry", strconv.FormatInt(in.PoultryCount, 10)},
	}
	doc.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		doc.CellFormat(widths[0], 8, row[0], "1", 0, "L", false, 0, "")
		doc.CellFormat(widths[1], 8, row[1], "1", 1, "C", false, 0, "")
	}
}

func writeResults(doc *fpdf.Fpdf, res models.Results) {
	section(doc, "GVA CALCULATION RESULTS")

	widths := []float64{46, 38, 38, 38}
	header(doc, gvaHeader, widths,
		[]string{"Category", "GSDP (Rs.)", "Input Cost (Rs.)", "GVA (Rs.)"},
		[]string{"L", "R", "R", "R"})

	doc.SetFont("Helvetica", "", 9)
	for _, b := range res.Breakdowns() {
		v := b.Value()
		doc.CellFormat(widths[0], 8, b.Category().Label(), "1", 0, "L", false, 0, "")
		doc.CellFormat(widths[1], 8, currency.Format(v.GSDP), "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[2], 8, currency.Format(v.InputCost), "1", 0, "R", false, 0, "")
		doc.CellFormat(widths[3], 8, currency.Format(v.NetGVA), "1", 1, "R", false, 0, "")
	}
	doc.Ln(5)

	doc.SetFillColor(totalFill.r, totalFill.g, totalFill.b)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(109, 10, "TOTAL VILLAGE GVA", "", 0, "L", true, 0, "")
	doc.CellFormat(51, 10, currency.Format(res.TotalVillageGVA), "", 1, "R", true, 0, "")
	doc.SetTextColor(0, 0, 0)
}

func section(doc *fpdf.Fpdf, name string) {
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 9, name, "", 1, "L", false, 0, "")
}

func header(doc *fpdf.Fpdf, fill rgb, widths []float64, labels, aligns []string) {
	doc.SetFillColor(fill.r, fill.g, fill.b)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 10)
	for i, label := range labels {
		ln := 0
		if i == len(labels)-1 {
			ln = 1
		}
		doc.CellFormat(widths[i], 8, label, "1", ln, aligns[i], true, 0, "")
	}
	doc.SetTextColor(0, 0, 0)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
