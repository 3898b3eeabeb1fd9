package pdf

import (
	"context"
	"fmt"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
)

// TableConfig fixes the column widths of a timesheet table, in mm.
type TableConfig struct {
	DateWidth    float64
	UserWidth    float64
	ProjectWidth float64
	HoursWidth   float64
	StatusWidth  float64
	RowHeight    float64
	DividerEvery int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		DateWidth:    26,
		UserWidth:    48,
		ProjectWidth: 58,
		HoursWidth:   20,
		StatusWidth:  28,
		RowHeight:    6,
		DividerEvery: 5,
	}
}

// TimesheetRow is one line of a timesheet report table.
type TimesheetRow struct {
	Date    string
	User    string
	Project string
	Hours   float64
	Status  domain.TimeEntryStatus
}

// RenderTimesheet lays out a timesheet table: filled header row,
// per-cell ellipsis truncation against the fixed column widths, a light
// divider every few rows and status-dependent text color.
func (r *Renderer) RenderTimesheet(ctx context.Context, title string, rows []TimesheetRow) ([]byte, error) {
	cfg := DefaultTableConfig()
	r.pdf.AddPage()
	r.y = margin

	r.placeLogo(ctx)
	r.writeWrapped(title, "B", r.preset.H1Size, 0)
	r.advance(r.preset.HeadingGap)

	r.tableHeader(cfg)
	for i, row := range rows {
		r.ensureSpaceTable(cfg)
		r.tableRow(cfg, row)
		if cfg.DividerEvery > 0 && (i+1)%cfg.DividerEvery == 0 {
			r.pdf.SetDrawColor(220, 220, 220)
			r.pdf.Line(margin, r.y, margin+cfg.totalWidth(), r.y)
		}
	}

	return r.output()
}

func (c TableConfig) totalWidth() float64 {
	return c.DateWidth + c.UserWidth + c.ProjectWidth + c.HoursWidth + c.StatusWidth
}

// ensureSpaceTable breaks the page and repeats the header row.
func (r *Renderer) ensureSpaceTable(cfg TableConfig) {
	if r.y+cfg.RowHeight > pageHeight-margin {
		r.pdf.AddPage()
		r.y = margin
		r.tableHeader(cfg)
	}
}

func (r *Renderer) tableHeader(cfg TableConfig) {
	r.ensureSpace(cfg.RowHeight)
	r.pdf.SetFont(fontFamily, "B", r.preset.BodySize)
	r.pdf.SetFillColor(235, 235, 235)
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.SetXY(margin, r.y)
	r.headerCell(cfg.DateWidth, "Date", cfg.RowHeight)
	r.headerCell(cfg.UserWidth, "User", cfg.RowHeight)
	r.headerCell(cfg.ProjectWidth, "Project", cfg.RowHeight)
	r.headerCell(cfg.HoursWidth, "Hours", cfg.RowHeight)
	r.headerCell(cfg.StatusWidth, "Status", cfg.RowHeight)
	r.advance(cfg.RowHeight)
}

func (r *Renderer) headerCell(w float64, text string, h float64) {
	r.pdf.CellFormat(w, h, text, "1", 0, "L", true, 0, "")
}

func (r *Renderer) tableRow(cfg TableConfig, row TimesheetRow) {
	r.pdf.SetFont(fontFamily, "", r.preset.BodySize)
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.SetXY(margin, r.y)

	r.cell(cfg.DateWidth, row.Date, cfg.RowHeight)
	r.cell(cfg.UserWidth, row.User, cfg.RowHeight)
	r.cell(cfg.ProjectWidth, row.Project, cfg.RowHeight)
	r.cell(cfg.HoursWidth, fmt.Sprintf("%.2f", row.Hours), cfg.RowHeight)

	switch row.Status {
	case domain.TimeEntryApproved:
		r.pdf.SetTextColor(22, 130, 55)
	case domain.TimeEntryRejected:
		r.pdf.SetTextColor(185, 40, 40)
	default:
		r.pdf.SetTextColor(190, 135, 10)
	}
	r.cell(cfg.StatusWidth, string(row.Status), cfg.RowHeight)
	r.pdf.SetTextColor(0, 0, 0)

	r.advance(cfg.RowHeight)
}

// cell writes one table cell, truncating overflow with an ellipsis.
func (r *Renderer) cell(w float64, text string, h float64) {
	r.pdf.CellFormat(w, h, r.truncateToWidth(text, w-2), "", 0, "L", false, 0, "")
}

func (r *Renderer) truncateToWidth(text string, maxW float64) string {
	if r.pdf.GetStringWidth(text) <= maxW {
		return text
	}
	ellipsis := "..."
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if r.pdf.GetStringWidth(string(runes)+ellipsis) <= maxW {
			return string(runes) + ellipsis
		}
	}
	return ellipsis
}
