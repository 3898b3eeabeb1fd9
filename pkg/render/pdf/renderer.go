package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
)

const (
	pageWidth  = 210.0 // A4 portrait, mm
	pageHeight = 297.0
	margin     = 15.0
	fontFamily = "Helvetica"
)

// Preset holds the font sizes and line heights for one rendering mode.
// The compressed preset backs the single-page executive summaries.
type Preset struct {
	H1Size, H2Size, H3Size float64
	BodySize               float64
	LineHeight             float64
	HeadingGap             float64 // vertical space before and after headings
	MaxChars               int     // 0 means no truncation
}

func DefaultPreset() Preset {
	return Preset{
		H1Size: 16, H2Size: 13, H3Size: 11,
		BodySize:   10,
		LineHeight: 5.2,
		HeadingGap: 2.5,
	}
}

// CompressedPreset trades legibility for a one-page guarantee: smaller
// headings, tighter leading and a hard content cap.
func CompressedPreset() Preset {
	return Preset{
		H1Size: 11, H2Size: 10, H3Size: 9,
		BodySize:   8,
		LineHeight: 3.8,
		HeadingGap: 1.5,
		MaxChars:   2000,
	}
}

// Renderer lays report documents onto fixed-size pages. A running
// vertical cursor is checked against the bottom margin before every
// wrapped line, so a paragraph can break across pages without ever
// overflowing one.
type Renderer struct {
	pdf    *fpdf.Fpdf
	preset Preset
	y      float64
	logo   []byte
}

func NewRenderer(preset Preset) *Renderer {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	return &Renderer{pdf: doc, preset: preset}
}

// SetLogo attaches image bytes embedded on the first page. Decoding is
// best-effort at render time; a bad image is logged and skipped.
func (r *Renderer) SetLogo(img []byte) {
	r.logo = img
}

func (r *Renderer) maxWidth() float64 {
	return pageWidth - 2*margin
}

// ensureSpace starts a new page when the next element of height h would
// cross the bottom margin.
func (r *Renderer) ensureSpace(h float64) {
	if r.y+h > pageHeight-margin {
		r.pdf.AddPage()
		r.y = margin
	}
}

func (r *Renderer) advance(h float64) {
	r.y += h
}

// wrap splits text into lines that fit maxW under the current font,
// greedy on word boundaries; an oversized single word is emitted on its
// own line rather than dropped.
func (r *Renderer) wrap(text string, maxW float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if r.pdf.GetStringWidth(candidate) <= maxW {
			current = candidate
		} else {
			lines = append(lines, current)
			current = w
		}
	}
	return append(lines, current)
}

// writeWrapped emits text with per-line page-break checks. indent is
// applied to every line; style is fpdf's "", "B" or "I".
func (r *Renderer) writeWrapped(text, style string, size, indent float64) {
	r.pdf.SetFont(fontFamily, style, size)
	lh := r.preset.LineHeight
	for _, line := range r.wrap(text, r.maxWidth()-indent) {
		r.ensureSpace(lh)
		r.pdf.SetXY(margin+indent, r.y)
		r.pdf.CellFormat(r.maxWidth()-indent, lh, line, "", 0, "L", false, 0, "")
		r.advance(lh)
	}
}

func (r *Renderer) writeHeading(text string, size float64) {
	r.advance(r.preset.HeadingGap)
	r.writeWrapped(text, "B", size, 0)
	r.advance(r.preset.HeadingGap)
}

// writeListItem renders one bullet or numbered item with the bold-run
// rules: ** markers are stripped, and when the item contains a colon
// the text up to and including it is bold while the remainder stays
// normal weight, continuing on the same visual line when it fits.
func (r *Renderer) writeListItem(marker, text string) {
	lh := r.preset.LineHeight
	size := r.preset.BodySize
	clean := strings.ReplaceAll(text, "**", "")
	indent := 5.0

	r.ensureSpace(lh)
	r.pdf.SetFont(fontFamily, "", size)
	r.pdf.SetXY(margin, r.y)
	r.pdf.CellFormat(indent, lh, marker, "", 0, "L", false, 0, "")

	colon := strings.IndexByte(clean, ':')
	if colon < 0 {
		r.writeRuns(clean, "", size, indent)
		return
	}

	head := clean[:colon+1]
	rest := strings.TrimLeft(clean[colon+1:], " ")

	r.pdf.SetFont(fontFamily, "B", size)
	headW := r.pdf.GetStringWidth(head)
	if headW > r.maxWidth()-indent {
		// Degenerate label wider than the line: wrap it bold, then the rest.
		r.writeWrapped(head, "B", size, indent)
		if rest != "" {
			r.writeWrapped(rest, "", size, indent)
		}
		return
	}
	r.pdf.SetXY(margin+indent, r.y)
	r.pdf.CellFormat(headW, lh, head, "", 0, "L", false, 0, "")

	if rest == "" {
		r.advance(lh)
		return
	}

	// Continue on the same visual line with whatever fits, then wrap.
	r.pdf.SetFont(fontFamily, "", size)
	remaining := r.maxWidth() - indent - headW
	first, overflow := splitToWidth(r.pdf, " "+rest, remaining)
	r.pdf.CellFormat(remaining, lh, first, "", 0, "L", false, 0, "")
	r.advance(lh)
	if overflow != "" {
		r.writeWrapped(overflow, "", size, indent)
	}
}

// writeRuns writes already-dispatched list text after the marker cell,
// first segment on the marker's line.
func (r *Renderer) writeRuns(text, style string, size, indent float64) {
	lh := r.preset.LineHeight
	r.pdf.SetFont(fontFamily, style, size)
	first, overflow := splitToWidth(r.pdf, text, r.maxWidth()-indent)
	r.pdf.SetXY(margin+indent, r.y)
	r.pdf.CellFormat(r.maxWidth()-indent, lh, first, "", 0, "L", false, 0, "")
	r.advance(lh)
	if overflow != "" {
		r.writeWrapped(overflow, style, size, indent)
	}
}

// splitToWidth returns the longest word-boundary prefix fitting maxW
// and the remainder.
func splitToWidth(doc *fpdf.Fpdf, text string, maxW float64) (string, string) {
	if doc.GetStringWidth(text) <= maxW {
		return text, ""
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return "", ""
	}
	fit := ""
	for i, w := range words {
		candidate := w
		if fit != "" {
			candidate = fit + " " + w
		}
		if doc.GetStringWidth(candidate) > maxW {
			if fit == "" {
				// First word alone exceeds the width; push it all down.
				return "", strings.Join(words[i:], " ")
			}
			return fit, strings.Join(words[i:], " ")
		}
		fit = candidate
	}
	return fit, ""
}

// RenderDocument lays out a parsed report document and returns the PDF
// bytes. Content beyond the preset's character cap is truncated before
// layout; the renderer itself never overflows a page.
func (r *Renderer) RenderDocument(ctx context.Context, doc domain.ReportDocument) ([]byte, error) {
	r.pdf.AddPage()
	r.y = margin

	r.placeLogo(ctx)
	r.renderTitleBlock(doc)

	num := 0
	for _, b := range doc.Blocks {
		switch b.Kind {
		case domain.BlockHeading1:
			num = 0
			r.writeHeading(stripBold(b.Text), r.preset.H1Size)
		case domain.BlockHeading2:
			num = 0
			r.writeHeading(stripBold(b.Text), r.preset.H2Size)
		case domain.BlockHeading3:
			num = 0
			r.writeHeading(stripBold(b.Text), r.preset.H3Size)
		case domain.BlockBullet:
			num = 0
			r.writeListItem("•", b.Text)
		case domain.BlockNumbered:
			num++
			r.writeListItem(fmt.Sprintf("%d.", num), b.Text)
		case domain.BlockBlank:
			num = 0
			r.advance(r.preset.LineHeight / 2)
		default:
			num = 0
			r.writeParagraph(b.Text)
		}
	}

	return r.output()
}

// writeParagraph applies the whole-line bold rules: **...** markers or
// a date-like substring promote the line to bold weight.
func (r *Renderer) writeParagraph(text string) {
	style := ""
	if isBoldLine(text) {
		style = "B"
	}
	r.writeWrapped(stripBold(text), style, r.preset.BodySize, 0)
}

func (r *Renderer) renderTitleBlock(doc domain.ReportDocument) {
	if doc.Title != "" {
		r.writeWrapped(doc.Title, "B", r.preset.H1Size+2, 0)
		r.advance(r.preset.HeadingGap)
	}
	var meta []string
	if doc.Author != "" {
		meta = append(meta, "By "+doc.Author)
	}
	if !doc.Date.IsZero() {
		meta = append(meta, doc.Date.Format("Jan 2, 2006"))
	}
	if doc.Category != "" {
		meta = append(meta, doc.Category)
	}
	if len(meta) > 0 {
		r.pdf.SetTextColor(110, 110, 110)
		r.writeWrapped(strings.Join(meta, "  |  "), "I", r.preset.BodySize-1, 0)
		r.pdf.SetTextColor(0, 0, 0)
		r.advance(r.preset.HeadingGap)
	}
}

// placeLogo embeds the configured logo top-right. A logo that fails to
// decode is logged and skipped; layout proceeds without it.
func (r *Renderer) placeLogo(ctx context.Context) {
	if len(r.logo) == 0 {
		return
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(r.logo))
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("logo decode failed, rendering without it")
		return
	}
	opts := fpdf.ImageOptions{ImageType: strings.ToUpper(format)}
	r.pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(r.logo))
	r.pdf.ImageOptions("logo", pageWidth-margin-20, margin-5, 20, 0, false, opts, 0, "")
}

func (r *Renderer) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.pdf.Output(io.Writer(&buf)); err != nil {
		return nil, fmt.Errorf("failed to produce pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// PageCount reports how many pages the last render emitted.
func (r *Renderer) PageCount() int {
	return r.pdf.PageNo()
}
