package pdf

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
)

func TestRenderDocument_ProducesValidPDF(t *testing.T) {
	r := NewRenderer(DefaultPreset())
	doc := domain.ReportDocument{
		Title:    "Apollo Project Report",
		Author:   "groona",
		Date:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Category: "Financials",
		Blocks: []domain.Block{
			{Kind: domain.BlockHeading1, Text: "Summary"},
			{Kind: domain.BlockParagraph, Text: "The project remains on track."},
			{Kind: domain.BlockBullet, Text: "**Budget:** within plan"},
			{Kind: domain.BlockNumbered, Text: "review contracts"},
			{Kind: domain.BlockBlank},
		},
	}

	blob, err := r.RenderDocument(context.Background(), doc)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(blob), "%PDF"))
	assert.Equal(t, 1, r.PageCount())
}

func TestRenderDocument_LongContentBreaksAcrossPages(t *testing.T) {
	r := NewRenderer(DefaultPreset())

	blocks := make([]domain.Block, 0, 200)
	for i := 0; i < 200; i++ {
		blocks = append(blocks, domain.Block{
			Kind: domain.BlockParagraph,
			Text: fmt.Sprintf("Paragraph %d with enough words to occupy a full line of body text on the page.", i),
		})
	}

	blob, err := r.RenderDocument(context.Background(), domain.ReportDocument{Blocks: blocks})
	require.NoError(t, err)
	require.NotEmpty(t, blob)

	assert.Greater(t, r.PageCount(), 1, "content past the bottom margin must flow to a new page")
}

func TestRenderDocument_ListItemColonRule(t *testing.T) {
	// A labeled bullet must render on one visual line: the bold head and
	// the normal-weight remainder advance the cursor exactly once.
	r := NewRenderer(DefaultPreset())

	_, err := r.RenderDocument(context.Background(), domain.ReportDocument{
		Blocks: []domain.Block{
			{Kind: domain.BlockBullet, Text: "**Status:** on track"},
		},
	})
	require.NoError(t, err)

	single := NewRenderer(DefaultPreset())
	_, err = single.RenderDocument(context.Background(), domain.ReportDocument{
		Blocks: []domain.Block{
			{Kind: domain.BlockBullet, Text: "plain item"},
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, single.y, r.y, 1e-9)
}

func TestRenderDocument_NumberedListCounterResets(t *testing.T) {
	// The counter restarts after any non-numbered block; rendering must
	// not error regardless of how lists are interleaved.
	r := NewRenderer(DefaultPreset())
	_, err := r.RenderDocument(context.Background(), domain.ReportDocument{
		Blocks: []domain.Block{
			{Kind: domain.BlockNumbered, Text: "one"},
			{Kind: domain.BlockNumbered, Text: "two"},
			{Kind: domain.BlockParagraph, Text: "break"},
			{Kind: domain.BlockNumbered, Text: "one again"},
		},
	})
	require.NoError(t, err)
}

func TestRenderDocument_BadLogoIsSkipped(t *testing.T) {
	r := NewRenderer(DefaultPreset())
	r.SetLogo([]byte("not an image"))

	blob, err := r.RenderDocument(context.Background(), domain.ReportDocument{
		Blocks: []domain.Block{{Kind: domain.BlockParagraph, Text: "body"}},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, blob)
}

func TestRenderTimesheet_RepeatsHeaderAcrossPages(t *testing.T) {
	r := NewRenderer(DefaultPreset())

	rows := make([]TimesheetRow, 0, 120)
	for i := 0; i < 120; i++ {
		rows = append(rows, TimesheetRow{
			Date:    "2025-03-01",
			User:    fmt.Sprintf("user%d@x.io", i),
			Project: "Apollo",
			Hours:   7.5,
			Status:  domain.TimeEntryApproved,
		})
	}

	blob, err := r.RenderTimesheet(context.Background(), "Timesheet", rows)
	require.NoError(t, err)
	require.NotEmpty(t, blob)

	assert.Greater(t, r.PageCount(), 1)
}

func TestTruncateToWidth(t *testing.T) {
	r := NewRenderer(DefaultPreset())
	r.pdf.AddPage()
	r.pdf.SetFont(fontFamily, "", 10)

	t.Run("short text untouched", func(t *testing.T) {
		assert.Equal(t, "short", r.truncateToWidth("short", 50))
	})

	t.Run("overflow gets an ellipsis", func(t *testing.T) {
		long := strings.Repeat("wide text ", 20)
		out := r.truncateToWidth(long, 30)
		assert.True(t, strings.HasSuffix(out, "..."))
		assert.Less(t, len(out), len(long))
	})
}

func TestWrap_OversizedWordIsNeverDropped(t *testing.T) {
	r := NewRenderer(DefaultPreset())
	r.pdf.AddPage()
	r.pdf.SetFont(fontFamily, "", 10)

	huge := strings.Repeat("x", 400)
	lines := r.wrap("intro "+huge+" outro", r.maxWidth())

	joined := strings.Join(lines, " ")
	assert.Contains(t, joined, huge)
	assert.Contains(t, joined, "intro")
	assert.Contains(t, joined, "outro")
}

func TestReportFilenames(t *testing.T) {
	at := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "apollo-crm-report-2025-03-15.pdf", ReportFilename("Apollo CRM", at))
	assert.Equal(t, "apollo-ai-executive-report-2025-03-15.pdf", ExecutiveReportFilename("Apollo", at))
	assert.Equal(t, "project-report-2025-03-15.pdf", ReportFilename("  ", at))
}
