package pdf

import (
	"fmt"
	"strings"
	"time"
)

// ReportFilename builds `<entity>-report-<yyyy-MM-dd>.pdf`.
func ReportFilename(entity string, t time.Time) string {
	return fmt.Sprintf("%s-report-%s.pdf", slug(entity), t.Format("2006-01-02"))
}

// ExecutiveReportFilename builds the AI executive variant,
// `<entity>-ai-executive-report-<yyyy-MM-dd>.pdf`.
func ExecutiveReportFilename(entity string, t time.Time) string {
	return fmt.Sprintf("%s-ai-executive-report-%s.pdf", slug(entity), t.Format("2006-01-02"))
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "project"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, s)
}
