package pdf

import (
	"regexp"
	"strings"
)

var wholeBoldRe = regexp.MustCompile(`^\*\*(.+)\*\*$`)

// Date-like substrings promote a line to bold weight, matching how the
// product highlights activity-log and milestone lines. Four forms are
// recognized independently.
var dateRes = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),                                                    // MM/DD/YYYY
	regexp.MustCompile(`(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{1,2}, \d{4}`), // Mon DD, YYYY
	regexp.MustCompile(`\d{1,2} (?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{4}`),  // DD Mon YYYY
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),                                                        // ISO
}

// isBoldLine reports whether a paragraph line should render bold:
// wrapped in ** markers or containing a date-like substring.
func isBoldLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if wholeBoldRe.MatchString(trimmed) {
		return true
	}
	for _, re := range dateRes {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// stripBold removes ** markers so they are never rendered literally.
func stripBold(line string) string {
	trimmed := strings.TrimSpace(line)
	if m := wholeBoldRe.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	return strings.ReplaceAll(trimmed, "**", "")
}
