package markdown

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
)

var (
	bulletRe  = regexp.MustCompile(`^[-*+]\s+`)
	orderedRe = regexp.MustCompile(`^\d+\.\s+`)
)

// Parse splits a markdown-flavored string into line-level blocks.
// Dispatch order per line: H3, H2, H1, bullet, ordered item, non-empty
// paragraph, blank. Anything unrecognized falls through to a paragraph,
// so malformed input never fails the parse.
func Parse(content string) []domain.Block {
	lines := strings.Split(content, "\n")
	blocks := make([]domain.Block, 0, len(lines))

	for _, raw := range lines {
		line := strings.TrimRight(raw, " \t\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "### "):
			blocks = append(blocks, domain.Block{Kind: domain.BlockHeading3, Text: strings.TrimSpace(trimmed[4:])})
		case strings.HasPrefix(trimmed, "## "):
			blocks = append(blocks, domain.Block{Kind: domain.BlockHeading2, Text: strings.TrimSpace(trimmed[3:])})
		case strings.HasPrefix(trimmed, "# "):
			blocks = append(blocks, domain.Block{Kind: domain.BlockHeading1, Text: strings.TrimSpace(trimmed[2:])})
		case bulletRe.MatchString(trimmed):
			blocks = append(blocks, domain.Block{Kind: domain.BlockBullet, Text: bulletRe.ReplaceAllString(trimmed, "")})
		case orderedRe.MatchString(trimmed):
			blocks = append(blocks, domain.Block{Kind: domain.BlockNumbered, Text: orderedRe.ReplaceAllString(trimmed, "")})
		case trimmed != "":
			blocks = append(blocks, domain.Block{Kind: domain.BlockParagraph, Text: trimmed})
		default:
			blocks = append(blocks, domain.Block{Kind: domain.BlockBlank})
		}
	}
	return blocks
}

// Truncate hard-caps content at maxChars, appending a notice when
// anything was cut. The single-page report variants rely on this to
// guarantee bounded output instead of overflowing pages.
func Truncate(content string, maxChars int) string {
	if maxChars <= 0 || len(content) <= maxChars {
		return content
	}
	// Back up to a rune boundary so the cap never splits a multi-byte
	// character into invalid UTF-8.
	end := maxChars
	for end > 0 && !utf8.RuneStart(content[end]) {
		end--
	}
	cut := content[:end]
	if i := strings.LastIndexByte(cut, ' '); i > maxChars/2 {
		cut = cut[:i]
	}
	return cut + "\n\n[content truncated]"
}
