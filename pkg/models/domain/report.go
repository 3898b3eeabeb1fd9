package domain

import "time"

// Report is a structured analysis report consumed by the terminal
// reporter.
type Report struct {
	Title       string
	Period      TimePeriod
	Sections    []ReportSection
	TotalAmount float64
	Currency    string
}

// TimePeriod represents a time range for the report
type TimePeriod struct {
	Start    time.Time
	End      time.Time
	Duration int // in days
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title    string
	Summary  map[string]interface{}
	Details  []ReportDetail
	Metadata map[string]interface{}
}

// ReportDetail represents detailed information within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}

type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading1
	BlockHeading2
	BlockHeading3
	BlockBullet
	BlockNumbered
	BlockBlank
)

// Block is one line-level element of a markdown-flavored document.
// Text carries the content with the leading marker stripped.
type Block struct {
	Kind BlockKind
	Text string
}

// ReportDocument is the ordered block sequence fed to the PDF renderer.
type ReportDocument struct {
	Title    string
	Author   string
	Date     time.Time
	Category string
	Blocks   []Block
}
