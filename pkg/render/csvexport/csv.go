package csvexport

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/exp/maps"
)

// Export flattens rows into CSV text: the header is the first row's
// keys, each value is JSON-encoded (so embedded commas and quotes stay
// escaped), fields are comma-joined and rows newline-joined. Empty
// input yields an empty string.
func Export(rows []map[string]any) string {
	if len(rows) == 0 {
		return ""
	}

	columns := maps.Keys(rows[0])
	sort.Strings(columns)

	var b strings.Builder
	b.WriteString(strings.Join(columns, ","))
	for _, row := range rows {
		b.WriteByte('\n')
		for i, col := range columns {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(encodeField(row[col]))
		}
	}
	return b.String()
}

// encodeField mirrors JSON.stringify field escaping: numbers and bools
// stay bare, strings keep their quotes, nil becomes empty.
func encodeField(v any) string {
	if v == nil {
		return ""
	}
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%q", fmt.Sprint(v))
	}
	return string(out)
}

// Filename builds `report_<timestamp>.csv`.
func Filename(t time.Time) string {
	return fmt.Sprintf("report_%d.csv", t.UnixMilli())
}
