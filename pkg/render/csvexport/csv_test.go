package csvexport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExport_HeaderFromSortedFirstRowKeys(t *testing.T) {
	rows := []map[string]any{
		{"a": 1, "b": 2},
		{"a": 3, "b": 4},
	}

	assert.Equal(t, "a,b\n1,2\n3,4", Export(rows))
}

func TestExport_StringsKeepJSONEscaping(t *testing.T) {
	rows := []map[string]any{
		{"name": `say "hi", twice`, "hours": 7.5, "billable": true},
	}

	// keys sort to billable,hours,name; the embedded comma and quotes
	// stay inside the JSON string literal
	assert.Equal(t, "billable,hours,name\ntrue,7.5,\"say \\\"hi\\\", twice\"", Export(rows))
}

func TestExport_MissingAndNilValues(t *testing.T) {
	rows := []map[string]any{
		{"a": 1, "b": nil},
		{"a": 2}, // b absent, still emitted as empty
	}

	assert.Equal(t, "a,b\n1,\n2,", Export(rows))
}

func TestExport_EmptyInput(t *testing.T) {
	assert.Equal(t, "", Export(nil))
	assert.Equal(t, "", Export([]map[string]any{}))
}

func TestFilename(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	assert.Equal(t, "report_1700000000000.csv", Filename(at))
}
