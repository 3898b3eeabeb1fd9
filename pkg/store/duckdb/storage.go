package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const AIReportSchema = `
	CREATE SEQUENCE IF NOT EXISTS ai_reports_id_seq;
	CREATE TABLE IF NOT EXISTS ai_reports (
		id BIGINT PRIMARY KEY DEFAULT nextval('ai_reports_id_seq'),
		tenant_id VARCHAR NOT NULL,
		subject VARCHAR NOT NULL,
		content VARCHAR NOT NULL,
		generated_by VARCHAR,
		context_data JSON,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

var bootQueries = []string{
	AIReportSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, bootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
