package clickhouse

import (
	"context"
	"strings"

	"github.com/nodeflow-project/clickhouse-node/log"
	"github.com/nodeflow-project/clickhouse-node/utils"
)

const (
	ErrEmptyQuery = utils.Error("empty query")
	ErrEmptyTable = utils.Error("empty table name")
	ErrNoRecords  = utils.Error("no records to insert")
)

// Status outcome of a credential test
type Status string

const (
	StatusOK    Status = "OK"
	StatusError Status = "Error"
)

// TestResult structured pass/fail result of a credential test; failures are
// carried in Message instead of being propagated
type TestResult struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// Connector runs single-shot operations against a ClickHouse server; every
// call opens a fresh client and closes it before returning, no state is
// shared between invocations
type Connector struct {
	dial   DialFunc
	logger *log.Logger
}

// NewConnector creates a Connector using the default dialer
func NewConnector(logger *log.Logger) *Connector {
	return NewConnectorWithDialer(Connect, logger)
}

// NewConnectorWithDialer creates a Connector with a custom dialer; used to
// inject fake clients in tests
func NewConnectorWithDialer(dial DialFunc, logger *log.Logger) *Connector {
	if logger == nil {
		logger = log.New("clickhouse")
	}
	return &Connector{
		dial:   dial,
		logger: logger,
	}
}

// TestConnection verifies that the configured server is reachable; it never
// returns an error - config, network and auth failures are all reported in
// the result message
func (c *Connector) TestConnection(ctx context.Context, cfg *ClientConfig) TestResult {
	conn, err := c.dial(cfg)
	if err != nil {
		return TestResult{Status: StatusError, Message: err.Error()}
	}
	defer conn.Close()

	if err = conn.Ping(ctx); err != nil {
		c.logger.Error(err, "connection test failed")
		return TestResult{Status: StatusError, Message: err.Error()}
	}
	return TestResult{Status: StatusOK, Message: "Connection successful"}
}

// Query runs a SQL statement and returns the full result set, one record per
// row, in server order. Named typed parameters ({name:Type}) embedded in the
// query are resolved by the client, not here; query errors propagate verbatim.
func (c *Connector) Query(ctx context.Context, cfg *ClientConfig, query string, args ...any) ([]Record, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	conn, err := c.dial(cfg)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	c.logger.Debug("executing query", map[string]interface{}{"query": query})
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return decodeRows(rows)
}

// Insert writes all records to the named table as one batch; either every
// record is delivered or the whole operation fails. Fields missing from a
// record are sent as nil.
func (c *Connector) Insert(ctx context.Context, cfg *ClientConfig, table string, records []Record) error {
	if strings.TrimSpace(table) == "" {
		return ErrEmptyTable
	}
	if len(records) == 0 {
		return ErrNoRecords
	}
	conn, err := c.dial(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	cols := insertColumns(records)
	stmt, err := insertStatement(table, cols)
	if err != nil {
		return err
	}
	c.logger.Debug("inserting batch", map[string]interface{}{"table": table, "rows": len(records)})

	batch, err := conn.PrepareBatch(ctx, stmt)
	if err != nil {
		return err
	}
	for _, record := range records {
		row := make([]any, len(cols))
		for i, col := range cols {
			row[i] = record[col]
		}
		if err = batch.Append(row...); err != nil {
			_ = batch.Abort()
			return err
		}
	}
	return batch.Send()
}
