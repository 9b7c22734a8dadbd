package clickhouse

import (
	"context"
	"database/sql"
	"reflect"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Conn is the slice of the client surface the connector uses; tests implement
// it with fakes to observe call patterns
type Conn interface {
	Ping(ctx context.Context) error
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	PrepareBatch(ctx context.Context, query string) (Batch, error)
	Close() error
}

// Rows a forward-only result cursor
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	ColumnTypes() []ColumnType
	Close() error
	Err() error
}

// Batch a single all-or-nothing write; Append stages one row, Send delivers
// the whole batch, Abort discards it
type Batch interface {
	Append(v ...any) error
	Send() error
	Abort() error
}

// ColumnType name and scan type of one projected column
type ColumnType struct {
	Name     string
	ScanType reflect.Type
}

// DialFunc opens a client connection from a client configuration
type DialFunc func(cfg *ClientConfig) (Conn, error)

// Connect opens a new client connection; the protocol is selected by the
// configured URL scheme. It is the default DialFunc.
func Connect(cfg *ClientConfig) (Conn, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	if opts.Protocol == clickhouse.HTTP {
		return &httpConn{db: clickhouse.OpenDB(opts)}, nil
	}
	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}
	return &nativeConn{conn: conn}, nil
}

// nativeConn adapts driver.Conn to Conn
type nativeConn struct {
	conn driver.Conn
}

func (c *nativeConn) Ping(ctx context.Context) error {
	return c.conn.Ping(ctx)
}

func (c *nativeConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := c.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &nativeRows{rows: rows}, nil
}

func (c *nativeConn) PrepareBatch(ctx context.Context, query string) (Batch, error) {
	batch, err := c.conn.PrepareBatch(ctx, query)
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (c *nativeConn) Close() error {
	return c.conn.Close()
}

type nativeRows struct {
	rows driver.Rows
}

func (r *nativeRows) Next() bool {
	return r.rows.Next()
}

func (r *nativeRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

func (r *nativeRows) ColumnTypes() []ColumnType {
	types := r.rows.ColumnTypes()
	result := make([]ColumnType, len(types))
	for i, ct := range types {
		result[i] = ColumnType{Name: ct.Name(), ScanType: ct.ScanType()}
	}
	return result
}

func (r *nativeRows) Close() error {
	return r.rows.Close()
}

func (r *nativeRows) Err() error {
	return r.rows.Err()
}

// httpConn adapts a database/sql handle to Conn; the HTTP interface is only
// reachable through the driver's std API
type httpConn struct {
	db *sql.DB
}

func (c *httpConn) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *httpConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &httpRows{rows: rows}, nil
}

func (c *httpConn) PrepareBatch(ctx context.Context, query string) (Batch, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	return &stmtBatch{ctx: ctx, tx: tx, stmt: stmt}, nil
}

func (c *httpConn) Close() error {
	return c.db.Close()
}

type httpRows struct {
	rows *sql.Rows
}

func (r *httpRows) Next() bool {
	return r.rows.Next()
}

func (r *httpRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

func (r *httpRows) ColumnTypes() []ColumnType {
	types, err := r.rows.ColumnTypes()
	if err != nil {
		return nil
	}
	result := make([]ColumnType, len(types))
	for i, ct := range types {
		result[i] = ColumnType{Name: ct.Name(), ScanType: ct.ScanType()}
	}
	return result
}

func (r *httpRows) Close() error {
	return r.rows.Close()
}

func (r *httpRows) Err() error {
	return r.rows.Err()
}

// stmtBatch a transaction-scoped batch; rows are staged with the prepared
// statement and delivered on commit
type stmtBatch struct {
	ctx  context.Context
	tx   *sql.Tx
	stmt *sql.Stmt
}

func (b *stmtBatch) Append(v ...any) error {
	_, err := b.stmt.ExecContext(b.ctx, v...)
	return err
}

func (b *stmtBatch) Send() error {
	if err := b.stmt.Close(); err != nil {
		_ = b.tx.Rollback()
		return err
	}
	return b.tx.Commit()
}

func (b *stmtBatch) Abort() error {
	_ = b.stmt.Close()
	return b.tx.Rollback()
}
