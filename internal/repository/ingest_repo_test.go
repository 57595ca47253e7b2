package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resale-ops/backend-go/internal/domain"
)

// recordingConn is a minimal driver backing sql.OpenDB. It logs transaction
// boundaries and statements, and can be told to fail a matching statement.
type recordingConn struct {
	log         []string
	failOnQuery string
}

type recordingConnector struct {
	conn *recordingConn
}

func (c *recordingConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c *recordingConnector) Driver() driver.Driver                        { return nil }

func (c *recordingConn) Prepare(query string) (driver.Stmt, error) {
	return &recordingStmt{conn: c, query: query}, nil
}
func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) Begin() (driver.Tx, error) {
	c.log = append(c.log, "begin")
	return &recordingTx{conn: c}, nil
}

type recordingTx struct {
	conn *recordingConn
}

func (t *recordingTx) Commit() error {
	t.conn.log = append(t.conn.log, "commit")
	return nil
}

func (t *recordingTx) Rollback() error {
	t.conn.log = append(t.conn.log, "rollback")
	return nil
}

type recordingStmt struct {
	conn  *recordingConn
	query string
}

func (s *recordingStmt) Close() error  { return nil }
func (s *recordingStmt) NumInput() int { return -1 }

func (s *recordingStmt) Exec(args []driver.Value) (driver.Result, error) {
	if s.fails() {
		return nil, errors.New("statement failed")
	}
	s.conn.log = append(s.conn.log, "exec")
	return driver.RowsAffected(1), nil
}

func (s *recordingStmt) Query(args []driver.Value) (driver.Rows, error) {
	if s.fails() {
		return nil, errors.New("statement failed")
	}
	s.conn.log = append(s.conn.log, "query")
	return &idRows{}, nil
}

func (s *recordingStmt) fails() bool {
	return s.conn.failOnQuery != "" && strings.Contains(s.query, s.conn.failOnQuery)
}

// idRows yields a single row with one int64 column, enough for the
// RETURNING id upserts.
type idRows struct {
	done bool
}

func (r *idRows) Columns() []string { return []string{"id"} }
func (r *idRows) Close() error      { return nil }

func (r *idRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true
	dest[0] = int64(1)
	return nil
}

func newRecordingDB(failOnQuery string) (*recordingConn, *sql.DB) {
	conn := &recordingConn{failOnQuery: failOnQuery}
	return conn, sql.OpenDB(&recordingConnector{conn: conn})
}

func orderRow() *domain.OrderRow {
	return &domain.OrderRow{
		ExternalID: "ORD-1001",
		OrderedAt:  time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Status:     "shipped",
		SKU:        "SKU-1",
		Product:    "Vintage Denim Jacket",
		Category:   "outerwear",
		Quantity:   2,
		UnitPrice:  45.0,
		Total:      90.0,
	}
}

func TestIngestOrderRowCommitsOneTransaction(t *testing.T) {
	conn, db := newRecordingDB("")
	repo := NewIngestRepository(NewSQLTxRunner(db))

	err := repo.IngestOrderRow(context.Background(), orderRow())
	require.NoError(t, err)

	// Category, product and order upserts query, the item upsert and the
	// total refresh exec, all between one begin and one commit.
	assert.Equal(t, []string{"begin", "query", "query", "query", "exec", "exec", "commit"}, conn.log)
}

func TestIngestOrderRowRollsBackOnTotalRefreshFailure(t *testing.T) {
	conn, db := newRecordingDB("UPDATE orders SET total")
	repo := NewIngestRepository(NewSQLTxRunner(db))

	err := repo.IngestOrderRow(context.Background(), orderRow())
	require.Error(t, err)

	assert.Equal(t, "rollback", conn.log[len(conn.log)-1])
	assert.NotContains(t, conn.log, "commit")
}

func TestSetProductStockRunsInTransaction(t *testing.T) {
	conn, db := newRecordingDB("")
	repo := NewIngestRepository(NewSQLTxRunner(db))

	err := repo.SetProductStock(context.Background(), "SKU-1", 12)
	require.NoError(t, err)

	assert.Equal(t, []string{"begin", "exec", "commit"}, conn.log)
}
