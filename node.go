// Package clickhousenode implements a workflow-automation node that runs
// queries and batch inserts against a ClickHouse database on behalf of a
// workflow host.
package clickhousenode

import (
	"context"

	"github.com/nodeflow-project/clickhouse-node/log"
	"github.com/nodeflow-project/clickhouse-node/provider/clickhouse"
	"github.com/nodeflow-project/clickhouse-node/utils"
)

const (
	// CredentialName name of the stored credential resolved by the host
	CredentialName = "clickHouseApi"

	ParamOperation = "operation"
	ParamQuery     = "query"
	ParamTable     = "table"

	OperationQuery  = "executeQuery"
	OperationInsert = "insert"
)

const (
	ErrUnknownOperation = utils.Error("unknown operation")
)

// Definition returns the node's declarative parameter schema
func Definition() []Property {
	return []Property{
		{
			DisplayName: "Operation",
			Name:        ParamOperation,
			Type:        "options",
			Default:     OperationInsert,
			Options: []Option{
				{Name: "Execute Query", Value: OperationQuery},
				{Name: "Insert", Value: OperationInsert},
			},
		},
		{
			DisplayName: "Query",
			Name:        ParamQuery,
			Type:        "string",
			Required:    true,
			Description: "SQL statement to execute; may embed named typed parameters such as {quantity:Int32}",
			DisplayOptions: &DisplayOptions{
				Show: map[string][]string{ParamOperation: {OperationQuery}},
			},
		},
		{
			DisplayName: "Table",
			Name:        ParamTable,
			Type:        "string",
			Required:    true,
			Description: "Name of the table to insert the incoming items into",
			DisplayOptions: &DisplayOptions{
				Show: map[string][]string{ParamOperation: {OperationInsert}},
			},
		},
	}
}

// Node executes ClickHouse operations on behalf of the workflow host; it
// holds no per-invocation state and is safe for concurrent executions
type Node struct {
	connector *clickhouse.Connector
	logger    *log.Logger
}

// NewNode creates a Node with a default connector
func NewNode() *Node {
	logger := log.New("clickhouse-node")
	return &Node{
		connector: clickhouse.NewConnector(logger),
		logger:    logger,
	}
}

// NewNodeWithConnector creates a Node backed by the given connector
func NewNodeWithConnector(connector *clickhouse.Connector) *Node {
	return &Node{
		connector: connector,
		logger:    log.New("clickhouse-node"),
	}
}

// TestCredential checks the stored credential against the server; errors are
// converted into a structured result, never propagated
func (n *Node) TestCredential(ctx context.Context, ec ExecutionContext) clickhouse.TestResult {
	cfg := clickhouse.NewClientConfig()
	if err := ec.Credential(CredentialName, cfg); err != nil {
		return clickhouse.TestResult{Status: clickhouse.StatusError, Message: err.Error()}
	}
	return n.connector.TestConnection(ctx, cfg)
}

// Execute runs the configured operation and returns the node's output items:
// one item per result row for queries, the input items passed through for
// inserts
func (n *Node) Execute(ctx context.Context, ec ExecutionContext) ([]Item, error) {
	logger := n.logger.WithTraceID(log.NewTraceID())

	cfg := clickhouse.NewClientConfig()
	if err := ec.Credential(CredentialName, cfg); err != nil {
		return nil, err
	}
	operation, err := ec.Parameter(ParamOperation)
	if err != nil {
		return nil, err
	}

	switch operation {
	case OperationQuery:
		query, err := ec.Parameter(ParamQuery)
		if err != nil {
			return nil, err
		}
		logger.Debug("running query operation")
		records, err := n.connector.Query(ctx, cfg, query)
		if err != nil {
			return nil, err
		}
		return records, nil

	case OperationInsert:
		table, err := ec.Parameter(ParamTable)
		if err != nil {
			return nil, err
		}
		items := ec.InputItems()
		logger.Debug("running insert operation", map[string]interface{}{
			"table": table,
			"rows":  len(items),
		})
		if err = n.connector.Insert(ctx, cfg, table, items); err != nil {
			return nil, err
		}
		return items, nil

	default:
		return nil, ErrUnknownOperation
	}
}
