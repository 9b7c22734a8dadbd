package clickhousenode

import "github.com/nodeflow-project/clickhouse-node/provider/clickhouse"

// Item one workflow data item flowing between nodes; same shape as a query
// result record
type Item = clickhouse.Record

// ExecutionContext is the node's view of the host workflow engine for a
// single invocation; the host resolves credentials, parameters and upstream
// items
type ExecutionContext interface {
	// Credential decodes the named stored credential into dest
	Credential(name string, dest any) error
	// Parameter returns the resolved value of a node parameter
	Parameter(name string) (string, error)
	// InputItems returns the items produced by the upstream node
	InputItems() []Item
}
