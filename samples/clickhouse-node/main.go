package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nodeflow-project/clickhouse-node/config/provider"
	"github.com/nodeflow-project/clickhouse-node/log"
	"github.com/nodeflow-project/clickhouse-node/provider/clickhouse"
)

// sample config, used when no config file is given on the command line
const defaultConfig = `{
	"credentials": {
		"url": "http://localhost:8123",
		"database": "default",
		"username": "default",
		"password": ""
	}
}`

func main() {
	if err := log.Configure(log.NewDefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "logger setup failed: %v\n", err)
		os.Exit(1)
	}
	logger := log.New("sample")

	var src interface{} = []byte(defaultConfig)
	if len(os.Args) > 1 {
		src = os.Args[1]
	}
	cfgProvider, err := provider.NewJsonProvider(src)
	if err != nil {
		logger.Error(err, "could not load configuration")
		os.Exit(1)
	}

	clientConfig := clickhouse.NewClientConfig()
	if err = cfgProvider.GetKey("credentials", clientConfig); err != nil {
		logger.Error(err, "could not read credentials")
		os.Exit(1)
	}

	ctx := context.Background()
	connector := clickhouse.NewConnector(logger)

	result := connector.TestConnection(ctx, clientConfig)
	if result.Status != clickhouse.StatusOK {
		logger.Error(nil, "connection test failed", map[string]interface{}{"message": result.Message})
		os.Exit(1)
	}
	logger.Info("connected to ClickHouse server")

	records, err := connector.Query(ctx, clientConfig, "SELECT number, toString(number) AS label FROM system.numbers LIMIT 5")
	if err != nil {
		logger.Error(err, "query failed")
		os.Exit(1)
	}
	for _, record := range records {
		fmt.Printf("number=%v label=%v\n", record["number"], record["label"])
	}
}
