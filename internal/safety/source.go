package safety

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// TableSource yields the adverse-event rule table once at startup.
type TableSource interface {
	Load(ctx context.Context) (Table, error)
}

// StaticSource serves the rules compiled into the binary.
type StaticSource struct{}

func (StaticSource) Load(ctx context.Context) (Table, error) {
	return BuiltinTable(), nil
}

// DynamoSource reads event rules from a DynamoDB table so a deployed
// detector can be extended without a release.
type DynamoSource struct {
	client    dynamodb.ScanAPIClient
	tableName string
}

func NewDynamoSource(client dynamodb.ScanAPIClient, tableName string) *DynamoSource {
	return &DynamoSource{client: client, tableName: tableName}
}

func (s *DynamoSource) Load(ctx context.Context) (Table, error) {
	var table Table
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.tableName),
	}

	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[SafetyTable] Scan for event rules failed: %w", err)
		}
		var page []EventRule
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			slog.Error("[SafetyTable] Unable to unmarshal current rules page",
				slog.String("error", err.Error()))
			return nil, err
		}
		table = append(table, page...)
	}

	slog.Info("[SafetyTable] Successfully retrieved event rules",
		slog.String("table", s.tableName),
		slog.Int("count", len(table)))
	return table, nil
}

// LoadTable resolves the scanner table, falling back to the builtin rules
// when the source fails or yields nothing.
func LoadTable(ctx context.Context, src TableSource) Table {
	table, err := src.Load(ctx)
	if err != nil {
		slog.Warn("[SafetyTable] Falling back to builtin rules",
			slog.String("error", err.Error()))
		return BuiltinTable()
	}
	if len(table) == 0 {
		slog.Warn("[SafetyTable] Source returned no rules, using builtin table")
		return BuiltinTable()
	}
	return table
}
