package monitoring

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/spacesedan/insightflow/config"
	"github.com/spacesedan/insightflow/internal/clients"
)

const (
	MetricRequestCount       = "RequestCount"
	MetricProcessingLatency  = "ProcessingLatency"
	MetricAdverseEvents      = "AdverseEventsDetected"
	MetricExtractionFailures = "ExtractionFailures"
)

// Publisher records operational metrics. Implementations must never fail a
// request: publishing problems are logged and swallowed.
type Publisher interface {
	Count(ctx context.Context, name string, value float64)
	Duration(ctx context.Context, name string, d time.Duration)
}

// NewPublisher returns the CloudWatch publisher when metrics are enabled,
// otherwise a no-op.
func NewPublisher(cfg *config.Config) Publisher {
	if !cfg.MetricsEnabled {
		return NopPublisher{}
	}
	return NewCloudWatchPublisher(clients.GetCloudWatchClient(), cfg.MetricsNamespace)
}

type metricPutter interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

type CloudWatchPublisher struct {
	client    metricPutter
	namespace string
}

func NewCloudWatchPublisher(client metricPutter, namespace string) *CloudWatchPublisher {
	return &CloudWatchPublisher{client: client, namespace: namespace}
}

func (p *CloudWatchPublisher) Count(ctx context.Context, name string, value float64) {
	p.put(ctx, name, value, types.StandardUnitCount)
}

func (p *CloudWatchPublisher) Duration(ctx context.Context, name string, d time.Duration) {
	p.put(ctx, name, float64(d.Milliseconds()), types.StandardUnitMilliseconds)
}

// put publishes on a short detached deadline so a slow or cancelled request
// context never blocks or drops the datapoint.
func (p *CloudWatchPublisher) put(ctx context.Context, name string, value float64, unit types.StandardUnit) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), clients.METRICS_TIMEOUT)
	defer cancel()

	_, err := p.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(p.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(name),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
			},
		},
	})
	if err != nil {
		slog.Warn("[Metrics] Failed to publish datapoint",
			slog.String("metric", name),
			slog.String("error", err.Error()))
	}
}

// NopPublisher drops every datapoint. Used when metrics are disabled.
type NopPublisher struct{}

func (NopPublisher) Count(ctx context.Context, name string, value float64)       {}
func (NopPublisher) Duration(ctx context.Context, name string, d time.Duration) {}
