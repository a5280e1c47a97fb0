package segmentation

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	sagemakertypes "github.com/aws/aws-sdk-go-v2/service/sagemaker/types"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"

	"github.com/spacesedan/insightflow/internal/models"
)

// ModelName labels every prediction response.
const ModelName = "K-means Customer Segmentation"

var (
	ErrNoFeatures = errors.New("missing features array")
	ErrNoEndpoint = errors.New("no matching in-service endpoint")
)

type EndpointLister interface {
	ListEndpoints(ctx context.Context, params *sagemaker.ListEndpointsInput, optFns ...func(*sagemaker.Options)) (*sagemaker.ListEndpointsOutput, error)
}

type EndpointInvoker interface {
	InvokeEndpoint(ctx context.Context, params *sagemakerruntime.InvokeEndpointInput, optFns ...func(*sagemakerruntime.Options)) (*sagemakerruntime.InvokeEndpointOutput, error)
}

// Service proxies feature matrices to the clustering endpoint. The endpoint
// is discovered per request by name keyword, so redeployments under a new
// name need no config change.
type Service struct {
	lister  EndpointLister
	invoker EndpointInvoker
	keyword string
}

func NewService(lister EndpointLister, invoker EndpointInvoker, keyword string) *Service {
	return &Service{
		lister:  lister,
		invoker: invoker,
		keyword: strings.ToLower(keyword),
	}
}

func (s *Service) Predict(ctx context.Context, req models.SegmentRequest) (models.SegmentResponse, error) {
	if len(req.Features) == 0 {
		return models.SegmentResponse{}, ErrNoFeatures
	}

	endpoint, err := s.findEndpoint(ctx)
	if err != nil {
		return models.SegmentResponse{}, err
	}

	start := time.Now()
	out, err := s.invoker.InvokeEndpoint(ctx, &sagemakerruntime.InvokeEndpointInput{
		EndpointName: aws.String(endpoint),
		ContentType:  aws.String("text/csv"),
		Accept:       aws.String("application/json"),
		Body:         []byte(featuresToCSV(req.Features)),
	})
	if err != nil {
		return models.SegmentResponse{}, fmt.Errorf("invoking endpoint %s: %w", endpoint, err)
	}

	var parsed struct {
		Predictions []models.ClusterPrediction `json:"predictions"`
	}
	if err := json.Unmarshal(out.Body, &parsed); err != nil {
		return models.SegmentResponse{}, fmt.Errorf("decoding endpoint response: %w", err)
	}
	if parsed.Predictions == nil {
		parsed.Predictions = []models.ClusterPrediction{}
	}

	slog.Info("[Segmentation] Predictions returned",
		slog.String("endpoint", endpoint),
		slog.Int("rows", len(req.Features)),
		slog.Duration("elapsed", time.Since(start)))

	return models.SegmentResponse{
		Predictions:       parsed.Predictions,
		Endpoint:          endpoint,
		Model:             ModelName,
		FeaturesProcessed: len(req.Features),
	}, nil
}

// findEndpoint returns the first in-service endpoint whose name contains the
// configured keyword, case-insensitively.
func (s *Service) findEndpoint(ctx context.Context) (string, error) {
	out, err := s.lister.ListEndpoints(ctx, &sagemaker.ListEndpointsInput{
		StatusEquals: sagemakertypes.EndpointStatusInService,
	})
	if err != nil {
		return "", fmt.Errorf("listing endpoints: %w", err)
	}

	for _, ep := range out.Endpoints {
		name := aws.ToString(ep.EndpointName)
		if strings.Contains(strings.ToLower(name), s.keyword) {
			return name, nil
		}
	}
	return "", ErrNoEndpoint
}

func featuresToCSV(features [][]float64) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range features {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		w.Write(record)
	}
	w.Flush()
	return strings.TrimRight(buf.String(), "\n")
}
