package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/spacesedan/insightflow/config"
	"github.com/spacesedan/insightflow/internal/clients"
	"github.com/spacesedan/insightflow/internal/handler"
	"github.com/spacesedan/insightflow/internal/insights"
	"github.com/spacesedan/insightflow/internal/language"
	"github.com/spacesedan/insightflow/internal/llm"
	"github.com/spacesedan/insightflow/internal/logging"
	"github.com/spacesedan/insightflow/internal/models"
	"github.com/spacesedan/insightflow/internal/monitoring"
	"github.com/spacesedan/insightflow/internal/pipeline"
	"github.com/spacesedan/insightflow/internal/safety"
	"github.com/spacesedan/insightflow/internal/segmentation"
	"github.com/spacesedan/insightflow/internal/validation"
)

// One deployed function serves one endpoint. HANDLER_MODE picks which.
const (
	HandlerModeInsights = "insights"
	HandlerModeSegments = "segments"
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type,Authorization",
	"Access-Control-Allow-Methods": "OPTIONS,POST",
	"Content-Type":                 "application/json",
}

var (
	handlerMode string
	pipe        *pipeline.Pipeline
	segments    *segmentation.Service
)

// init runs once per cold start and builds only the dependencies the
// configured mode needs.
func init() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		panic("[Lambda] invalid configuration: " + err.Error())
	}

	handlerMode = os.Getenv("HANDLER_MODE")
	if handlerMode == "" {
		handlerMode = HandlerModeInsights
	}

	switch handlerMode {
	case HandlerModeInsights:
		completer, err := llm.NewCompleter(cfg)
		if err != nil {
			panic("[Lambda] failed to build model client: " + err.Error())
		}
		validator, err := validation.NewValidator(cfg)
		if err != nil {
			panic("[Lambda] failed to load deny list: " + err.Error())
		}

		var tableSource safety.TableSource = safety.StaticSource{}
		if cfg.SafetyTableName != "" {
			tableSource = safety.NewDynamoSource(clients.GetDynamoDBClient(), cfg.SafetyTableName)
		}
		scanner := safety.NewScanner(safety.LoadTable(context.Background(), tableSource), safety.ScannerConfig{
			MinConfidence:     cfg.MinSafetyConfidence,
			SevereModifiers:   cfg.SevereModifiers,
			ModerateModifiers: cfg.ModerateModifiers,
		})

		pipe = pipeline.NewPipeline(
			validator,
			language.NewTranslator(completer),
			scanner,
			insights.NewExtractor(completer),
			monitoring.NewPublisher(cfg),
			cfg.RequestTimeout,
		)
	case HandlerModeSegments:
		segments = segmentation.NewService(
			clients.GetSageMakerClient(),
			clients.GetSageMakerRuntimeClient(),
			cfg.EndpointKeyword,
		)
	default:
		panic("[Lambda] invalid HANDLER_MODE: " + handlerMode)
	}

	slog.Info("[Lambda] Cold start complete",
		slog.String("environment", env),
		slog.String("mode", handlerMode))
}

func HandleRequest(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if event.HTTPMethod == http.MethodOptions {
		return respond(http.StatusOK, map[string]string{"status": "ok"})
	}

	body := event.Body
	if body == "" {
		body = "{}"
	}

	switch handlerMode {
	case HandlerModeSegments:
		return handleSegments(ctx, body)
	default:
		return handleInsights(ctx, body)
	}
}

func handleInsights(ctx context.Context, body string) (events.APIGatewayProxyResponse, error) {
	var req models.FeedbackRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return respond(handler.InsightsBindErrorBody())
	}

	resp, err := pipe.Process(ctx, req)
	if err != nil {
		status, errBody := handler.InsightsErrorBody(err)
		if status >= http.StatusInternalServerError {
			slog.Error("[Lambda] Insights request failed", slog.String("error", err.Error()))
		}
		return respond(status, errBody)
	}
	return respond(http.StatusOK, resp)
}

func handleSegments(ctx context.Context, body string) (events.APIGatewayProxyResponse, error) {
	var req models.SegmentRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return respond(handler.SegmentsBindErrorBody())
	}

	resp, err := segments.Predict(ctx, req)
	if err != nil {
		status, errBody := handler.SegmentsErrorBody(err)
		if status >= http.StatusInternalServerError {
			slog.Error("[Lambda] Segment prediction failed", slog.String("error", err.Error()))
		}
		return respond(status, errBody)
	}
	return respond(http.StatusOK, resp)
}

func respond(status int, body any) (events.APIGatewayProxyResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    corsHeaders,
			Body:       `{"status":"error","error":"Internal error"}`,
		}, nil
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    corsHeaders,
		Body:       string(payload),
	}, nil
}

func main() {
	lambda.Start(HandleRequest)
}
