package clients

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sagemaker"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
)

var (
	awsCfg   aws.Config
	awsOnce  sync.Once
	endpoint string
)

func GetAWSConfig() aws.Config {
	awsOnce.Do(func() {
		slog.Info("[AWSClient] Initializing AWS Config...")
		cfg, err := config.LoadDefaultConfig(context.Background())
		if err != nil {
			slog.Error("[AWSClient] Failed to load AWS config")
			panic(err)
		}

		awsCfg = cfg
		// Optional local override, e.g. a DynamoDB Local container
		endpoint = os.Getenv("AWS_ENDPOINT")
		slog.Info("[AWSClient] AWS Config Initialized")
	})

	return awsCfg
}

var (
	dynamoOnce   sync.Once
	dynamoClient *dynamodb.Client
)

func GetDynamoDBClient() *dynamodb.Client {
	dynamoOnce.Do(func() {
		dynamoClient = dynamodb.NewFromConfig(GetAWSConfig(), func(o *dynamodb.Options) {
			if endpoint != "" {
				o.BaseEndpoint = aws.String(endpoint)
			}
		})
	})
	return dynamoClient
}

var (
	bedrockOnce   sync.Once
	bedrockClient *bedrockruntime.Client
)

// GetBedrockClient returns the shared Bedrock runtime client. The hosted
// model may live in a different region than the rest of the stack.
func GetBedrockClient(region string) *bedrockruntime.Client {
	bedrockOnce.Do(func() {
		bedrockClient = bedrockruntime.NewFromConfig(GetAWSConfig(), func(o *bedrockruntime.Options) {
			if region != "" {
				o.Region = region
			}
		})
		slog.Info("[AWSClient] Bedrock runtime client initialized",
			slog.String("region", region))
	})
	return bedrockClient
}

var (
	sagemakerOnce   sync.Once
	sagemakerClient *sagemaker.Client
)

func GetSageMakerClient() *sagemaker.Client {
	sagemakerOnce.Do(func() {
		sagemakerClient = sagemaker.NewFromConfig(GetAWSConfig())
	})
	return sagemakerClient
}

var (
	sagemakerRuntimeOnce   sync.Once
	sagemakerRuntimeClient *sagemakerruntime.Client
)

func GetSageMakerRuntimeClient() *sagemakerruntime.Client {
	sagemakerRuntimeOnce.Do(func() {
		sagemakerRuntimeClient = sagemakerruntime.NewFromConfig(GetAWSConfig())
	})
	return sagemakerRuntimeClient
}

var (
	cloudwatchOnce   sync.Once
	cloudwatchClient *cloudwatch.Client
)

func GetCloudWatchClient() *cloudwatch.Client {
	cloudwatchOnce.Do(func() {
		cloudwatchClient = cloudwatch.NewFromConfig(GetAWSConfig())
	})
	return cloudwatchClient
}
