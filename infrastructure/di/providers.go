package di

import (
	"context"
	"fmt"
	"net/http"

	"markbase-backend/application/enrichment"
	"markbase-backend/application/ports"
	"markbase-backend/application/services"
	"markbase-backend/infrastructure/config"
	"markbase-backend/infrastructure/messaging/eventbridge"
	"markbase-backend/infrastructure/persistence/dynamodb"
	"markbase-backend/infrastructure/suggestion"
	"markbase-backend/interfaces/http/rest"
	"markbase-backend/pkg/auth"
	"markbase-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// BookmarkRepo and TempBookmarkRepo are distinct types for the two
// collection instances of the same port, so the injector can tell
// them apart.
type (
	BookmarkRepo     ports.BookmarkRepository
	TempBookmarkRepo ports.BookmarkRepository
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideBookmarkRepository creates the repository for the confirmed collection
func ProvideBookmarkRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) BookmarkRepo {
	return dynamodb.NewBookmarkRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideTempBookmarkRepository creates the repository for the temporary collection
func ProvideTempBookmarkRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) TempBookmarkRepo {
	return dynamodb.NewTempBookmarkRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideEventPublisher creates the lifecycle event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return eventbridge.NewEventBridgePublisher(
		client,
		cfg.EventBusName,
		logger,
	)
}

// ProvideSuggestionProvider creates the generative suggestion provider
func ProvideSuggestionProvider(cfg *config.Config, logger *zap.Logger) ports.SuggestionProvider {
	return suggestion.NewAnthropicProvider(cfg.SuggestionAPIKey, cfg.SuggestionModel, logger)
}

// ProvideMetrics creates metrics instance; nil when metrics are disabled
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	if !cfg.EnableMetrics {
		return nil
	}
	namespace := fmt.Sprintf("Markbase/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client)
}

// ProvideTracer creates a tracer instance; nil when tracing is disabled
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	if !cfg.EnableTracing {
		return nil
	}
	return observability.NewTracer("markbase-backend")
}

// ProvideEnrichmentPipeline creates the enrichment pipeline
func ProvideEnrichmentPipeline(
	provider ports.SuggestionProvider,
	tracer *observability.Tracer,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *enrichment.Pipeline {
	return enrichment.NewPipeline(provider, tracer, metrics, logger)
}

// ProvideBookmarkService creates the bookmark application service
func ProvideBookmarkService(repo BookmarkRepo, events ports.EventPublisher, logger *zap.Logger) *services.BookmarkService {
	return services.NewBookmarkService(repo, events, logger)
}

// ProvideTempBookmarkService creates the temp bookmark application service
func ProvideTempBookmarkService(
	tempRepo TempBookmarkRepo,
	repo BookmarkRepo,
	pipeline *enrichment.Pipeline,
	events ports.EventPublisher,
	logger *zap.Logger,
) *services.TempBookmarkService {
	return services.NewTempBookmarkService(tempRepo, repo, pipeline, events, logger)
}

// ProvideJWTValidator creates the JWT validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		// Development fallback; production requires JWT_SECRET (config.Validate)
		secret = "development-secret-change-in-production"
	}

	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    cfg.JWTIssuer,
		Audience:  []string{"markbase-api"},
	})
}

// ProvideHandler builds the configured HTTP handler
func ProvideHandler(
	bookmarkService *services.BookmarkService,
	tempService *services.TempBookmarkService,
	validator *auth.JWTValidator,
	cfg *config.Config,
	logger *zap.Logger,
) http.Handler {
	return rest.NewRouter(bookmarkService, tempService, validator, cfg, logger).Setup()
}
