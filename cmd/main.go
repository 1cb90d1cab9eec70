package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"faq-agent/handler"
	"faq-agent/internal/config"
	"faq-agent/internal/integrations/bedrock"
	"faq-agent/internal/integrations/paramstore"
	"faq-agent/internal/logging"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	cfg := config.Load()
	logger := logging.New(cfg.Env)

	// ---- AWS SDK config ----
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.BedrockRegion))
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	var opts []bedrock.Option
	if cfg.ParamPrefix != "" {
		ssmClient, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
		if err != nil {
			slog.Error("failed to create SSM client", "err", err)
			os.Exit(1)
		}
		opts = append(opts, bedrock.WithPromptStore(ssmClient, cfg.ParamPrefix))
	}

	bedrockClient, err := bedrock.NewClient(
		bedrockruntime.NewFromConfig(awsCfg),
		logger,
		cfg.ModelID,
		cfg.KnowledgeBaseID,
		opts...,
	)
	if err != nil {
		slog.Error("failed to create Bedrock client", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	h, err := handler.NewHandler(bedrockClient, cfg, logger)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
