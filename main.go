package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/flowstack/resendstack/config"
	"github.com/flowstack/resendstack/dto"
	"github.com/flowstack/resendstack/interfaces"
	"github.com/flowstack/resendstack/internal/logger"
	"github.com/flowstack/resendstack/internal/tracing"
	"github.com/flowstack/resendstack/internal/utils"
	"github.com/flowstack/resendstack/services/render"
	"github.com/flowstack/resendstack/services/resend"
	"github.com/flowstack/resendstack/services/storage"
	"github.com/flowstack/resendstack/tasks"
	"github.com/flowstack/resendstack/tasks/domain"
	"github.com/flowstack/resendstack/tasks/email"
)

func main() {
	app := &cli.App{
		Name:  "resendstack",
		Usage: "run Resend workflow tasks from a definition file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "definition",
				Aliases:  []string{"d"},
				Usage:    "path to the task definition JSON file",
				Required: true,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "send-email",
				Usage: "send a transactional email through Resend",
				Action: func(c *cli.Context) error {
					return runTask(c, func(ctx context.Context, rt *tasks.Runtime, raw json.RawMessage) (interface{}, error) {
						var task email.Send
						if err := json.Unmarshal(raw, &task); err != nil {
							return nil, errors.Wrap(err, "invalid send-email task configuration")
						}
						return task.Run(ctx, rt)
					})
				},
			},
			{
				Name:  "create-domain",
				Usage: "register a sending domain with Resend",
				Action: func(c *cli.Context) error {
					return runTask(c, func(ctx context.Context, rt *tasks.Runtime, raw json.RawMessage) (interface{}, error) {
						var task domain.Create
						if err := json.Unmarshal(raw, &task); err != nil {
							return nil, errors.Wrap(err, "invalid create-domain task configuration")
						}
						return task.Run(ctx, rt)
					})
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

type taskFunc func(ctx context.Context, rt *tasks.Runtime, raw json.RawMessage) (interface{}, error)

func runTask(c *cli.Context, run taskFunc) error {
	cfg, err := config.InitConfig()
	if err != nil {
		return errors.Wrap(err, "config initialization failed")
	}

	appLogger := logger.NewAppLogger(cfg.Logger)
	appLogger.InitLogger()

	tracer, closer, err := tracing.NewJaegerTracer(cfg.Tracing, appLogger)
	if err != nil {
		return errors.Wrap(err, "tracer initialization failed")
	}
	defer closer.Close()
	opentracing.SetGlobalTracer(tracer)

	definition, err := loadDefinition(c.String("definition"))
	if err != nil {
		return err
	}

	blobStore, err := newBlobStore(cfg.BlobStorageConfig)
	if err != nil {
		return err
	}

	rt := &tasks.Runtime{
		Renderer: render.NewRenderer(definition.Vars),
		Storage:  blobStore,
		NewClient: func(apiKey string) interfaces.MailClient {
			return resend.NewClient(apiKey, resend.WithBaseURL(cfg.ResendConfig.BaseURL))
		},
		Log: appLogger,
	}

	ctx := utils.WithRunScope(context.Background(), &utils.RunScope{
		ExecutionID: utils.GenerateExecutionID(),
		FlowID:      definition.FlowID,
		Namespace:   utils.StringOrDefault(definition.Namespace, cfg.AppConfig.Namespace),
		TaskID:      definition.ID,
	})
	span, ctx := tracing.StartTracerSpan(ctx, "cli."+c.Command.Name)
	defer span.Finish()

	output, err := run(ctx, rt, definition.Task)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot encode task output")
	}
	fmt.Println(string(encoded))

	return nil
}

func loadDefinition(path string) (*dto.TaskDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read task definition")
	}

	var definition dto.TaskDefinition
	if err := json.Unmarshal(data, &definition); err != nil {
		return nil, errors.Wrap(err, "cannot parse task definition")
	}
	if len(definition.Task) == 0 {
		return nil, errors.New("task definition has no task configuration")
	}
	return &definition, nil
}

func newBlobStore(cfg *config.BlobStorageConfig) (interfaces.BlobStore, error) {
	switch cfg.Provider {
	case "s3":
		return storage.NewS3BlobStore(cfg.AWSRegion, cfg.AWSAccessKeyID, cfg.AWSAccessKeySecret, cfg.Bucket), nil
	case "r2":
		return storage.NewR2BlobStore(cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2AccessKeySecret, cfg.Bucket), nil
	default:
		return nil, errors.Errorf("unknown blob storage provider: %s", cfg.Provider)
	}
}
