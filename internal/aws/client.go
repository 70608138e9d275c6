package aws

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iotevents"
	"github.com/aws/aws-sdk-go-v2/service/machinelearning"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go/logging"

	"github.com/vietdv277/stratus/pkg/provider"
)

// Service names used in the operation catalog and on the command line.
const (
	ServiceIoTEvents = "iotevents"
	ServiceML        = "ml"
)

// Client wraps AWS SDK clients
type Client struct {
	IoTEvents provider.IoTEventsAPI
	ML        provider.MachineLearningAPI
	STS       provider.IdentityAPI

	cfg     aws.Config
	profile string
	region  string
	logger  *slog.Logger
	debug   bool
}

// ClientOption allows customizing the AWS Client
type ClientOption func(*Client)

// WithProfile sets the AWS profile for the client
func WithProfile(profile string) ClientOption {
	return func(c *Client) {
		c.profile = profile
	}
}

// WithRegion sets the AWS region for the client
func WithRegion(region string) ClientOption {
	return func(c *Client) {
		c.region = region
	}
}

// WithLogger routes SDK log output to logger. With debug set, requests and
// retries are logged as well.
func WithLogger(logger *slog.Logger, debug bool) ClientOption {
	return func(c *Client) {
		c.logger = logger
		c.debug = debug
	}
}

// NewClient creates a new AWS Client with the given options
func NewClient(ctx context.Context, opts ...ClientOption) (*Client, error) {
	c := &Client{}

	for _, opt := range opts {
		opt(c)
	}

	var configOpts []func(*config.LoadOptions) error

	if c.profile != "" {
		configOpts = append(configOpts, config.WithSharedConfigProfile(c.profile))
	}

	if c.region != "" {
		configOpts = append(configOpts, config.WithRegion(c.region))
	}

	if c.logger != nil {
		configOpts = append(configOpts, config.WithLogger(slogLogger{logger: c.logger}))
		if c.debug {
			configOpts = append(configOpts, config.WithClientLogMode(aws.LogRequest|aws.LogResponse|aws.LogRetries))
		}
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	c.cfg = cfg
	c.IoTEvents = iotevents.NewFromConfig(cfg)
	c.ML = machinelearning.NewFromConfig(cfg)
	c.STS = sts.NewFromConfig(cfg)

	return c, nil
}

// Region returns the region the SDK resolved.
func (c *Client) Region() string {
	return c.cfg.Region
}

// Service returns the SDK client for a catalog service name.
func (c *Client) Service(name string) (any, error) {
	switch name {
	case ServiceIoTEvents:
		return c.IoTEvents, nil
	case ServiceML:
		return c.ML, nil
	default:
		return nil, fmt.Errorf("%w: %s", provider.ErrNotSupported, name)
	}
}

// slogLogger adapts slog to the smithy logging interface.
type slogLogger struct {
	logger *slog.Logger
	ctx    context.Context
}

func (l slogLogger) Logf(classification logging.Classification, format string, v ...interface{}) {
	ctx := l.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	level := slog.LevelDebug
	if classification == logging.Warn {
		level = slog.LevelWarn
	}
	l.logger.Log(ctx, level, fmt.Sprintf(format, v...), "source", "aws-sdk")
}

func (l slogLogger) WithContext(ctx context.Context) logging.Logger {
	return slogLogger{logger: l.logger, ctx: ctx}
}
