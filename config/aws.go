package config

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// LoadAWS builds the SDK configuration for the configured region. Static keys
// are used when both halves are set, otherwise the default chain applies
// (Lambda execution role, shared profile, instance metadata).
func (c *Config) LoadAWS(ctx context.Context) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.AWS.Region),
	}
	if c.AWS.AccessKeyID != "" && c.AWS.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AWS.AccessKeyID, c.AWS.SecretAccessKey, c.AWS.SessionToken),
		))
	}

	return awsconfig.LoadDefaultConfig(ctx, opts...)
}
