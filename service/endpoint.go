package service

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/mediaconvert"
	"github.com/rs/zerolog"
)

var ErrNoEndpoint = errors.New("mediaconvert returned no endpoints")

type EndpointDescriber interface {
	DescribeEndpoints(ctx context.Context, params *mediaconvert.DescribeEndpointsInput, optFns ...func(*mediaconvert.Options)) (*mediaconvert.DescribeEndpointsOutput, error)
}

// ResolveEndpoint asks the regional control plane for the account endpoint and
// returns the first one listed.
func ResolveEndpoint(ctx context.Context, describer EndpointDescriber) (string, error) {
	out, err := describer.DescribeEndpoints(ctx, &mediaconvert.DescribeEndpointsInput{})
	if err != nil {
		return "", &ConnectivityError{Op: "DescribeEndpoints", Err: err}
	}

	if len(out.Endpoints) == 0 || aws.ToString(out.Endpoints[0].Url) == "" {
		return "", &ConnectivityError{Op: "DescribeEndpoints", Err: ErrNoEndpoint}
	}

	return aws.ToString(out.Endpoints[0].Url), nil
}

// NewClient returns a MediaConvert client bound to the account endpoint. The
// endpoint is discovered through a throwaway regional client unless override
// is set.
func NewClient(ctx context.Context, awsCfg aws.Config, override string) (*mediaconvert.Client, error) {
	endpoint := override
	if endpoint == "" {
		var err error
		endpoint, err = ResolveEndpoint(ctx, mediaconvert.NewFromConfig(awsCfg))
		if err != nil {
			return nil, err
		}
	}

	zerolog.Ctx(ctx).Info().Str("region", awsCfg.Region).Str("endpoint", endpoint).Msg("mediaconvert endpoint resolved")

	return mediaconvert.NewFromConfig(awsCfg, func(o *mediaconvert.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	}), nil
}
