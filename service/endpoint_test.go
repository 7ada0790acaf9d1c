package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/mediaconvert"
	"github.com/aws/aws-sdk-go-v2/service/mediaconvert/types"
)

type stubDescriber struct {
	endpoints []types.Endpoint
	err       error
	calls     int
}

func (s *stubDescriber) DescribeEndpoints(_ context.Context, _ *mediaconvert.DescribeEndpointsInput, _ ...func(*mediaconvert.Options)) (*mediaconvert.DescribeEndpointsOutput, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &mediaconvert.DescribeEndpointsOutput{Endpoints: s.endpoints}, nil
}

func TestResolveEndpointPicksFirst(t *testing.T) {
	stub := &stubDescriber{endpoints: []types.Endpoint{
		{Url: aws.String("https://abcd1234.mediaconvert.us-east-1.amazonaws.com")},
		{Url: aws.String("https://other.mediaconvert.us-east-1.amazonaws.com")},
	}}

	url, err := ResolveEndpoint(context.Background(), stub)
	if err != nil {
		t.Fatalf("ResolveEndpoint: %v", err)
	}
	if url != "https://abcd1234.mediaconvert.us-east-1.amazonaws.com" {
		t.Errorf("url = %q", url)
	}
	if stub.calls != 1 {
		t.Errorf("DescribeEndpoints called %d times", stub.calls)
	}
}

func TestResolveEndpointEmptyList(t *testing.T) {
	for name, endpoints := range map[string][]types.Endpoint{
		"no endpoints": nil,
		"blank url":    {{Url: aws.String("")}},
		"nil url":      {{}},
	} {
		t.Run(name, func(t *testing.T) {
			url, err := ResolveEndpoint(context.Background(), &stubDescriber{endpoints: endpoints})
			if !errors.Is(err, ErrNoEndpoint) {
				t.Fatalf("want ErrNoEndpoint, got %v", err)
			}
			if url != "" {
				t.Errorf("url = %q, want empty", url)
			}
		})
	}
}

func TestResolveEndpointFailure(t *testing.T) {
	cause := errors.New("no such host")
	_, err := ResolveEndpoint(context.Background(), &stubDescriber{err: cause})

	var connErr *ConnectivityError
	if !errors.As(err, &connErr) || connErr.Op != "DescribeEndpoints" {
		t.Fatalf("want ConnectivityError, got %T: %v", err, err)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not wrapped")
	}
}

func TestNewClientWithOverrideSkipsDiscovery(t *testing.T) {
	cfg := aws.Config{Region: "us-east-1", Credentials: aws.AnonymousCredentials{}}
	client, err := NewClient(context.Background(), cfg, "https://abcd1234.mediaconvert.us-east-1.amazonaws.com")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if got := aws.ToString(client.Options().BaseEndpoint); got != "https://abcd1234.mediaconvert.us-east-1.amazonaws.com" {
		t.Errorf("base endpoint = %q", got)
	}
}
