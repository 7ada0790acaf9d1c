package service

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// ConnectivityError means MediaConvert could not be reached or did not answer
// the call named by Op.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("mediaconvert %s: connectivity: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// SubmissionError means MediaConvert answered and rejected the job.
type SubmissionError struct {
	SourceURI string
	Code      string
	Err       error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("mediaconvert rejected job for %s: %v", e.SourceURI, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// authErrorCodes are answers from the request signing layer. The job itself
// was never looked at.
var authErrorCodes = map[string]bool{
	"UnrecognizedClientException": true,
	"InvalidSignatureException":   true,
	"ExpiredTokenException":       true,
	"IncompleteSignature":         true,
	"MissingAuthenticationToken":  true,
}

func classifyCreateJobError(sourceURI string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if authErrorCodes[apiErr.ErrorCode()] {
			return &ConnectivityError{Op: "CreateJob", Err: err}
		}
		return &SubmissionError{SourceURI: sourceURI, Code: apiErr.ErrorCode(), Err: err}
	}
	return &ConnectivityError{Op: "CreateJob", Err: err}
}
