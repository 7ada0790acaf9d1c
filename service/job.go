package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/mediaconvert"
	"github.com/aws/aws-sdk-go-v2/service/mediaconvert/types"
	"video-dispatcher/constant"
)

type JobCreator interface {
	CreateJob(ctx context.Context, params *mediaconvert.CreateJobInput, optFns ...func(*mediaconvert.Options)) (*mediaconvert.CreateJobOutput, error)
}

// JobResult is what MediaConvert reports right after accepting a job.
type JobResult struct {
	ID     string
	Status types.JobStatus
}

func SourceURI(bucket, key string) string {
	return fmt.Sprintf("%s://%s/%s", constant.StorageScheme, bucket, key)
}

func DestinationURI(bucket string) string {
	return fmt.Sprintf("%s://%s/%s", constant.StorageScheme, bucket, constant.OutputPrefix)
}

// BuildJobRequest returns the job for one source file. Only the role, the
// source URI and the destination bucket vary; the input and the two MP4
// renditions are fixed.
func BuildJobRequest(role, sourceURI, bucket string) *mediaconvert.CreateJobInput {
	input := types.Input{
		FileInput: aws.String(sourceURI),
		AudioSelectors: map[string]types.AudioSelector{
			constant.AudioSelectorName: {
				Offset:           aws.Int32(0),
				DefaultSelection: types.AudioDefaultSelectionDefault,
				ProgramSelection: aws.Int32(1),
			},
		},
		VideoSelector: &types.VideoSelector{
			ColorSpace: types.ColorSpaceFollow,
		},
		FilterEnable:   types.InputFilterEnableAuto,
		PsiControl:     types.InputPsiControlUsePsi,
		DeblockFilter:  types.InputDeblockFilterDisabled,
		DenoiseFilter:  types.InputDenoiseFilterDisabled,
		TimecodeSource: types.InputTimecodeSourceEmbedded,
		FilterStrength: aws.Int32(0),
	}

	outputGroup := types.OutputGroup{
		Name: aws.String(constant.OutputGroupName),
		OutputGroupSettings: &types.OutputGroupSettings{
			Type: types.OutputGroupTypeFileGroupSettings,
			FileGroupSettings: &types.FileGroupSettings{
				Destination: aws.String(DestinationURI(bucket)),
			},
		},
		Outputs: []types.Output{
			{
				Preset:       aws.String(constant.Preset720p),
				Extension:    aws.String(constant.OutputExtension),
				NameModifier: aws.String(constant.NameModifier720p),
				ContainerSettings: &types.ContainerSettings{
					Container: types.ContainerTypeMp4,
					Mp4Settings: &types.Mp4Settings{
						CslgAtom:      types.Mp4CslgAtomInclude,
						FreeSpaceBox:  types.Mp4FreeSpaceBoxExclude,
						MoovPlacement: types.Mp4MoovPlacementProgressiveDownload,
					},
				},
			},
			{
				Preset:       aws.String(constant.Preset1080p),
				Extension:    aws.String(constant.OutputExtension),
				NameModifier: aws.String(constant.NameModifier1080p),
			},
		},
	}

	return &mediaconvert.CreateJobInput{
		Role: aws.String(role),
		Settings: &types.JobSettings{
			AdAvailOffset: aws.Int32(0),
			Inputs:        []types.Input{input},
			OutputGroups:  []types.OutputGroup{outputGroup},
		},
	}
}

// CreateJob submits one job and returns the status MediaConvert assigned to it.
func CreateJob(ctx context.Context, client JobCreator, role, sourceURI, bucket string) (JobResult, error) {
	out, err := client.CreateJob(ctx, BuildJobRequest(role, sourceURI, bucket))
	if err != nil {
		return JobResult{}, classifyCreateJobError(sourceURI, err)
	}
	if out == nil || out.Job == nil {
		return JobResult{}, &SubmissionError{SourceURI: sourceURI, Err: errors.New("empty CreateJob response")}
	}

	return JobResult{
		ID:     aws.ToString(out.Job.Id),
		Status: out.Job.Status,
	}, nil
}
