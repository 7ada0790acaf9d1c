package constant

type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
	EnvironmentDevelop    Environment = "develop"
)

func (e Environment) String() string {
	return string(e)
}

// Storage addressing used to build MediaConvert file references.
const (
	StorageScheme = "s3"
	OutputPrefix  = "output/"
)

// Fixed job layout. Every submitted job has one input and one file group
// with the two renditions below.
const (
	AudioSelectorName = "Audio Selector 1"
	OutputGroupName   = "File Group"
	OutputExtension   = "mp4"

	Preset720p       = "System-Generic_Hd_Mp4_Avc_Aac_16x9_Sdr_1280x720p_30Hz_5Mbps_Qvbr_Vq9"
	NameModifier720p = "_Generic720"

	Preset1080p       = "System-Generic_Hd_Mp4_Avc_Aac_16x9_1920x1080p_60Hz_9Mbps"
	NameModifier1080p = "_Generic1080"
)

// ObjectCreatedEvent is the event name used for notifications published by
// the publish command.
const ObjectCreatedEvent = "s3:ObjectCreated:Put"
