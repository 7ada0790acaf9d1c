package config

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/viper"
)

type Config struct {
	App          App           `yaml:"app"`
	AWS          AWS           `yaml:"aws"`
	MediaConvert MediaConvert  `yaml:"mediaconvert"`
	DB           *sql.DB       `yaml:"db"`
	Queue        *RabbitMQ     `yaml:"rabbitmq"`
	Storage      *minio.Client `yaml:"storage"`
	MinIO        MinIO         `yaml:"minio"`
	Server       Server        `yaml:"server"`
}

type App struct {
	Environment string `yaml:"environment"`
}

type AWS struct {
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	SessionToken    string `yaml:"session_token"`
}

// MediaConvert holds the role the service assumes to reach the buckets and an
// optional endpoint that replaces DescribeEndpoints discovery.
type MediaConvert struct {
	Role     string `yaml:"role"`
	Endpoint string `yaml:"endpoint"`
}

type MinIO struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
}

type Server struct {
	HttpPort string `yaml:"port"`
	Workers  int    `yaml:"workers"`
}

type RabbitMQ struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	User         string `json:"user"`
	Pass         string `json:"pass"`
	ExchangeName string `json:"exchange_name"`
	Kind         string `json:"kind"`
	QueueName    string `json:"queue_name"`
	RoutingKey   string `json:"routing_key"`
	DLXName      string `json:"dlx_name"`
}

// ConfigurationError reports a required setting that is absent.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s is required", e.Key)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.environment", "production")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.workers", 1)
	v.SetDefault("rabbitmq.host", "localhost")
	v.SetDefault("rabbitmq.port", 5672)
	v.SetDefault("rabbitmq.user", "guest")
	v.SetDefault("rabbitmq.pass", "guest")
	v.SetDefault("rabbitmq.kind", "direct")
	v.SetDefault("rabbitmq.exchange", "bucketevents")
	v.SetDefault("rabbitmq.queue", "mediaconvert_dispatch")
	v.SetDefault("rabbitmq.routing_key", "bucketlogs")
	v.SetDefault("rabbitmq.dlx", "mediaconvert_dispatch_dlx")
}

// Load reads config.yaml from path when present and lets the environment
// override every key. MC_ROLE and AWS_REGION are honoured under their plain
// names since that is what the Lambda runtime provides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.BindEnv("mediaconvert.role", "MC_ROLE", "MEDIACONVERT_ROLE"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("aws.region", "AWS_REGION", "AWS_DEFAULT_REGION"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		App: App{
			Environment: v.GetString("app.environment"),
		},
		AWS: AWS{
			Region:          v.GetString("aws.region"),
			AccessKeyID:     v.GetString("aws.access_key_id"),
			SecretAccessKey: v.GetString("aws.secret_access_key"),
			SessionToken:    v.GetString("aws.session_token"),
		},
		MediaConvert: MediaConvert{
			Role:     v.GetString("mediaconvert.role"),
			Endpoint: v.GetString("mediaconvert.endpoint"),
		},
		MinIO: MinIO{
			Bucket: v.GetString("minio.bucket"),
			Prefix: v.GetString("minio.prefix"),
			Suffix: v.GetString("minio.suffix"),
		},
		Server: Server{
			HttpPort: v.GetString("server.port"),
			Workers:  v.GetInt("server.workers"),
		},
		Queue: &RabbitMQ{
			Host:         v.GetString("rabbitmq.host"),
			Port:         v.GetInt("rabbitmq.port"),
			User:         v.GetString("rabbitmq.user"),
			Pass:         v.GetString("rabbitmq.pass"),
			Kind:         v.GetString("rabbitmq.kind"),
			ExchangeName: v.GetString("rabbitmq.exchange"),
			QueueName:    v.GetString("rabbitmq.queue"),
			RoutingKey:   v.GetString("rabbitmq.routing_key"),
			DLXName:      v.GetString("rabbitmq.dlx"),
		},
	}

	if dsn := v.GetString("postgresql_host"); dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, err
		}
		cfg.DB = db
	}

	if url := v.GetString("minio.url"); url != "" {
		minioClient, err := minio.New(url, &minio.Options{
			Creds:  credentials.NewStaticV4(v.GetString("minio.access_id"), v.GetString("minio.secret_access_key"), ""),
			Secure: v.GetBool("minio.secure"),
		})
		if err != nil {
			return nil, err
		}
		cfg.Storage = minioClient
	}

	return cfg, nil
}

// Validate checks the settings every host needs before a MediaConvert client
// can be built.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.MediaConvert.Role) == "" {
		return &ConfigurationError{Key: "mediaconvert.role (MC_ROLE)"}
	}
	if strings.TrimSpace(c.AWS.Region) == "" {
		return &ConfigurationError{Key: "aws.region (AWS_REGION)"}
	}
	return nil
}
