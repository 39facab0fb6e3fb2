package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"3001"`
		Host     string `envconfig:"HOST"      default:"0.0.0.0"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"NAME"     default:"tourbook"`
		Timezone string `envconfig:"TIMEZONE" default:"Asia/Qatar"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS" default:"true"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"   default:"Accept,Authorization,Content-Type,X-API-Key"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"   default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"   default:"http://localhost:3000"`
			Enable           bool     `envconfig:"ENABLE"            default:"true"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"   default:"300"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"120"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
		Brand  struct {
			Name    string `envconfig:"NAME"    default:"Arabian Adventure"`
			Color   string `envconfig:"COLOR"   default:"#8B1538"`
			Phone   string `envconfig:"PHONE"   default:"+974 7780 7165"`
			Email   string `envconfig:"EMAIL"   default:"info@arabianadventure.com"`
			Website string `envconfig:"WEBSITE"`
		} `envconfig:"BRAND"`
		Booking struct {
			EnforceCapacity bool `envconfig:"ENFORCE_CAPACITY"`
		} `envconfig:"BOOKING"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"     default:"localhost"`
				Port     string `envconfig:"PORT"     default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"1440"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"       default:"5"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			MigrationPath  string `envconfig:"MIGRATION_PATH"  default:"file://migrations/postgres"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           Postgres `envconfig:"READ"`
			Write          Postgres `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS"        default:"localhost:9092"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"tourbook-notification"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topic struct {
			Notification string `envconfig:"NOTIFICATION" default:"tourbook.notification"`
		} `envconfig:"TOPIC"`
	} `envconfig:"KAFKA"`

	Notification struct {
		Queue string `envconfig:"QUEUE" default:"memory"`
	} `envconfig:"NOTIFICATION"`

	Worker struct {
		PoolSize           int `envconfig:"POOL_SIZE"            default:"4"`
		QueueSize          int `envconfig:"QUEUE_SIZE"           default:"100"`
		TaskTimeoutSeconds int `envconfig:"TASK_TIMEOUT_SECONDS" default:"30"`
	} `envconfig:"WORKER"`

	Mail struct {
		Driver     string `envconfig:"DRIVER"      default:"log"`
		FromEmail  string `envconfig:"FROM_EMAIL"  default:"no-reply@arabianadventure.com"`
		FromName   string `envconfig:"FROM_NAME"   default:"Arabian Adventure"`
		AdminEmail string `envconfig:"ADMIN_EMAIL"`
		Mailjet    struct {
			PublicKey  string `envconfig:"PUBLIC_KEY"`
			PrivateKey string `envconfig:"PRIVATE_KEY"`
		} `envconfig:"MAILJET"`
		SMTP struct {
			Host     string `envconfig:"HOST"`
			Port     string `envconfig:"PORT" default:"587"`
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SMTP"`
	} `envconfig:"MAIL"`

	Seed struct {
		Admin struct {
			Username string `envconfig:"USERNAME" default:"admin"`
			Email    string `envconfig:"EMAIL"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"ADMIN"`
	} `envconfig:"SEED"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			Region          string `envconfig:"REGION"            default:"auto"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			MaxUploadMB     int    `envconfig:"MAX_UPLOAD_MB"     default:"5"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

type Postgres struct {
	Host     string `envconfig:"HOST"     default:"localhost"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"     default:"postgres"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"     default:"tourbook"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		if loadErr := godotenv.Load(".env"); loadErr != nil {
			log.Warn().Err(loadErr).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			return
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("processing environment variables: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
