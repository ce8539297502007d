package cmd

type Config struct {
	HTTPPort             string
	PublicBaseURL        string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBSslMode            string
	RabbitMQURL          string
	AWSRegion            string
	AWSAccessKeyID       string
	AWSSecretAccessKey   string
	S3PhotoBucket        string
	PaymentBaseURL       string
	PaymentAPIKey        string
	MinimumChargeCents   int64
	SystemActorID        string
	ArchiveRetentionDays int
}
