package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"washday/cmd"
	"washday/internal/adapters/out/payment"
	"washday/internal/adapters/out/postgres/customerrepo"
	"washday/internal/adapters/out/postgres/laundromatrepo"
	"washday/internal/adapters/out/postgres/notificationrepo"
	"washday/internal/adapters/out/postgres/orderrepo"
	"washday/internal/adapters/out/postgres/sessionrepo"
	"washday/internal/adapters/out/rabbitmq"
	"washday/internal/adapters/out/s3"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	brokerConn, err := rabbitmq.Connect(configs.RabbitMQURL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer func() {
		_ = brokerConn.Close()
	}()

	photoStore, err := s3.NewPhotoStore(context.Background(), s3.Config{
		Region:          configs.AWSRegion,
		AccessKeyID:     configs.AWSAccessKeyID,
		SecretAccessKey: configs.AWSSecretAccessKey,
		Bucket:          configs.S3PhotoBucket,
	})
	if err != nil {
		log.Fatalf("Failed to create photo store: %v", err)
	}

	paymentClient, err := payment.NewClient(configs.PaymentBaseURL, configs.PaymentAPIKey)
	if err != nil {
		log.Fatalf("Failed to create payment client: %v", err)
	}

	app, err := cmd.NewCompositionRoot(
		configs, gormDB, rabbitmq.NewNotifier(brokerConn), paymentClient, photoStore,
	)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := app.CreateJobManager(logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		PublicBaseURL:        goDotEnvVariable("PUBLIC_BASE_URL"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		RabbitMQURL:          goDotEnvVariable("RABBITMQ_URL"),
		AWSRegion:            goDotEnvVariable("AWS_REGION"),
		AWSAccessKeyID:       goDotEnvVariable("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey:   goDotEnvVariable("AWS_SECRET_ACCESS_KEY"),
		S3PhotoBucket:        goDotEnvVariable("S3_PHOTO_BUCKET"),
		PaymentBaseURL:       goDotEnvVariable("PAYMENT_BASE_URL"),
		PaymentAPIKey:        goDotEnvVariable("PAYMENT_API_KEY"),
		MinimumChargeCents:   goDotEnvInt64("MINIMUM_CHARGE_CENTS"),
		SystemActorID:        goDotEnvVariable("SYSTEM_ACTOR_ID"),
		ArchiveRetentionDays: int(goDotEnvInt64("ARCHIVE_RETENTION_DAYS")),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvInt64(key string) int64 {
	value, err := strconv.ParseInt(goDotEnvVariable(key), 10, 64)
	if err != nil {
		log.Fatalf("Environment variable %s is not a number: %v", key, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.HistoryDTO{},
		&laundromatrepo.LaundromatDTO{}, &laundromatrepo.ServiceAreaDTO{},
		&laundromatrepo.CapacityDayDTO{},
		&customerrepo.CustomerDTO{},
		&notificationrepo.NotificationDTO{},
		&sessionrepo.SessionDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateHTTPServer().RegisterRoutes(e, app.CreateAuthMiddleware())
	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
