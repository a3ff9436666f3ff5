package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cinelog/auth"
	"cinelog/dynamodb"
	"cinelog/httpserver"
	"cinelog/movie"
	"cinelog/pkg/config"
	"cinelog/pkg/hash"
	"cinelog/pkg/jwt"
	"cinelog/pkg/sentry"
	"cinelog/postgres"
	"cinelog/s3"
	"cinelog/user"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("Cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	blobStore, err := s3.New(ctx, s3.Options{
		Region:    cfg.S3.Region,
		Endpoint:  cfg.S3.Endpoint,
		Bucket:    cfg.S3.Bucket,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
	})
	if err != nil {
		slog.Error("Cannot create s3 blob store", "error", err)
		os.Exit(1)
	}

	// Login attempts live in DynamoDB when a table is configured, in
	// postgres otherwise.
	var attemptsRepo auth.LoginAttemptRepository
	if cfg.DynamoDB.LoginAttemptsTable != "" {
		client, err := dynamodb.NewClient(ctx, dynamodb.Options{
			Region:       cfg.DynamoDB.Region,
			Endpoint:     cfg.DynamoDB.Endpoint,
			AccessKey:    cfg.DynamoDB.AccessKey,
			SecretKey:    cfg.DynamoDB.SecretKey,
			SessionToken: cfg.DynamoDB.SessionToken,
		})
		if err != nil {
			slog.Error("Cannot create dynamodb client", "error", err)
			os.Exit(1)
		}
		attemptsRepo = dynamodb.NewLoginAttemptRepository(client, cfg.DynamoDB.LoginAttemptsTable)
	} else {
		attemptsRepo = postgres.NewLoginAttemptRepository(db)
	}

	tokenProvider := jwt.NewJWTProvider(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTL)*time.Second,
		time.Duration(cfg.Auth.RefreshTTL)*time.Second,
	)

	userService := user.NewUsecase(postgres.NewUserRepository(db), hash.NewBcryptHasher())

	server := httpserver.Default(cfg)
	server.AuthService = auth.NewUsecase(
		userService,
		attemptsRepo,
		hash.NewBcryptHasher(),
		tokenProvider,
	)
	server.MovieService = movie.NewUsecase(postgres.NewMovieRepository(db), blobStore)
	server.Addr = fmt.Sprintf(":%d", cfg.Port)

	slog.Info("server started!")
	if err := server.Start(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
