package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"

	config "github.com/iggarsaudev/Api-IgLusShop/internal/cfg"
	v1Http "github.com/iggarsaudev/Api-IgLusShop/internal/delivery/v1/http"
	"github.com/iggarsaudev/Api-IgLusShop/internal/infrastructure/kafka"
	s3Repo "github.com/iggarsaudev/Api-IgLusShop/internal/repository/minio"
	"github.com/iggarsaudev/Api-IgLusShop/internal/repository/pgdb"
	pgdbConv "github.com/iggarsaudev/Api-IgLusShop/internal/repository/pgdb/converter"
	redisRepo "github.com/iggarsaudev/Api-IgLusShop/internal/repository/redis"
	"github.com/iggarsaudev/Api-IgLusShop/internal/usecase"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/clients"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/closer"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/e"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/logger"
	"github.com/iggarsaudev/Api-IgLusShop/pkg/postgres"
)

const shutdownTimeout = 10 * time.Second

// Run собирает зависимости, запускает HTTP-сервер и блокируется до
// сигнала завершения или фатальной ошибки сервера. Ресурсы закрываются
// в порядке, обратном открытию: сервер, kafka, redis, postgres.
func Run(cfg *config.Config, log logger.Logger) error {
	cl := closer.NewCloser(2 * time.Second)

	db, err := initPGDB(log, cfg)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add("postgres", func(ctx context.Context) error {
		db.Close()
		return nil
	})

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		closeAll(cl, log)
		return e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add("redis", func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		log.Errorf(err, "failed to initialize minio client")
		closeAll(cl, log)
		return e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		log.Errorf(err, "failed to initialize MinIO bucket")
		closeAll(cl, log)
		return e.Wrap(whereami.WhereAmI(), err)
	}
	minioCancel()

	producer := kafka.NewProducer(log, cfg.Kafka)
	cl.Add("kafka producer", func(ctx context.Context) error {
		return producer.Close()
	})

	userRepo := pgdb.NewUserRepo(db.Pool, pgdbConv.NewUserConverter())
	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverter())
	providerRepo := pgdb.NewProviderRepo(db.Pool, pgdbConv.NewProviderConverter())
	reviewRepo := pgdb.NewReviewRepo(db.Pool, pgdbConv.NewReviewConverter())
	categoryRepo := pgdb.NewCategoryRepo(db.Pool)
	sessionRepo := redisRepo.NewSessionRepo(redisClient, cfg.Auth)
	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)

	authUC := usecase.NewAuthUC(userRepo, sessionRepo, db.Pool, cfg.Auth, log)
	productUC := usecase.NewProductUC(productRepo, categoryRepo, providerRepo, imageRepo, producer, db.Pool, log)
	providerUC := usecase.NewProviderUC(providerRepo)
	reviewUC := usecase.NewReviewUC(reviewRepo, productRepo, producer, log)
	userUC := usecase.NewUserUC(userRepo, cfg.Auth)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(authUC, productUC, providerUC, reviewUC, userUC, cfg.Minio)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	errCh := make(chan error, 1)
	go func() {
		log.Infof("HTTP server started on port %s", cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		log.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		log.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpSrv.Stop(shutdownCtx); err != nil {
		log.Errorf(err, "HTTP server shutdown error")
	} else {
		log.Infof("HTTP server stopped")
	}

	if err := cl.Close(shutdownCtx); err != nil {
		log.Errorf(err, "resource shutdown error")
	}

	log.Infof("Application shutdown complete")
	return appErr
}

func closeAll(cl *closer.Closer, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := cl.Close(ctx); err != nil {
		log.Errorf(err, "resource shutdown error")
	}
}

func initPGDB(log logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.Db)
	if err != nil {
		log.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(log); err != nil {
		log.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(ctx); err != nil {
		log.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
