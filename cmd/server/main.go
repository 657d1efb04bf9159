package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/iliyamo/course-platform/internal/auth"
	"github.com/iliyamo/course-platform/internal/config"
	"github.com/iliyamo/course-platform/internal/handler"
	"github.com/iliyamo/course-platform/internal/middleware"
	"github.com/iliyamo/course-platform/internal/queue"
	"github.com/iliyamo/course-platform/internal/repository"
	"github.com/iliyamo/course-platform/internal/router"
	"github.com/iliyamo/course-platform/internal/storage"
	"github.com/iliyamo/course-platform/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env always wins
	cfg := config.Load()

	st, err := store.Open(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("document store: %v", err)
	}

	s3, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: cfg.S3Region,
	})
	if err != nil {
		log.Fatalf("object store: %v", err)
	}
	links := storage.NewLinkManager(s3, cfg.S3Bucket)

	users := repository.NewUserRepo(st)
	courses := repository.NewCourseRepo(st)
	enrollments := repository.NewEnrollmentRepo(st)

	verifier := auth.NewVerifier(cfg.ProviderJWKSURL)
	directory := auth.NewDirectory(users, auth.NewProviderClient(cfg.ProviderProfileURL))

	e := echo.New()
	e.Use(middleware.Authenticate(verifier, directory))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), config.NewRedisClient()))
	e.Use(middleware.Enforce(router.Policy()))

	router.Register(e, router.Handlers{
		Catalog:    handler.NewCatalogHandler(courses, links),
		Instructor: handler.NewInstructorHandler(courses, links),
		Student:    handler.NewStudentHandler(enrollments, courses, links),
		Admin:      handler.NewAdminHandler(users, courses, links),
		Upload:     handler.NewUploadHandler(links),
	})

	// Background consumer records confirmed enrollments; it reconnects on
	// its own and never takes the server down.
	go queue.StartEnrollmentConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
