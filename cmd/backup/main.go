package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/vlatan/media-hub/internal/backup"
	"github.com/vlatan/media-hub/internal/config"
	"github.com/vlatan/media-hub/internal/drivers/database"
	"github.com/vlatan/media-hub/internal/drivers/rdb"
	"github.com/vlatan/media-hub/internal/integrations/r2"
	submissionsRepo "github.com/vlatan/media-hub/internal/repositories/submissions"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("failed to load the .env file; %v", err)
	}

	cfg := config.New()
	if cfg.StoreDriver != config.Postgres {
		log.Fatalf("backups need the %s store driver, got %s", config.Postgres, cfg.StoreDriver)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("couldn't create DB service; %v", err)
	}
	defer db.Close()

	redis, err := rdb.New(cfg)
	if err != nil {
		log.Fatalf("couldn't create Redis service; %v", err)
	}
	defer redis.Close()

	bucket, err := r2.New(ctx, cfg)
	if err != nil {
		log.Fatalf("couldn't create R2 service; %v", err)
	}

	service := backup.New(cfg, submissionsRepo.New(db), bucket, redis)
	key, err := service.Run(ctx)
	if err != nil {
		log.Printf("backup failed; %v", err)
		return
	}

	log.Printf("backup uploaded to %s/%s", cfg.R2BackupBucketName, key)
}
