package main

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/vlatan/media-hub/internal/app"
	"github.com/vlatan/media-hub/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {

	// A local .env file is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("failed to load the .env file; %v", err)
	}

	cfg := config.New()

	// Tee the log to a rotating file if requested
	if cfg.LogFile != "" {
		logFile := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		defer logFile.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, logFile))
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to create the app; %v", err)
	}

	if err = a.Run(); err != nil {
		log.Fatalf("http server error; %v", err)
	}
}
