package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/klauspost/compress/gzip"
	"github.com/vlatan/media-hub/internal/config"
	"github.com/vlatan/media-hub/internal/drivers/rdb"
	"github.com/vlatan/media-hub/internal/integrations/r2"
	"github.com/vlatan/media-hub/internal/models"
)

var ErrAlreadyRunning = errors.New("another backup is already running")

// How long a backup may hold the lock
const lockTTL = 10 * time.Minute

// Source is where the submissions are read from
type Source interface {
	List(ctx context.Context) (models.Submissions, error)
}

type Service struct {
	config *config.Config
	source Source
	bucket r2.Service
	rdb    *rdb.Service
	now    func() time.Time
}

// Export is the content of one backup object
type Export struct {
	App         string             `json:"app"`
	CreatedAt   time.Time          `json:"created_at"`
	Submissions models.Submissions `json:"submissions"`
}

// New creates a backup service
func New(cfg *config.Config, source Source, bucket r2.Service, rdb *rdb.Service) *Service {
	return &Service{
		config: cfg,
		source: source,
		bucket: bucket,
		rdb:    rdb,
		now:    time.Now,
	}
}

// Run exports the submissions to the bucket and prunes the old backups.
// Only one backup runs at a time.
func (s *Service) Run(ctx context.Context) (string, error) {

	lock := s.rdb.NewLock("lock:"+s.Prefix(), uuid.NewString(), lockTTL)
	acquired, err := lock.TryLock(ctx)
	if err != nil {
		return "", fmt.Errorf("couldn't acquire the backup lock; %w", err)
	}

	if !acquired {
		return "", ErrAlreadyRunning
	}

	defer func() {
		if err := lock.Unlock(context.WithoutCancel(ctx)); err != nil {
			log.Printf("failed to release the backup lock; %v", err)
		}
	}()

	submissions, err := s.source.List(ctx)
	if err != nil {
		return "", fmt.Errorf("couldn't list the submissions; %w", err)
	}

	now := s.now().UTC()
	var buf bytes.Buffer
	err = Encode(&buf, &Export{
		App:         s.config.AppName,
		CreatedAt:   now,
		Submissions: submissions,
	})

	if err != nil {
		return "", err
	}

	// Make sure we still own the lock before writing
	if err = lock.CheckLock(ctx); err != nil {
		return "", err
	}

	key := s.Key(now)
	err = s.bucket.PutObject(
		ctx,
		s.config.R2BackupBucketName,
		key,
		&buf,
		"application/gzip",
		map[string]string{"count": strconv.Itoa(len(submissions))},
	)

	if err != nil {
		return "", err
	}

	if err = s.prune(ctx); err != nil {
		log.Printf("failed to prune old backups; %v", err)
	}

	return key, nil
}

// Prefix is the folder of the app's backups in the bucket
func (s *Service) Prefix() string {
	return slug.Make(s.config.AppName) + "/backups/"
}

// Key is the object key of a backup made at t.
// Keys sort in the order the backups were made.
func (s *Service) Key(t time.Time) string {
	return s.Prefix() + "backup-" + t.UTC().Format("2006-01-02T15-04-05") + ".json.gz"
}

// prune keeps the most recent backups
func (s *Service) prune(ctx context.Context) error {

	if s.config.BackupKeep <= 0 {
		return nil
	}

	keys, err := s.bucket.ListKeys(ctx, s.config.R2BackupBucketName, s.Prefix())
	if err != nil {
		return err
	}

	if len(keys) <= s.config.BackupKeep {
		return nil
	}

	slices.Sort(keys)
	var errs []error
	for _, key := range keys[:len(keys)-s.config.BackupKeep] {
		if err := s.bucket.DeleteObject(ctx, s.config.R2BackupBucketName, key); err != nil {
			errs = append(errs, fmt.Errorf("couldn't delete %s; %w", key, err))
		}
	}

	return errors.Join(errs...)
}

// Encode writes the export as gzipped JSON
func Encode(w io.Writer, export *Export) error {

	gw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("failed to create gzip writer; %w", err)
	}

	if err = json.NewEncoder(gw).Encode(export); err != nil {
		gw.Close()
		return fmt.Errorf("failed to encode the backup; %w", err)
	}

	return gw.Close()
}

// Decode reads a gzipped JSON export
func Decode(r io.Reader) (*Export, error) {

	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader; %w", err)
	}
	defer gr.Close()

	var export Export
	if err = json.NewDecoder(gr).Decode(&export); err != nil {
		return nil, fmt.Errorf("failed to decode the backup; %w", err)
	}

	return &export, nil
}
