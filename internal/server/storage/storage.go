// Package storage implements the two-phase file lifecycle behind zone and
// profile image uploads: bytes are staged under a temp namespace first and
// promoted to the permanent namespace only once the owning database
// transaction has committed.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/neogulmap/zonemap/internal/filex"
	"github.com/neogulmap/zonemap/internal/logging"
)

// Store is the file lifecycle contract. Exactly one implementation is
// active per deployment, selected from configuration at startup.
type Store interface {
	// SaveTemp persists bytes under a generated unique name in the temp
	// namespace and returns that name. The kind tags the upload category
	// ("zone", "profile") in the name. Empty input is an error.
	SaveTemp(ctx context.Context, data []byte, kind, originalName string) (string, error)

	// Confirm promotes a staged entry to the permanent namespace under
	// finalName and removes the temp copy. A missing temp entry is a
	// logged no-op so retries stay idempotent.
	Confirm(ctx context.Context, tempName, finalName string) error

	// DeleteQuietly removes the name from both namespaces, best effort.
	// Failures are logged, never returned.
	DeleteQuietly(ctx context.Context, fileName string)

	// Exists reports whether a permanent entry with the name is present.
	Exists(ctx context.Context, fileName string) bool

	// Open reads a permanent entry. Missing entries yield
	// common.ErrNotFound.
	Open(ctx context.Context, fileName string) ([]byte, error)
}

const (
	tempNamePrefix = "temp_"

	// Storage type names accepted in configuration.
	TypeLocal = "local"
	TypeS3    = "s3"
)

// TempFileName builds a unique staging name: the temp prefix, a kind tag,
// a timestamp, a random suffix, and the original extension.
func TempFileName(kind, originalName string) string {
	return tempNamePrefix + FinalFileName(kind, originalName)
}

// FinalFileName builds a unique permanent name for an upload, such as
// zone_20250301_120000_1a2b3c4d.jpg.
func FinalFileName(kind, originalName string) string {
	ts := time.Now().Format("20060102_150405")
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s_%s_%s%s", kind, ts, suffix, filex.Ext(originalName))
}

// S3Options carries the object-store settings needed to build the S3
// strategy.
type S3Options struct {
	User         string
	Password     string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// FromConfig constructs the configured Store. Unrecognized types and an
// unreachable object store both fall back to the local strategy, which is
// always available.
func FromConfig(ctx context.Context, storageType, uploadDir string, s3opts S3Options, logger logging.Logger) Store {
	switch storageType {
	case TypeS3:
		st, err := NewS3(ctx, s3opts, logger)
		if err != nil {
			logger.Warn(ctx, "object storage unavailable, falling back to local", "error", err.Error())
			break
		}
		return st
	case TypeLocal, "":
	default:
		logger.Warn(ctx, "unknown storage type, falling back to local", "type", storageType)
	}
	return NewLocal(uploadDir, logger)
}
