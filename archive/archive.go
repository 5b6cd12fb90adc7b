// Package archive persists incoming plans to object storage, one
// object per day so consumers can fetch any day's plan later.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const contentType = "application/pdf"

// Store is a MinIO-backed plan archive.
type Store struct {
	client *minio.Client
	bucket string
}

// Options configures the connection to the object store.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// NewStore connects to the object store and ensures the archive bucket
// exists.
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to object store: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket %q: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("creating bucket %q: %w", opts.Bucket, err)
		}
	}
	return &Store{client: client, bucket: opts.Bucket}, nil
}

// DayObject is the object name for one day's plan. Re-uploads of the
// same day overwrite, which is intended: later plan versions supersede
// earlier ones.
func DayObject(date string) string {
	return fmt.Sprintf("plans/%s.pdf", date)
}

// StoreDay archives one day's plan under its ISO date.
func (s *Store) StoreDay(ctx context.Context, date string, pdf []byte) error {
	return s.put(ctx, DayObject(date), pdf)
}

// StoreUnparsed archives a document whose dates could not be read, so
// nothing is lost even when segmentation fails.
func (s *Store) StoreUnparsed(ctx context.Context, pdf []byte) error {
	name := fmt.Sprintf("unparsed/%s.pdf", time.Now().UTC().Format("2006-01-02T15-04-05"))
	return s.put(ctx, name, pdf)
}

func (s *Store) put(ctx context.Context, name string, pdf []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(pdf), int64(len(pdf)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("storing %q: %w", name, err)
	}
	return nil
}

// FetchDay retrieves one day's archived plan.
func (s *Store) FetchDay(ctx context.Context, date string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, DayObject(date), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetching plan for %s: %w", date, err)
	}
	defer obj.Close()

	pdf, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("reading plan for %s: %w", date, err)
	}
	return pdf, nil
}

// Days lists the dates that have an archived plan.
func (s *Store) Days(ctx context.Context) ([]string, error) {
	var dates []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: "plans/"}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("listing plans: %w", obj.Err)
		}
		name := obj.Key
		name = name[len("plans/"):]
		if len(name) > len(".pdf") {
			dates = append(dates, name[:len(name)-len(".pdf")])
		}
	}
	return dates, nil
}
