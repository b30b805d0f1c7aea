package reconciliation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"freight-audit/core/reconcile"
	"freight-audit/core/storage"
)

const (
	reportPrefix = "reports/"
	reportSuffix = ".json"
)

// ErrReportNotFound is returned when no archived report has the requested ID.
var ErrReportNotFound = errors.New("report not found")

// Archive persists finished reports as JSON objects in the storage bucket.
type Archive struct {
	client storage.Client
	bucket string
}

// NewArchive creates a report archive on the given bucket.
func NewArchive(client storage.Client, bucket string) *Archive {
	return &Archive{client: client, bucket: bucket}
}

// Save stores the report under reports/<id>.json, creating the bucket on
// first use. The report must carry an ID.
func (a *Archive) Save(ctx context.Context, report *reconcile.Report) error {
	if report.ID == "" {
		return errors.New("report has no ID")
	}
	if err := a.ensureBucket(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report %s: %w", report.ID, err)
	}

	_, err = a.client.PutObject(ctx, a.bucket, objectName(report.ID),
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to archive report %s: %w", report.ID, err)
	}
	return nil
}

// Get fetches an archived report by ID.
func (a *Archive) Get(ctx context.Context, id string) (*reconcile.Report, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, objectName(id), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report %s: %w", id, err)
	}
	defer obj.Close()

	var report reconcile.Report
	if err := json.NewDecoder(obj).Decode(&report); err != nil {
		// The minio client defers the existence check to the first read.
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to decode report %s: %w", id, err)
	}
	return &report, nil
}

// ReportRef identifies an archived report without loading its body.
type ReportRef struct {
	ID           string    `json:"id"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// List enumerates the archived reports.
func (a *Archive) List(ctx context.Context) ([]ReportRef, error) {
	refs := []ReportRef{}
	objects := a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    reportPrefix,
		Recursive: true,
	})
	for info := range objects {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", info.Err)
		}
		id := strings.TrimSuffix(strings.TrimPrefix(info.Key, reportPrefix), reportSuffix)
		refs = append(refs, ReportRef{
			ID:           id,
			Size:         info.Size,
			LastModified: info.LastModified,
		})
	}
	return refs, nil
}

// Delete removes an archived report.
func (a *Archive) Delete(ctx context.Context, id string) error {
	err := a.client.RemoveObject(ctx, a.bucket, objectName(id), minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete report %s: %w", id, err)
	}
	return nil
}

func (a *Archive) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
	}
	return nil
}

func objectName(id string) string {
	return reportPrefix + id + reportSuffix
}
