package activity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/edvin/edgedomains/internal/metrics"
	"github.com/edvin/edgedomains/internal/model"
)

// ObjectPutter is the subset of the S3 client used to archive sweep reports.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archive records sweep outcomes as metrics and, when a bucket is
// configured, as JSON objects under sweeps/.
type Archive struct {
	s3     ObjectPutter
	bucket string
	logger zerolog.Logger
}

// NewArchive creates a new Archive activity struct. An empty bucket disables
// uploads.
func NewArchive(client ObjectPutter, bucket string, logger zerolog.Logger) *Archive {
	return &Archive{
		s3:     client,
		bucket: bucket,
		logger: logger.With().Str("component", "archive-activity").Logger(),
	}
}

// ReportKey returns the object key a sweep outcome is stored under.
func ReportKey(outcome model.SweepOutcome) string {
	return fmt.Sprintf("sweeps/%s.json", outcome.StartedAt.UTC().Format("20060102T150405Z"))
}

// ReportSweep publishes a sweep outcome and returns the object key, or ""
// when archiving is disabled.
func (a *Archive) ReportSweep(ctx context.Context, outcome model.SweepOutcome) (string, error) {
	for _, item := range outcome.Items {
		metrics.CertificatesSwept.WithLabelValues(item.Result).Inc()
	}
	if !outcome.Skipped {
		metrics.TrackedCertificates.Set(float64(len(outcome.Tracked)))
	}

	a.logger.Info().
		Int("deleted", outcome.Count(model.SweepDeleted)).
		Int("skipped", outcome.Count(model.SweepSkipped)).
		Int("untracked", outcome.Count(model.SweepUntracked)).
		Int("tracked", len(outcome.Tracked)).
		Msg("ReportSweep")

	if a.bucket == "" || a.s3 == nil {
		return "", nil
	}

	body, err := json.Marshal(outcome)
	if err != nil {
		return "", ApplicationError(fmt.Errorf("marshal sweep outcome: %w", err))
	}

	key := ReportKey(outcome)
	_, err = a.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", ApplicationError(model.WrapError(model.ErrUpstreamFailure, err, "put sweep report %s", key))
	}
	return key, nil
}
