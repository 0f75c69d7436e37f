// Package resultstore persists analysis results and capture documents to
// a blob storage bucket (local filesystem, GCS or S3, selected by the
// bucket URL scheme).
package resultstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/KodyMike/rndSequencer/pkg/report"
	"github.com/KodyMike/rndSequencer/pkg/runidentifier"
)

type ResultStore struct {
	bucket        string
	basePath      string
	constructPath bool
}

type (
	Option interface{ set(*ResultStore) }
	option func(*ResultStore) // option implements Option.
)

func (o option) set(rs *ResultStore) { o(rs) }

// ConstructPath will cause saves to append a target/parameter suffix to
// the base path, grouping results by what was probed.
func ConstructPath() Option {
	return option(func(rs *ResultStore) { rs.constructPath = true })
}

// BasePath sets the base path used while saving files to storage.
func BasePath(base string) Option {
	return option(func(rs *ResultStore) { rs.basePath = base })
}

func New(bucket string, options ...Option) *ResultStore {
	rs := &ResultStore{
		bucket: bucket,
	}
	for _, o := range options {
		o.set(rs)
	}
	return rs
}

func (rs *ResultStore) String() string {
	s := rs.bucket + "/" + rs.basePath
	if rs.constructPath {
		s += "+"
	}
	return s
}

func (rs *ResultStore) generatePath(run runidentifier.RunIdentifier) string {
	path := rs.basePath
	if rs.constructPath {
		path = filepath.Join(path, run.Target, run.Parameter)
	}
	return path
}

func (rs *ResultStore) openBucket(ctx context.Context) (*blob.Bucket, error) {
	return blob.OpenBucket(ctx, rs.bucket)
}

func (rs *ResultStore) upload(ctx context.Context, uploadPath string, data []byte) error {
	bkt, err := rs.openBucket(ctx)
	if err != nil {
		return err
	}
	defer bkt.Close()

	slog.InfoContext(ctx, "Uploading results",
		"bucket", rs.bucket,
		"path", uploadPath)

	w, err := bkt.NewWriter(ctx, uploadPath, nil)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Close()
}

// SaveWithFilename saves an analysis to the bucket with the given
// filename, wrapped in the {run, created, analysis} envelope.
func (rs *ResultStore) SaveWithFilename(ctx context.Context, run runidentifier.RunIdentifier, filename string, analysis any) error {
	if filename == "" {
		return errors.New("filename cannot be empty")
	}

	b, err := json.Marshal(&result{
		Run:              run,
		CreatedTimestamp: time.Now().UTC().Unix(),
		Analysis:         analysis,
	})
	if err != nil {
		return err
	}

	return rs.upload(ctx, filepath.Join(rs.generatePath(run), filename), b)
}

// MakeFilename returns the default filename to use for saving analysis
// results, using an optional label. If the run has an id, the default is
// "<label>-<id>.json" if label is nonempty, or "<id>.json" otherwise; for
// runs without an id it is "<label>.json", or "results.json" if neither
// is set.
func MakeFilename(run runidentifier.RunIdentifier, label string) string {
	prefix := "results"
	id := run.RunID

	if id != "" && label != "" {
		prefix = label + "-" + id
	} else if id != "" {
		prefix = id
	} else if label != "" {
		prefix = label
	}
	return prefix + ".json"
}

// Save saves the analysis with the default filename.
func (rs *ResultStore) Save(ctx context.Context, run runidentifier.RunIdentifier, analysis any) error {
	return rs.SaveWithFilename(ctx, run, MakeFilename(run, ""), analysis)
}

// SaveCaptures stores the raw capture document next to the results so a
// run can be re-analyzed later without collecting tokens again.
func (rs *ResultStore) SaveCaptures(ctx context.Context, run runidentifier.RunIdentifier, captures []report.TokenCapture) error {
	b, err := json.Marshal(captures)
	if err != nil {
		return err
	}
	return rs.upload(ctx, filepath.Join(rs.generatePath(run), MakeFilename(run, "captures")), b)
}

// SaveCSV stores the flat CSV export of the capture list.
func (rs *ResultStore) SaveCSV(ctx context.Context, run runidentifier.RunIdentifier, captures []report.TokenCapture) error {
	bkt, err := rs.openBucket(ctx)
	if err != nil {
		return err
	}
	defer bkt.Close()

	uploadPath := filepath.Join(rs.generatePath(run), "captures.csv")
	slog.InfoContext(ctx, "Uploading CSV export",
		"bucket", rs.bucket,
		"path", uploadPath)

	w, err := bkt.NewWriter(ctx, uploadPath, nil)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(w, captures); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
