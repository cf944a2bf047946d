package loader

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/trialboard/internal/model"
	"github.com/sells-group/trialboard/internal/normalize"
)

// ErrNoData is the fatal load error: the manifest lists no files, or
// every listed record failed to load. No dashboard is rendered over an
// empty set.
var ErrNoData = eris.New("no study data available")

// Options configures a load.
type Options struct {
	// Concurrency bounds the record fetch fan-out. Zero means 8.
	Concurrency int
}

// Load fetches the manifest, then all listed study documents in parallel,
// and returns the canonical record set in manifest order. A record whose
// fetch or parse fails is logged and dropped; a duplicate ID keeps the
// first record seen. Returns an error only when no records survive.
func Load(ctx context.Context, src Source, opts Options) ([]model.StudyRecord, error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 8
	}

	log := zap.L().With(zap.String("load_id", uuid.NewString()[:8]))

	manifest, err := src.Manifest(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "loader: fetch manifest")
	}
	if len(manifest.Files) == 0 {
		return nil, eris.Wrap(ErrNoData, "loader: manifest lists no files")
	}

	log.Info("loading study records",
		zap.Int("files", len(manifest.Files)),
		zap.Int("concurrency", concurrency),
	)

	// Slots keep manifest order deterministic despite the concurrent
	// fetch; failed loads leave their slot nil.
	results := make([]*model.StudyRecord, len(manifest.Files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, name := range manifest.Files {
		g.Go(func() error {
			rec, err := loadOne(gctx, src, name)
			if err != nil {
				log.Warn("dropping study record",
					zap.String("file", name),
					zap.Error(err),
				)
				return nil // partial load is acceptable
			}
			results[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "loader: fetch records")
	}

	seen := make(map[string]struct{})
	records := make([]model.StudyRecord, 0, len(results))
	for _, rec := range results {
		if rec == nil {
			continue
		}
		if _, dup := seen[rec.ID]; dup {
			log.Warn("dropping duplicate study id", zap.String("id", rec.ID))
			continue
		}
		seen[rec.ID] = struct{}{}
		records = append(records, *rec)
	}

	if len(records) == 0 {
		return nil, eris.Wrap(ErrNoData, "loader: every record failed to load")
	}

	log.Info("load complete",
		zap.Int("loaded", len(records)),
		zap.Int("dropped", len(manifest.Files)-len(records)),
	)
	return records, nil
}

func loadOne(ctx context.Context, src Source, name string) (*model.StudyRecord, error) {
	body, err := src.Record(ctx, name)
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck

	var raw model.RawRecord
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, eris.Wrapf(err, "loader: decode %s", name)
	}

	rec := normalize.Record(name, raw)
	return &rec, nil
}
