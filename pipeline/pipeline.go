// Package pipeline sequences the two-pass sampling run: sample products,
// derive the key set, sample key-filtered reviews, then emit all artifacts
// atomically.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"catalog-sampler/config"
	"catalog-sampler/models"
	"catalog-sampler/sampler"
	"catalog-sampler/services"
	"catalog-sampler/source"
	"catalog-sampler/storage"
	"catalog-sampler/utils"
)

var (
	// ErrSourceUnavailable marks a stream that could not be opened or read.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrWriteFailure marks a failed artifact emission.
	ErrWriteFailure = errors.New("artifact write failure")
)

// Pipeline runs the sampling state machine. A Pipeline executes exactly one
// run; construct a fresh one per invocation.
type Pipeline struct {
	cfg     *config.Config
	logger  *utils.Logger
	cleaner *services.Cleaner
	emitter storage.ArtifactEmitter
	state   State
}

// New creates a Pipeline in StateIdle.
func New(cfg *config.Config, logger *utils.Logger, emitter storage.ArtifactEmitter) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		logger:  logger,
		cleaner: services.NewCleaner(logger, cfg.NormalizeFields),
		emitter: emitter,
		state:   StateIdle,
	}
}

// State returns the current lifecycle state.
func (p *Pipeline) State() State {
	return p.state
}

func (p *Pipeline) transition(next State) {
	p.logger.Debug("[pipeline] %s → %s", p.state, next)
	p.state = next
}

func (p *Pipeline) fail(err error) error {
	p.state = StateFailed
	return err
}

// Run executes both passes and emits the artifacts. On any fatal error the
// pipeline moves to StateFailed and no artifacts are left behind.
func (p *Pipeline) Run(ctx context.Context) (*models.RunReport, error) {
	if p.state != StateIdle {
		return nil, fmt.Errorf("pipeline: cannot run from state %s", p.state)
	}

	report := &models.RunReport{OutputDir: p.cfg.OutputDir}

	// Pass 1: uniform sample over the product stream.
	p.transition(StatePass1Running)
	start := time.Now()
	productRes := sampler.New[*models.Product](p.cfg.SampleProducts, p.cfg.Seed)

	err := p.runPass(ctx, p.cfg.ProductsPath, func(rec models.RawRecord, _ int64) bool {
		product, ok := p.cleaner.Product(rec)
		if !ok {
			return false
		}
		productRes.Observe(product)
		return true
	}, &report.ProductLines, &report.ProductSkipped)
	if err != nil {
		return nil, p.fail(fmt.Errorf("pass 1 (products) stream %q: %w", p.cfg.ProductsPath, err))
	}

	report.ProductObserved = productRes.Observed()
	if productRes.Observed() == 0 {
		p.logger.Warn("[pipeline] Pass 1: no valid product records in %s", p.cfg.ProductsPath)
	}

	products := productRes.Finalize()
	report.ProductsSampled = len(products)

	keys := models.NewKeySet()
	for _, product := range products {
		keys.Add(product.Key())
	}
	report.KeyCount = keys.Size()
	report.Pass1Duration = time.Since(start)
	p.transition(StatePass1Done)
	p.logger.Info("[pipeline] Pass 1 done: %d/%d products sampled (%d unique keys) in %v",
		report.ProductsSampled, report.ProductObserved, report.KeyCount, report.Pass1Duration)

	// Pass 2: uniform sample over the key-filtered review sub-stream.
	p.transition(StatePass2Running)
	start = time.Now()
	reviewRes := sampler.New[*models.Review](p.cfg.SampleReviews, p.cfg.Seed)

	err = p.runPass(ctx, p.cfg.ReviewsPath, func(rec models.RawRecord, line int64) bool {
		asin := strings.TrimSpace(rec.Str("asin"))
		if asin == "" {
			return false
		}
		if !keys.Contains(asin) {
			// Outside the filtered sub-stream; neither sampled nor
			// counted as skipped.
			return true
		}
		review, ok := p.cleaner.Review(rec, line)
		if !ok {
			return false
		}
		reviewRes.Observe(review)
		return true
	}, &report.ReviewLines, &report.ReviewSkipped)
	if err != nil {
		return nil, p.fail(fmt.Errorf("pass 2 (reviews) stream %q: %w", p.cfg.ReviewsPath, err))
	}

	report.ReviewFiltered = reviewRes.Observed()
	if reviewRes.Observed() == 0 {
		p.logger.Warn("[pipeline] Pass 2: no reviews matched the sampled key set in %s", p.cfg.ReviewsPath)
	}

	reviews := reviewRes.Finalize()
	for i, review := range reviews {
		review.ID = int64(i)
	}
	report.ReviewsSampled = len(reviews)
	report.Pass2Duration = time.Since(start)
	p.transition(StatePass2Done)
	p.logger.Info("[pipeline] Pass 2 done: %d/%d filtered reviews sampled in %v",
		report.ReviewsSampled, report.ReviewFiltered, report.Pass2Duration)

	if err := p.emitter.Emit(products, reviews, keys.Keys()); err != nil {
		return nil, p.fail(fmt.Errorf("%w: %v", ErrWriteFailure, err))
	}
	p.transition(StateEmitted)
	p.transition(StateTerminal)

	return report, nil
}

// runPass streams one source end to end, feeding each decoded record to
// handle. handle returns false for records dropped for lacking a catalog
// identifier; those add to the skip tally alongside malformed lines.
func (p *Pipeline) runPass(ctx context.Context, path string, handle func(models.RawRecord, int64) bool, lines, skipped *int64) error {
	pctx := ctx
	if source.IsRemote(path) && p.cfg.SourceTimeoutSecs > 0 {
		var cancel context.CancelFunc
		pctx, cancel = context.WithTimeout(ctx, time.Duration(p.cfg.SourceTimeoutSecs)*time.Second)
		defer cancel()
	}

	stream, err := source.Open(pctx, path, p.remoteConfig(), p.logger)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer stream.Close()

	reader := source.NewJSONLReader(stream)
	var keyless int64
	for {
		if err := pctx.Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}

		rec, line, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: read: %v", ErrSourceUnavailable, err)
		}

		if !handle(rec, line) {
			keyless++
		}
	}

	*lines = reader.Lines()
	*skipped = reader.Skipped() + keyless
	return nil
}

func (p *Pipeline) remoteConfig() source.RemoteConfig {
	return source.RemoteConfig{
		Endpoint:  p.cfg.MinioEndpoint,
		AccessKey: p.cfg.MinioAccessKey,
		SecretKey: p.cfg.MinioSecretKey,
		UseSSL:    p.cfg.MinioUseSSL,
		Timeout:   time.Duration(p.cfg.SourceTimeoutSecs) * time.Second,
	}
}
