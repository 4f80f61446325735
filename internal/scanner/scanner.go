// Package scanner classifies the host's software inventory and streams browser reports
package scanner

import (
	"context"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/ilexum-group/browserscan/internal/config"
	"github.com/ilexum-group/browserscan/internal/detector"
	"github.com/ilexum-group/browserscan/internal/diskusage"
	"github.com/ilexum-group/browserscan/internal/hostfs"
	"github.com/ilexum-group/browserscan/internal/icon"
	"github.com/ilexum-group/browserscan/internal/inventory"
	"github.com/ilexum-group/browserscan/internal/sender"
	"github.com/ilexum-group/browserscan/internal/utils"
	"github.com/ilexum-group/browserscan/pkg/models"
)

// PathResolver verifies a record's install directory
type PathResolver interface {
	Resolve(app models.InstalledApp) string
}

// Classifier decides whether a directory holds a browser
type Classifier interface {
	Classify(ctx context.Context, dir string) (bool, models.EngineFamily)
}

// Sizer measures an install tree
type Sizer interface {
	TotalSize(ctx context.Context, dir string) uint64
}

// IconResolver turns an icon reference into a data URI
type IconResolver interface {
	Resolve(ref string) string
}

// Scanner runs scans over one inventory. It holds no state between scans.
type Scanner struct {
	inventory  inventory.Inventory
	paths      PathResolver
	classifier Classifier
	sizer      Sizer
	icons      IconResolver
	metrics    *Metrics
	workers    int
	hostname   string
}

// Option customizes a Scanner
type Option func(*Scanner)

// WithPathResolver replaces the install path resolver
func WithPathResolver(r PathResolver) Option {
	return func(s *Scanner) { s.paths = r }
}

// WithClassifier replaces the signature classifier
func WithClassifier(c Classifier) Option {
	return func(s *Scanner) { s.classifier = c }
}

// WithSizer replaces the size aggregator
func WithSizer(z Sizer) Option {
	return func(s *Scanner) { s.sizer = z }
}

// WithIconResolver replaces the icon resolver
func WithIconResolver(r IconResolver) Option {
	return func(s *Scanner) { s.icons = r }
}

// WithMetrics records scan metrics on m
func WithMetrics(m *Metrics) Option {
	return func(s *Scanner) { s.metrics = m }
}

// WithWorkers sets how many records are processed concurrently
func WithWorkers(n int) Option {
	return func(s *Scanner) { s.workers = n }
}

// New creates a scanner over inv. Collaborators default to the host
// implementations configured by cfg; a nil cfg uses config.Default.
func New(inv inventory.Inventory, cfg *config.Config, opts ...Option) *Scanner {
	if cfg == nil {
		cfg = config.Default()
	}
	fsys := hostfs.New()

	s := &Scanner{
		inventory: inv,
		paths:     inventory.NewResolver(fsys),
		classifier: detector.NewClassifier(detector.Options{
			DetectDepth: cfg.DetectDepth,
			FamilyDepth: cfg.FamilyDepth,
		}),
		sizer:    diskusage.NewSizer(cfg.SizeDepth, 0),
		icons:    icon.NewResolver(icon.NewFileExtractor()),
		metrics:  NewMetrics(nil),
		workers:  cfg.Workers,
		hostname: utils.Hostname(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = 1
	}
	return s
}

// CountInstalled returns the number of inventory records
func (s *Scanner) CountInstalled(ctx context.Context) int {
	return inventory.Count(ctx, s.inventory)
}

// ScanBrowsers scans the inventory, emitting one report per browser, and
// returns the summary of what was emitted.
func (s *Scanner) ScanBrowsers(ctx context.Context, sink sender.Sink) (models.ScanSummary, error) {
	rec, err := s.Scan(ctx, sink)
	return rec.Summary, err
}

// Scan is ScanBrowsers with the full scan record. On cancellation the
// partial record is returned together with the context error.
func (s *Scanner) Scan(ctx context.Context, sink sender.Sink) (models.ScanRecord, error) {
	if sink == nil {
		sink = sender.SinkFunc(func(string, models.BrowserReport) error { return nil })
	}

	rec := models.NewScanRecord(s.hostname)
	apps := s.inventory.Enumerate(ctx)
	rec.Installed = len(apps)

	utils.LogInfo("Scan started", map[string]string{
		"scan_id":   rec.ID,
		"installed": strconv.Itoa(len(apps)),
		"workers":   strconv.Itoa(s.workers),
	})

	var processed int
	if s.workers == 1 {
		processed = s.scanSequential(ctx, apps, sink, rec)
	} else {
		processed = s.scanParallel(ctx, apps, sink, rec)
	}
	rec.Skipped = len(apps) - processed

	rec.Finish()
	s.metrics.recordScan(rec.Installed, rec.FinishedAt.Sub(rec.StartedAt))

	meta := map[string]string{
		"scan_id":        rec.ID,
		"browsers":       strconv.Itoa(rec.Summary.Count),
		"size":           humanize.Bytes(rec.Summary.Size),
		"emit_failures":  strconv.Itoa(rec.EmitFailures),
		"unclassifiable": strconv.Itoa(rec.Unclassifiable),
		"duration":       rec.Duration,
	}
	if err := ctx.Err(); err != nil {
		meta["skipped"] = strconv.Itoa(rec.Skipped)
		utils.LogWarn("Scan canceled", meta)
		return *rec, err
	}
	utils.LogInfo("Scan completed", meta)
	return *rec, nil
}

func (s *Scanner) scanSequential(ctx context.Context, apps []models.InstalledApp, sink sender.Sink, rec *models.ScanRecord) int {
	processed := 0
	for _, app := range apps {
		if ctx.Err() != nil {
			break
		}
		result := s.classify(ctx, app)
		// A walk interrupted by cancellation yields an incomplete result
		if ctx.Err() != nil {
			break
		}
		s.account(result, sink, rec)
		processed++
	}
	return processed
}

// scanParallel processes records on the pool and accounts them strictly in
// enumeration order as each result becomes ready. The queue holds one task
// per worker; when it is full the submitting goroutine runs the record itself.
func (s *Scanner) scanParallel(ctx context.Context, apps []models.InstalledApp, sink sender.Sink, rec *models.ScanRecord) int {
	results := make([]models.ClassifiedApp, len(apps))
	ready := make([]chan struct{}, len(apps))
	for i := range ready {
		ready[i] = make(chan struct{})
	}
	pool := NewPool(s.workers, s.workers)

	submitted := make(chan struct{})
	go func() {
		defer close(submitted)
		for i := range apps {
			pool.SubmitOrRun(func() {
				defer close(ready[i])
				if ctx.Err() != nil {
					return
				}
				results[i] = s.classify(ctx, apps[i])
			})
		}
	}()

	processed := 0
	for i := range apps {
		if ctx.Err() != nil {
			break
		}
		<-ready[i]
		if ctx.Err() != nil {
			break
		}
		s.account(results[i], sink, rec)
		processed++
	}

	// Every record's processing terminates before the summary is returned
	<-submitted
	pool.Drain()
	return processed
}

// classify runs the per-record pipeline: resolve, classify and, for
// browsers, size and icon.
func (s *Scanner) classify(ctx context.Context, app models.InstalledApp) models.ClassifiedApp {
	result := models.ClassifiedApp{InstalledApp: app}

	result.InstallDir = s.paths.Resolve(app)
	if result.InstallDir == "" {
		return result
	}

	result.IsBrowser, result.Engine = s.classifier.Classify(ctx, result.InstallDir)
	if !result.IsBrowser {
		return result
	}

	result.SizeBytes = s.sizer.TotalSize(ctx, result.InstallDir)
	result.Icon = s.icons.Resolve(app.DisplayIcon)
	return result
}

// account emits a browser report and folds the result into rec. Emit
// failures are counted, never fatal, and the browser still counts towards
// the summary.
func (s *Scanner) account(result models.ClassifiedApp, sink sender.Sink, rec *models.ScanRecord) {
	switch {
	case result.InstallDir == "":
		rec.Unclassifiable++
		s.metrics.UnclassifiableTotal.Inc()
		return
	case !result.IsBrowser:
		rec.NonBrowsers++
		s.metrics.NonBrowsersTotal.Inc()
		return
	}

	report := result.Report()
	if err := sink.Emit(sender.EventBrowserDetected, report); err != nil {
		rec.EmitFailures++
		s.metrics.EmitFailuresTotal.Inc()
		utils.LogWarn("Failed to emit browser report", map[string]string{
			"name":  report.DisplayName,
			"error": err.Error(),
		})
	}
	rec.Summary.Add(report)
	s.metrics.recordBrowser(result.Engine, result.SizeBytes)

	utils.LogDebug("Browser detected", map[string]string{
		"name":   report.DisplayName,
		"engine": report.BrowserType,
		"dir":    result.InstallDir,
		"size":   humanize.Bytes(result.SizeBytes),
	})
}
