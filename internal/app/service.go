// Package app wires the answer-key, event log, aggregation and reporting
// stages into one sequential run.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/qperformance/internal/adapters/eventlog"
	"github.com/okian/qperformance/internal/adapters/filesystem"
	"github.com/okian/qperformance/internal/domain/answerkey"
	"github.com/okian/qperformance/internal/domain/filter"
	"github.com/okian/qperformance/internal/domain/grid"
	"github.com/okian/qperformance/internal/domain/model"
	"github.com/okian/qperformance/internal/domain/roster"
	"github.com/okian/qperformance/internal/domain/tally"
	"github.com/okian/qperformance/internal/report"
	"github.com/okian/qperformance/pkg/logger"
	"github.com/okian/qperformance/pkg/metrics"
)

// Service runs the statistics pipeline. It holds configuration only; every
// run builds its own grid, roster and matrices.
type Service struct {
	types           model.TypeSet
	codes           model.EventCodes
	layout          model.Layout
	tabMarker       string
	pageSize        int
	generalPosition int
	documentExt     string
	delimiter       string

	metrics *metrics.Manager
	logger  logger.Logger
	now     func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager. Without it nothing is recorded.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTypeSet sets the recognised question types.
func WithTypeSet(types model.TypeSet) Option {
	return func(s *Service) {
		if types.Len() > 0 {
			s.types = types
		}
	}
}

// WithEventCodes sets the literal event codes.
func WithEventCodes(codes model.EventCodes) Option {
	return func(s *Service) {
		s.codes = codes
	}
}

// WithLayout sets the event log column layout.
func WithLayout(layout model.Layout) Option {
	return func(s *Service) {
		s.layout = layout
	}
}

// WithTabMarker sets the answer-key cell separator.
func WithTabMarker(marker string) Option {
	return func(s *Service) {
		if marker != "" {
			s.tabMarker = marker
		}
	}
}

// WithPageSize sets the number of questions per grid round.
func WithPageSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithGeneralPosition sets the question position forced to the general type.
func WithGeneralPosition(pos int) Option {
	return func(s *Service) {
		s.generalPosition = pos
	}
}

// WithDocumentExt sets the answer-key file extension.
func WithDocumentExt(ext string) Option {
	return func(s *Service) {
		if ext != "" {
			s.documentExt = ext
		}
	}
}

// WithDelimiter sets the event log field delimiter.
func WithDelimiter(delim string) Option {
	return func(s *Service) {
		if delim != "" {
			s.delimiter = delim
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		types:           model.DefaultTypeSet(),
		codes:           model.DefaultEventCodes(),
		layout:          model.DefaultLayout(),
		tabMarker:       answerkey.DefaultTabMarker,
		pageSize:        grid.DefaultPageSize,
		generalPosition: tally.DefaultGeneralPosition,
		documentExt:     filesystem.DefaultExtension,
		delimiter:       eventlog.DefaultDelimiter,
		logger:          logger.Discard(),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request describes one run.
type Request struct {
	QuestionSets string               // directory of answer-key documents
	EventLog     string               // event log path
	Types        []model.QuestionType // report columns; empty selects all
	Tournament   string               // "" counts every tournament
	ShowRounds   bool
}

// Outcome is the product of a successful run.
type Outcome struct {
	Report   string
	Warnings []string // skipped rows then unresolved lookups
	Quizzers []string
	Grid     model.TypeGrid
}

// Run executes the pipeline. Setup problems are returned as errors before
// any aggregation starts; per-row problems become warnings.
func (s *Service) Run(ctx context.Context, req Request) (*Outcome, error) {
	start := s.now()

	rep, err := report.New(s.types, req.Types, report.WithRounds(req.ShowRounds))
	if err != nil {
		s.metrics.RecordFailure(metrics.StageReport)
		return nil, err
	}
	for _, path := range []string{req.QuestionSets, req.EventLog} {
		if err := filesystem.Exists(path); err != nil {
			s.metrics.RecordFailure(metrics.StageConfig)
			return nil, err
		}
	}

	g, err := s.BuildGrid(ctx, req.QuestionSets)
	if err != nil {
		s.metrics.RecordFailure(metrics.StageDocuments)
		return nil, err
	}

	records, err := s.LoadEvents(ctx, req.EventLog)
	if err != nil {
		s.metrics.RecordFailure(metrics.StageEventLog)
		return nil, err
	}

	kept := filter.New(s.codes, filter.WithTournament(req.Tournament)).Apply(records)
	quizzers := roster.Build(kept)
	s.logger.Debug(ctx, "quizzers", logger.Any("names", quizzers.Names()))

	agg := tally.New(
		tally.WithTypeSet(s.types),
		tally.WithEventCodes(s.codes),
		tally.WithGeneralPosition(s.generalPosition),
		tally.WithLogger(s.logger.Named("tally")),
	)
	res := agg.Aggregate(ctx, kept, g, quizzers)

	out := &Outcome{
		Report:   rep.Render(quizzers.Names(), res),
		Warnings: append(append([]string{}, res.Warnings...), res.Unresolved...),
		Quizzers: quizzers.Names(),
		Grid:     g,
	}

	s.metrics.RecordRows(len(records), len(kept), res.Counted, len(res.Warnings), len(res.Unresolved))
	s.metrics.UpdateShape(g.Rounds(), quizzers.Len())
	elapsed := s.now().Sub(start)
	s.metrics.RecordSuccess(elapsed, s.now())
	s.logger.Info(ctx, "run complete",
		logger.Int("rows", len(records)),
		logger.Int("kept", len(kept)),
		logger.Int("counted", res.Counted),
		logger.Int("skipped", len(res.Warnings)),
		logger.Int("quizzers", quizzers.Len()),
		logger.Float64("elapsed_ms", float64(elapsed.Microseconds())/1000),
	)
	return out, nil
}

// BuildGrid reads every answer-key document in dir and builds the type grid.
func (s *Service) BuildGrid(ctx context.Context, dir string) (model.TypeGrid, error) {
	paths, err := filesystem.ListDocuments(dir, s.documentExt)
	if err != nil {
		return nil, err
	}
	ex := answerkey.NewExtractor(answerkey.WithTabMarker(s.tabMarker))
	keys := make([]answerkey.Key, 0, len(paths))
	for _, path := range paths {
		text, err := filesystem.ReadText(path)
		if err != nil {
			return nil, err
		}
		key, err := ex.Extract(text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		s.logger.Debug(ctx, "found answer key",
			logger.String("path", path),
			logger.Int("round", key.Round+1),
			logger.Int("questions", len(key.Types)),
		)
		s.metrics.RecordDocument()
		keys = append(keys, key)
	}

	s.logger.Debug(ctx, "rounds collected", logger.Any("rounds", typeStrings(grid.Collect(keys))))
	g := grid.Build(keys, s.pageSize)
	s.logger.Debug(ctx, "type grid", logger.Any("grid", typeStrings(g)))
	return g, nil
}

// LoadEvents reads and parses the event log.
func (s *Service) LoadEvents(ctx context.Context, path string) ([]model.EventRecord, error) {
	rows, err := eventlog.Read(path, s.delimiter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.logger.Debug(ctx, "event log read", logger.String("path", path), logger.Int("rows", len(rows)))
	return s.layout.Records(rows), nil
}

func typeStrings(rounds [][]model.QuestionType) []string {
	out := make([]string, len(rounds))
	for i, r := range rounds {
		b := make([]rune, len(r))
		for j, t := range r {
			b[j] = rune(t)
		}
		out[i] = string(b)
	}
	return out
}
