package translation

import (
	"context"
	"fmt"
	"os"

	"packetgen/core/apperr"
	"packetgen/core/artifact"
	"packetgen/core/utils"

	"go.uber.org/zap"
)

// Result summarises one remap run.
type Result struct {
	// Parsed is the number of entries read from the translation file.
	Parsed int `json:"parsed"`
	// Persisted is the number of keys in the override table before the merge.
	Persisted int `json:"persisted"`
	// Merged is the number of keys in the merged table.
	Merged int `json:"merged"`
	// Merge describes how keys were resolved.
	Merge MergeReport `json:"merge"`
	// Table is the merged translation table.
	Table Table `json:"-"`
	// Artifacts holds the translated schema and, for file stores, the table.
	Artifacts []artifact.Artifact `json:"-"`
}

// Service runs the translation merge and schema substitution pipeline.
type Service struct {
	opts   *Options
	store  Store
	sink   artifact.Sink
	logger *zap.Logger
}

// NewService creates a new remap service.
func NewService(opts *Options, store Store, sink artifact.Sink, logger *zap.Logger) *Service {
	return &Service{
		opts:   opts,
		store:  store,
		sink:   sink,
		logger: logger,
	}
}

// Build reads every input, merges the tables and substitutes the schema in
// memory. Nothing is written.
func (s *Service) Build(ctx context.Context) (*Result, error) {
	if err := utils.CheckInput("remap.translations", s.opts.Translations); err != nil {
		return nil, err
	}
	if err := utils.CheckInput("remap.schema", s.opts.Schema); err != nil {
		return nil, err
	}

	entries, err := s.readTranslations()
	if err != nil {
		return nil, err
	}
	schema, err := os.ReadFile(s.opts.Schema.Path)
	if err != nil {
		return nil, apperr.SourceRead(s.opts.Schema.Path, err)
	}

	persisted, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	merged, report := Merge(persisted, entries, s.opts.Precedence)
	if len(report.Conflicts) > 0 {
		s.logger.Info("Translation conflicts resolved",
			zap.String("precedence", string(s.opts.Precedence)),
			zap.Int("conflicts", len(report.Conflicts)),
			zap.Strings("keys", report.Conflicts),
		)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	translated := Substitute(string(schema), merged, s.opts.Match)

	res := &Result{
		Parsed:    len(entries),
		Persisted: len(persisted),
		Merged:    len(merged),
		Merge:     report,
		Table:     merged,
		Artifacts: []artifact.Artifact{{Path: s.opts.OutputPath, Data: []byte(translated)}},
	}
	if as, ok := s.store.(ArtifactStore); ok {
		a, err := as.Artifact(merged)
		if err != nil {
			return nil, err
		}
		res.Artifacts = append(res.Artifacts, a)
	}
	return res, nil
}

// Run builds the outputs and persists them. For file stores the override table
// is flushed together with the translated schema. Transactional stores flush
// the schema inside the save transaction; the schema is reverted when the
// commit fails. Any other store is saved after the flush, which is reverted
// when the save fails.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	res, err := s.Build(ctx)
	if err != nil {
		return nil, err
	}

	switch store := s.store.(type) {
	case ArtifactStore:
		if err := s.sink.Flush(ctx, res.Artifacts); err != nil {
			return nil, fmt.Errorf("failed to write remap artifacts: %w", err)
		}
	case TxStore:
		var revert artifact.Revert
		err := store.SaveWith(ctx, res.Table, func() error {
			var err error
			revert, err = artifact.FlushRevertible(ctx, s.sink, res.Artifacts)
			if err != nil {
				return fmt.Errorf("failed to write remap artifacts: %w", err)
			}
			return nil
		})
		if err != nil {
			s.revert(revert)
			return nil, err
		}
	default:
		revert, err := artifact.FlushRevertible(ctx, s.sink, res.Artifacts)
		if err != nil {
			return nil, fmt.Errorf("failed to write remap artifacts: %w", err)
		}
		if err := store.Save(ctx, res.Table); err != nil {
			s.revert(revert)
			return nil, err
		}
	}

	s.logger.Info("Remapped schema",
		zap.String("schema", s.opts.Schema.Path),
		zap.String("output", s.opts.OutputPath),
		zap.Int("parsed", res.Parsed),
		zap.Int("persisted", res.Persisted),
		zap.Int("merged", res.Merged),
		zap.Int("added", res.Merge.Added),
		zap.Int("carried", res.Merge.Carried),
	)
	return res, nil
}

// Check builds the outputs and returns the paths that are out of date.
func (s *Service) Check(ctx context.Context, checker artifact.StaleChecker) ([]string, error) {
	res, err := s.Build(ctx)
	if err != nil {
		return nil, err
	}
	stale, err := checker.Stale(res.Artifacts)
	if err != nil {
		return nil, fmt.Errorf("failed to compare remap artifacts: %w", err)
	}
	return stale, nil
}

func (s *Service) revert(r artifact.Revert) {
	if r == nil {
		return
	}
	if err := r(); err != nil {
		s.logger.Error("Failed to restore remap artifacts", zap.Error(err))
		return
	}
	s.logger.Warn("Restored remap artifacts after a failed save", zap.String("output", s.opts.OutputPath))
}

func (s *Service) readTranslations() (Entries, error) {
	f, err := os.Open(s.opts.Translations.Path)
	if err != nil {
		return nil, apperr.SourceRead(s.opts.Translations.Path, err)
	}
	defer f.Close()

	entries, err := Parse(f, s.opts.Separator)
	if err != nil {
		return nil, apperr.SourceRead(s.opts.Translations.Path, err)
	}
	s.logger.Debug("Parsed translations", zap.String("path", s.opts.Translations.Path), zap.Int("entries", len(entries)))
	return entries, nil
}
