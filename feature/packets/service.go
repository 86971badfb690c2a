package packets

import (
	"context"
	"fmt"

	"packetgen/core/artifact"
	"packetgen/core/utils"

	"go.uber.org/zap"
)

// Result summarises one generation run.
type Result struct {
	// Entries is the number of packets in the table.
	Entries int `json:"entries"`
	// Registered is the number of packets in the message registry.
	Registered int `json:"registered"`
	// Excluded is the number of table packets left out of the registry.
	Excluded int `json:"excluded"`
	// UnknownExclusions lists excluded ids that are not in the table.
	UnknownExclusions []uint16 `json:"unknown_exclusions"`
	// Unformatted lists artifacts gofmt rejected.
	Unformatted []string `json:"unformatted"`
	// Artifacts holds the generated files.
	Artifacts []artifact.Artifact `json:"-"`
}

// Service generates the packet constant, name and registry files.
type Service struct {
	opts   *Options
	sink   artifact.Sink
	logger *zap.Logger
}

// NewService creates a new packet generation service.
func NewService(opts *Options, sink artifact.Sink, logger *zap.Logger) *Service {
	return &Service{
		opts:   opts,
		sink:   sink,
		logger: logger,
	}
}

// Build loads the inputs and emits every artifact in memory.
func (s *Service) Build(ctx context.Context) (*Result, error) {
	if err := utils.CheckInput("packets.table", s.opts.Table); err != nil {
		return nil, err
	}
	if s.opts.Exclusions != nil {
		if err := utils.CheckInput("packets.exclusions", *s.opts.Exclusions); err != nil {
			return nil, err
		}
	}

	table, err := ReadTable(s.opts.Table.Path)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Loaded packet table", zap.String("path", s.opts.Table.Path), zap.Int("entries", table.Len()))

	excluded := DefaultExclusions()
	if s.opts.Exclusions != nil {
		excluded, err = ReadExclusions(s.opts.Exclusions.Path, s.opts.Version)
		if err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := table.Entries(s.opts.Ordering)
	sources := []struct {
		path string
		src  Source
	}{
		{s.opts.IDsPath, EmitConstants(entries, s.opts.Emit)},
		{s.opts.NamesPath, EmitNames(entries, s.opts.Emit)},
		{s.opts.RegistryPath, EmitRegistry(entries, excluded, s.opts.Emit)},
	}

	res := &Result{Entries: table.Len()}
	for _, e := range entries {
		if excluded.Contains(e.ID) {
			res.Excluded++
		} else {
			res.Registered++
		}
	}
	for _, id := range excluded.IDs() {
		if _, ok := table.Lookup(id); !ok {
			res.UnknownExclusions = append(res.UnknownExclusions, id)
		}
	}
	if len(res.UnknownExclusions) > 0 {
		s.logger.Warn("Excluded ids are not in the packet table", zap.Any("ids", res.UnknownExclusions))
	}

	for _, src := range sources {
		if src.src.FormatErr != nil {
			res.Unformatted = append(res.Unformatted, src.path)
			s.logger.Warn("Generated source is not valid Go, writing it unformatted",
				zap.String("path", src.path), zap.Error(src.src.FormatErr))
		}
		res.Artifacts = append(res.Artifacts, artifact.Artifact{Path: src.path, Data: src.src.Data})
	}

	return res, nil
}

// Generate builds every artifact and flushes them to the sink together.
func (s *Service) Generate(ctx context.Context) (*Result, error) {
	res, err := s.Build(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.sink.Flush(ctx, res.Artifacts); err != nil {
		return nil, fmt.Errorf("failed to write packet artifacts: %w", err)
	}
	s.logger.Info("Generated packet artifacts",
		zap.Int("entries", res.Entries),
		zap.Int("registered", res.Registered),
		zap.Int("excluded", res.Excluded),
		zap.String("ordering", string(s.opts.Ordering)),
	)
	return res, nil
}

// Check builds every artifact and returns the paths that are out of date.
func (s *Service) Check(ctx context.Context, checker artifact.StaleChecker) ([]string, error) {
	res, err := s.Build(ctx)
	if err != nil {
		return nil, err
	}
	stale, err := checker.Stale(res.Artifacts)
	if err != nil {
		return nil, fmt.Errorf("failed to compare packet artifacts: %w", err)
	}
	return stale, nil
}
