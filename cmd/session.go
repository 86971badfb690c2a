package cmd

import (
	"context"
	"fmt"
	"strings"

	"packetgen/core/artifact"
	"packetgen/core/config"
	"packetgen/core/database"
	"packetgen/core/logger"
	"packetgen/core/storage"
	"packetgen/feature/packets"
	"packetgen/feature/translation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// session bundles what every command needs for one run.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	files  *artifact.FileSink
	sink   artifact.Sink
	check  bool
	db     *gorm.DB
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cmd.Flags().Changed("version") {
		cfg.Build.Version = buildVersion
	}
	if publishFlag {
		cfg.Storage.Enabled = true
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logg = logger.WithRunID(logg, logger.NewRunID())

	files := artifact.NewFileSink(logg)
	s := &session{
		cfg:    cfg,
		logger: logg,
		files:  files,
		sink:   files,
		check:  checkFlag,
	}

	if cfg.Storage.Enabled && !s.check {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, err
		}
		s.sink = artifact.MultiSink{files, artifact.NewBucketSink(client, cfg.Storage.Bucket, cfg.Storage.Prefix, logg)}
		logg.Info("Publishing enabled", zap.String("bucket", cfg.Storage.Bucket), zap.String("prefix", cfg.Storage.Prefix))
	}

	return s, nil
}

func (s *session) close() {
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = s.logger.Sync()
}

func (s *session) packetsFeature() (*packetsFeature, error) {
	if orderingFlag != "" {
		s.cfg.Packets.Ordering = orderingFlag
	}
	opts, err := s.cfg.Packets.Resolve(s.cfg.Build.Version)
	if err != nil {
		return nil, err
	}
	return &packetsFeature{
		svc:     packets.NewService(opts, s.sink, s.logger),
		checker: s.files,
		check:   s.check,
		logger:  s.logger,
	}, nil
}

func (s *session) remapFeature(ctx context.Context) (*remapFeature, error) {
	if precedenceFlag != "" {
		s.cfg.Remap.Precedence = precedenceFlag
	}
	if matchFlag != "" {
		s.cfg.Remap.Match = matchFlag
	}
	if storeFlag != "" {
		s.cfg.Remap.Store = storeFlag
	}
	opts, err := s.cfg.Remap.Resolve(s.cfg.Build.Version)
	if err != nil {
		return nil, err
	}

	store, err := s.overrideStore(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &remapFeature{
		svc:     translation.NewService(opts, store, s.sink, s.logger),
		checker: s.files,
		check:   s.check,
		logger:  s.logger,
	}, nil
}

func (s *session) overrideStore(ctx context.Context, opts *translation.Options) (translation.Store, error) {
	if opts.Store == translation.StoreFile {
		return translation.NewFileStore(opts.OverridesPath), nil
	}

	db, err := database.Connect(s.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to override database: %w", err)
	}
	s.db = db
	s.logger.Info("Connected to override database", zap.String("driver", s.cfg.Database.Driver))

	store := translation.NewDBStore(db)
	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// staleError reports check mode results. A nil return means every output is current.
func staleError(logger *zap.Logger, feature string, stale []string) error {
	if len(stale) == 0 {
		logger.Info("Generated outputs are up to date", zap.String("feature", feature))
		return nil
	}
	for _, p := range stale {
		logger.Warn("Output is out of date", zap.String("feature", feature), zap.String("path", p))
	}
	return fmt.Errorf("%d %s outputs are out of date: %s", len(stale), feature, strings.Join(stale, ", "))
}
