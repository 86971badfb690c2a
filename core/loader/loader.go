package loader

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Feature is a pipeline the generator can run.
type Feature interface {
	// Name identifies the feature in logs and errors.
	Name() string
	// IsEnabled reports whether RunAll should run the feature.
	IsEnabled() bool
	// Run executes the feature once.
	Run(ctx context.Context) error
}

// Manager holds the registered features and runs them in registration order.
type Manager struct {
	features []Feature
	logger   *zap.Logger
}

// NewManager creates an empty feature manager.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{logger: logger}
}

// Register adds a feature. A second feature with the same name is rejected.
func (m *Manager) Register(f Feature) error {
	for _, existing := range m.features {
		if existing.Name() == f.Name() {
			return fmt.Errorf("feature %s already registered", f.Name())
		}
	}
	m.features = append(m.features, f)
	return nil
}

// Names returns the registered feature names in run order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.features))
	for _, f := range m.features {
		names = append(names, f.Name())
	}
	return names
}

// RunAll runs every enabled feature and stops at the first failure.
func (m *Manager) RunAll(ctx context.Context) error {
	for _, f := range m.features {
		if !f.IsEnabled() {
			m.logger.Debug("Feature disabled, skipping", zap.String("feature", f.Name()))
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		m.logger.Info("Running feature", zap.String("feature", f.Name()))
		if err := f.Run(ctx); err != nil {
			return fmt.Errorf("feature %s: %w", f.Name(), err)
		}
	}
	return nil
}
