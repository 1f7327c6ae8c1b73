// Package projects keeps the latest ResultSet of every registered project.
package projects

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/de-tools/result-atlas/pkg/models/domain"
	"github.com/de-tools/result-atlas/pkg/services/config"
	"github.com/de-tools/result-atlas/pkg/services/ingest"
)

type Manager interface {
	ListProjects(ctx context.Context) []string
	GetResultSet(ctx context.Context, name string) (*domain.ResultSet, error)
	Reload(ctx context.Context, name string) error
}

type project struct {
	profile domain.ProjectProfile
	cfg     config.Config
	rs      *domain.ResultSet
	err     error
}

// Service serves immutable result sets. A reload ingests into a new set and
// swaps it in only on success; readers keep whatever pointer they already hold.
type Service struct {
	registry config.Registry

	mu       sync.RWMutex
	projects map[string]*project
}

func NewService(registry config.Registry) *Service {
	return &Service{
		registry: registry,
		projects: map[string]*project{},
	}
}

// Init ingests every registered project. A project that fails to ingest stays
// listed and reports its error from GetResultSet until a reload succeeds.
func (s *Service) Init(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	profiles, err := s.registry.GetProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list project profiles: %w", err)
	}

	loaded := make(map[string]*project, len(profiles))
	for _, profile := range profiles {
		cfg, err := ProfileConfig(profile)
		if err != nil {
			return err
		}
		p := &project{profile: profile, cfg: cfg}
		p.rs, p.err = ingest.Ingest(ctx, profile.Root, cfg)
		if p.err != nil {
			logger.Error().Err(p.err).Str("project", profile.Name).Msg("failed to ingest project")
		}
		loaded[profile.Name] = p
	}

	s.mu.Lock()
	s.projects = loaded
	s.mu.Unlock()
	return nil
}

func (s *Service) ListProjects(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.projects))
}

func (s *Service) GetResultSet(_ context.Context, name string) (*domain.ResultSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProject, name)
	}
	if p.rs == nil {
		return nil, fmt.Errorf("project %s is not available: %w", name, p.err)
	}
	return p.rs, nil
}

func (s *Service) Reload(ctx context.Context, name string) error {
	s.mu.RLock()
	p, ok := s.projects[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownProject, name)
	}

	rs, err := ingest.Ingest(ctx, p.profile.Root, p.cfg)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("project", name).Msg("reload failed, keeping previous result set")
		return err
	}

	s.mu.Lock()
	s.projects[name] = &project{profile: p.profile, cfg: p.cfg, rs: rs}
	s.mu.Unlock()
	return nil
}

// Roots returns the project root of every registered project keyed by name.
func (s *Service) Roots() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roots := make(map[string]string, len(s.projects))
	for name, p := range s.projects {
		roots[name] = p.profile.Root
	}
	return roots
}

// ProfileConfig loads the ingestion config of a profile. A non-zero profile
// start year overrides the config file.
func ProfileConfig(profile domain.ProjectProfile) (config.Config, error) {
	cfg, err := config.LoadConfig(profile.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("project %s: %w", profile.Name, err)
	}
	if profile.StartYear != 0 {
		cfg.StartYear = profile.StartYear
	}
	return *cfg, nil
}
