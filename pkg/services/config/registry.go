package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/de-tools/result-atlas/pkg/models/domain"
)

// Registry lists the named project roots an API server exposes.
type Registry interface {
	GetProfiles(ctx context.Context) ([]domain.ProjectProfile, error)
	GetProfile(ctx context.Context, name string) (domain.ProjectProfile, error)
}

type iniRegistry struct {
	cfg *ini.File
}

// NewRegistry loads an ini file with one section per project:
//
//	[example]
//	root = /data/example_py
//	start_year = 2030
//	config = /etc/atlas/example.yaml
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetProfiles(ctx context.Context) ([]domain.ProjectProfile, error) {
	var profiles []domain.ProjectProfile
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		profile, err := r.GetProfile(ctx, section.Name())
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (r *iniRegistry) GetProfile(_ context.Context, name string) (domain.ProjectProfile, error) {
	section, err := r.cfg.GetSection(name)
	if err != nil {
		return domain.ProjectProfile{}, fmt.Errorf("%w: %s", domain.ErrUnknownProject, name)
	}

	root := section.Key("root").String()
	if root == "" {
		return domain.ProjectProfile{}, fmt.Errorf("profile %s: root is required", name)
	}

	startYear := 0
	if section.HasKey("start_year") {
		startYear, err = section.Key("start_year").Int()
		if err != nil {
			return domain.ProjectProfile{}, fmt.Errorf("profile %s: invalid start_year: %w", name, err)
		}
	}

	return domain.ProjectProfile{
		Name:       name,
		Root:       root,
		StartYear:  startYear,
		ConfigPath: section.Key("config").String(),
	}, nil
}
