package core

import (
	"context"
	"fmt"
	"path/filepath"

	"mcw/internal/domain"
	"mcw/internal/source"
	"mcw/internal/storage/cache"
	"mcw/internal/storage/config"
	"mcw/internal/storage/db"
)

// ServiceConfig holds configuration for the core service
type ServiceConfig struct {
	ConfigDir string // Directory for configuration files
	DataDir   string // Directory for database and persistent data
	CacheDir  string // Directory for downloaded mod files
}

// Service is the main orchestrator for mod management operations
type Service struct {
	config     *config.Config
	db         *db.DB
	cache      *cache.Cache
	registry   *source.Registry
	downloader *Downloader

	configDir string
}

// NewService creates a new core service instance
func NewService(cfg ServiceConfig) (*Service, error) {
	appConfig, err := config.Load(cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	database, err := db.New(filepath.Join(cfg.DataDir, "mcw.db"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &Service{
		config:     appConfig,
		db:         database,
		cache:      cache.New(cfg.CacheDir),
		registry:   source.NewRegistry(),
		downloader: NewDownloader(nil),
		configDir:  cfg.ConfigDir,
	}, nil
}

// Close releases resources held by the service
func (s *Service) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Config returns the loaded application config
func (s *Service) Config() *config.Config {
	return s.config
}

// SaveConfig persists the current config to disk
func (s *Service) SaveConfig() error {
	return s.config.Save(s.configDir)
}

// DB returns the installed-mods database
func (s *Service) DB() *db.DB {
	return s.db
}

// RegisterCatalog adds a catalog to the registry
func (s *Service) RegisterCatalog(c source.Catalog) {
	s.registry.Register(c)
}

// GetCatalog retrieves a catalog by provider
func (s *Service) GetCatalog(id domain.Provider) (source.Catalog, error) {
	return s.registry.Get(id)
}

// ListCatalogs returns all registered catalogs
func (s *Service) ListCatalogs() []source.Catalog {
	return s.registry.List()
}

// Installer returns an installer bound to this service's stores
func (s *Service) Installer() *Installer {
	return NewInstaller(s.registry, s.db, s.cache, s.downloader)
}

// Updater returns an updater bound to this service's stores
func (s *Service) Updater() *Updater {
	return NewUpdater(s.registry, s.db)
}

// Search queries a catalog for projects
func (s *Service) Search(ctx context.Context, provider domain.Provider, query source.SearchQuery) ([]domain.Project, error) {
	catalog, err := s.registry.Get(provider)
	if err != nil {
		return nil, err
	}
	return catalog.Search(ctx, query)
}

// InstalledMods returns all installed records
func (s *Service) InstalledMods() ([]domain.InstalledRecord, error) {
	return s.db.GetInstalledMods()
}

// ScanModsDir registers unknown jars in the configured instance as local
// installs so dependency resolution sees manually added mods
func (s *Service) ScanModsDir() ([]domain.InstalledRecord, error) {
	modsDir := s.config.ModsDir()
	if modsDir == "" {
		return nil, fmt.Errorf("%w: instance_dir is not set", domain.ErrInvalidConfig)
	}
	return s.db.ScanModsDir(modsDir)
}
