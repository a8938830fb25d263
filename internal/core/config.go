package core

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// AppConfig holds the user-tunable settings read from .taskdeck.yaml.
type AppConfig struct {
	// DataFile is the task collection file name, relative to the base path.
	DataFile string
	// EventLog enables the append-only mutation log.
	EventLog bool

	DefaultFilter    Filter
	DefaultSortKey   SortKey
	DefaultSortOrder SortOrder

	Limits Limits
}

// ConfigLoader loads and validates taskdeck configuration.
type ConfigLoader interface {
	Load() (*AppConfig, error)
	Validate(cfg *AppConfig) error
}

// viperConfigLoader implements ConfigLoader using Viper for reading the
// YAML configuration file.
type viperConfigLoader struct {
	basePath string
}

// NewConfigLoader creates a ConfigLoader that reads .taskdeck.yaml from basePath.
func NewConfigLoader(basePath string) ConfigLoader {
	return &viperConfigLoader{basePath: basePath}
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		DataFile:         "tasks.yaml",
		EventLog:         true,
		DefaultFilter:    FilterAll,
		DefaultSortKey:   SortByDate,
		DefaultSortOrder: SortDescending,
		Limits:           DefaultLimits(),
	}
}

// Load reads the .taskdeck.yaml file from the base path. If the file does
// not exist, defaults are returned.
func (cl *viperConfigLoader) Load() (*AppConfig, error) {
	cfg := DefaultAppConfig()

	v := viper.New()
	v.SetConfigName(".taskdeck")
	v.SetConfigType("yaml")
	v.AddConfigPath(cl.basePath)

	// Set Viper defaults so missing keys fall back gracefully.
	v.SetDefault("storage.file", cfg.DataFile)
	v.SetDefault("observability.event_log", cfg.EventLog)
	v.SetDefault("view.filter", string(cfg.DefaultFilter))
	v.SetDefault("view.sort", string(cfg.DefaultSortKey))
	v.SetDefault("view.order", string(cfg.DefaultSortOrder))
	v.SetDefault("limits.title_max", cfg.Limits.TitleMaxLength)
	v.SetDefault("limits.description_max", cfg.Limits.DescriptionMaxLength)
	v.SetDefault("limits.tag_max", cfg.Limits.TagMaxLength)
	v.SetDefault("limits.tags_max", cfg.Limits.TagsMaxCount)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .taskdeck.yaml: %w", err)
	}

	cfg.DataFile = v.GetString("storage.file")
	cfg.EventLog = v.GetBool("observability.event_log")
	cfg.DefaultFilter = Filter(v.GetString("view.filter"))
	cfg.DefaultSortKey = SortKey(v.GetString("view.sort"))
	cfg.DefaultSortOrder = SortOrder(v.GetString("view.order"))
	cfg.Limits.TitleMaxLength = v.GetInt("limits.title_max")
	cfg.Limits.DescriptionMaxLength = v.GetInt("limits.description_max")
	cfg.Limits.TagMaxLength = v.GetInt("limits.tag_max")
	cfg.Limits.TagsMaxCount = v.GetInt("limits.tags_max")

	return cfg, nil
}

// validFilters is the set of recognized display filters.
var validFilters = map[Filter]bool{
	FilterAll:       true,
	FilterActive:    true,
	FilterCompleted: true,
}

// validSortKeys is the set of recognized sort keys.
var validSortKeys = map[SortKey]bool{
	SortByDate:     true,
	SortByPriority: true,
	SortByTitle:    true,
}

// validSortOrders is the set of recognized sort directions.
var validSortOrders = map[SortOrder]bool{
	SortAscending:  true,
	SortDescending: true,
}

// Validate checks a configuration for invalid values and returns one error
// naming every problem found.
func (cl *viperConfigLoader) Validate(cfg *AppConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if cfg.DataFile == "" {
		errs = append(errs, "storage.file must not be empty")
	}
	if !validFilters[cfg.DefaultFilter] {
		errs = append(errs, fmt.Sprintf(
			"view.filter %q is invalid, must be one of: all, active, completed",
			cfg.DefaultFilter,
		))
	}
	if !validSortKeys[cfg.DefaultSortKey] {
		errs = append(errs, fmt.Sprintf(
			"view.sort %q is invalid, must be one of: date, priority, title",
			cfg.DefaultSortKey,
		))
	}
	if !validSortOrders[cfg.DefaultSortOrder] {
		errs = append(errs, fmt.Sprintf(
			"view.order %q is invalid, must be one of: ascending, descending",
			cfg.DefaultSortOrder,
		))
	}
	if cfg.Limits.TitleMaxLength <= 0 {
		errs = append(errs, fmt.Sprintf("limits.title_max must be positive, got %d", cfg.Limits.TitleMaxLength))
	}
	if cfg.Limits.DescriptionMaxLength <= 0 {
		errs = append(errs, fmt.Sprintf("limits.description_max must be positive, got %d", cfg.Limits.DescriptionMaxLength))
	}
	if cfg.Limits.TagMaxLength <= 0 {
		errs = append(errs, fmt.Sprintf("limits.tag_max must be positive, got %d", cfg.Limits.TagMaxLength))
	}
	if cfg.Limits.TagsMaxCount <= 0 {
		errs = append(errs, fmt.Sprintf("limits.tags_max must be positive, got %d", cfg.Limits.TagsMaxCount))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
