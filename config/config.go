package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"

	"github.com/tqsched/tq/core/calendar"
	"github.com/tqsched/tq/core/planner"
)

// Config is the project definition: tasks, calendar rules and the optional
// observability settings.
type Config struct {
	Start          string              `json:"start"`
	WorkingHours   []WorkingHoursRule  `json:"working_hours"`
	NonWorkingDays []DayRule           `json:"non_working_days"`
	Tasks          []TaskDefinition    `json:"tasks"`
	History        HistoryConfig       `json:"history"`
	Metrics        MetricsConfig       `json:"metrics"`
	Logging        LoggingConfig       `json:"logging"`
}

// TaskDefinition declares one task and its effort in hours.
type TaskDefinition struct {
	Description string          `json:"description"`
	Effort      decimal.Decimal `json:"effort"`
}

// WorkingHoursRule grants a daily capacity to the days selected by On or
// From/To. With no selector the rule applies to every day.
type WorkingHoursRule struct {
	Hours decimal.Decimal `json:"hours"`
	On    string          `json:"on"`
	From  string          `json:"from"`
	To    string          `json:"to"`
}

// DayRule selects days via On (date or weekday name) or From/To (inclusive
// interval).
type DayRule struct {
	On   string `json:"on"`
	From string `json:"from"`
	To   string `json:"to"`
}

// HistoryConfig selects the plan-run store. An empty driver disables it.
type HistoryConfig struct {
	Driver string `json:"driver"`
	Path   string `json:"path"`
}

// MetricsConfig controls the Prometheus sink used by watch mode.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `json:"level"`
}

// SetDefaults fills unset logging fields.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks the logging level.
func (c LoggingConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("unknown log level: %q", c.Level)
	}
}

// Load reads a project definition from a YAML or JSON file. Environment
// variables prefixed with TQ_ override file values ("__" separates nesting,
// e.g. TQ_METRICS__PROMETHEUS_ADDR).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported project file format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("TQ_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "tq_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	dc := &mapstructure.DecoderConfig{
		DecodeHook:       decimalHook(),
		Result:           &cfg,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json", DecoderConfig: dc}); err != nil {
		return nil, err
	}
	cfg.Logging.SetDefaults()
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// decimalHook converts config scalars into exact decimals. Strings keep
// their textual precision; YAML floats go through the shortest decimal
// representation.
func decimalHook() mapstructure.DecodeHookFuncType {
	decType := reflect.TypeOf(decimal.Decimal{})
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != decType {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return decimal.NewFromString(v)
		case int:
			return decimal.NewFromInt(int64(v)), nil
		case int64:
			return decimal.NewFromInt(v), nil
		case float64:
			return decimal.NewFromFloat(v), nil
		default:
			return data, nil
		}
	}
}

func dayPredicate(on, from, to string) (calendar.DayPredicate, error) {
	switch {
	case on != "":
		return calendar.ParsePredicate(on)
	case from != "" && to != "":
		return calendar.NewDayInterval(from, to)
	case from != "" || to != "":
		return nil, errors.New("interval selector needs both from and to")
	default:
		return calendar.EveryDay{}, nil
	}
}

// BuildProject turns the definition into a planner.Project.
func (c *Config) BuildProject() (*planner.Project, error) {
	if c.Start == "" {
		return nil, errors.New("start date is required")
	}
	start, err := calendar.ParseDate(c.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	p := planner.NewProject()
	p.SetStart(start)

	for i, rule := range c.WorkingHours {
		pred, err := dayPredicate(rule.On, rule.From, rule.To)
		if err != nil {
			return nil, fmt.Errorf("working_hours[%d]: %w", i, err)
		}
		if rule.Hours.Sign() < 0 {
			return nil, fmt.Errorf("working_hours[%d]: hours must not be negative", i)
		}
		p.AddWorkingHours(pred, rule.Hours)
	}
	for i, rule := range c.NonWorkingDays {
		if rule.On == "" && (rule.From == "" || rule.To == "") {
			return nil, fmt.Errorf("non_working_days[%d]: needs on or from/to", i)
		}
		pred, err := dayPredicate(rule.On, rule.From, rule.To)
		if err != nil {
			return nil, fmt.Errorf("non_working_days[%d]: %w", i, err)
		}
		p.AddNonWorkingDay(pred)
	}
	for i, task := range c.Tasks {
		if task.Description == "" {
			return nil, fmt.Errorf("tasks[%d]: description is required", i)
		}
		if task.Effort.Sign() < 0 {
			return nil, fmt.Errorf("tasks[%d]: effort must not be negative", i)
		}
		p.AddTask(task.Description, task.Effort)
	}
	return p, nil
}
