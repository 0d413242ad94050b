package contract

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"rigkpi/internal/textnorm"
	"rigkpi/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 12
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
	MaxPrecision       = 4
	DefaultDelimiter   = ";"
	DefaultPerfTag     = "f09"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a run.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath   string
	TargetsPath string

	Delimiter   rune
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	Year  int
	Month int

	// CompareYear and CompareMonth restrict the comparison fold of the gap
	// command; the global Year/Month pair restricts the baseline fold.
	CompareYear  int
	CompareMonth int

	Metric  schema.Metric
	PerfTag string

	// IncludeRigs and ExcludeRigs hold normalized rig identifiers.
	IncludeRigs map[string]struct{}
	ExcludeRigs map[string]struct{}

	// AvailabilityTarget and UEBDTarget come from the objective flags,
	// already coerced to ratios. Nil when the flag was not given.
	AvailabilityTarget *float64
	UEBDTarget         *float64

	// BaselinePath and ComparisonPath are set from positional args of the
	// gap command.
	BaselinePath   string
	ComparisonPath string

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output

	// ByShift, ByRig and Fleet select the breakdown of the tabular commands.
	ByShift bool
	ByRig   bool
	Fleet   bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	InputPathStr      string
	BaselinePathStr   string
	ComparisonPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Delimiter      string `mapstructure:"delimiter"`
	OutputFile     string `mapstructure:"output-file"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	Width          int    `mapstructure:"width"`
	Year           int    `mapstructure:"year"`
	Month          string `mapstructure:"month"`
	Rigs           string `mapstructure:"rigs"`
	ExcludeRigs    string `mapstructure:"exclude-rigs"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	// --- Fields from metric-scoped commands ---
	CompareYear  int    `mapstructure:"compare-year"`
	CompareMonth string `mapstructure:"compare-month"`
	Metric       string `mapstructure:"metric"`
	PerfTag      string `mapstructure:"perf-tag"`
	TargetsFile  string `mapstructure:"targets-file"`
	DispTarget   string `mapstructure:"availability-target"`
	UEBDTarget   string `mapstructure:"uebd-target"`
	ByShift      bool   `mapstructure:"by-shift"`
	ByRig        bool   `mapstructure:"by-rig"`
	Fleet        bool   `mapstructure:"fleet"`
}

// Clone returns a deep copy of the Config, so per-request overrides never
// touch the shared base configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.IncludeRigs != nil {
		clone.IncludeRigs = make(map[string]struct{}, len(c.IncludeRigs))
		maps.Copy(clone.IncludeRigs, c.IncludeRigs)
	}
	if c.ExcludeRigs != nil {
		clone.ExcludeRigs = make(map[string]struct{}, len(c.ExcludeRigs))
		maps.Copy(clone.ExcludeRigs, c.ExcludeRigs)
	}
	if c.AvailabilityTarget != nil {
		v := *c.AvailabilityTarget
		clone.AvailabilityTarget = &v
	}
	if c.UEBDTarget != nil {
		v := *c.UEBDTarget
		clone.UEBDTarget = &v
	}
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processPeriodFilter(cfg, input); err != nil {
		return err
	}
	if err := processRigFilters(cfg, input); err != nil {
		return err
	}
	if err := processTargets(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.InputPath = input.InputPathStr
	cfg.BaselinePath = input.BaselinePathStr
	cfg.ComparisonPath = input.ComparisonPathStr
	cfg.TargetsPath = input.TargetsFile
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.PerfTag = strings.TrimSpace(input.PerfTag)
	cfg.ByShift = input.ByShift
	cfg.ByRig = input.ByRig
	cfg.Fleet = input.Fleet

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Delimiter Validation ---
	delim := input.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}
	runes := []rune(delim)
	if len(runes) != 1 {
		return fmt.Errorf("delimiter must be a single character (received %q)", input.Delimiter)
	}
	cfg.Delimiter = runes[0]

	// --- 2. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// --- 4. Metric Validation ---
	cfg.Metric = schema.Metric(strings.ToLower(input.Metric))
	if _, ok := schema.ValidMetrics[cfg.Metric]; !ok {
		return fmt.Errorf("invalid metric '%s'. must be disponibilidad, uebd", input.Metric)
	}

	return nil
}

// processPeriodFilter validates the year and month restriction. The month
// flag accepts a number or a Spanish month name.
func processPeriodFilter(cfg *Config, input *ConfigRawInput) error {
	if input.Year < 0 {
		return fmt.Errorf("year cannot be negative (received %d)", input.Year)
	}
	cfg.Year = input.Year

	month := strings.TrimSpace(input.Month)
	if month == "" {
		cfg.Month = 0
		return nil
	}
	m, ok := textnorm.ParseMonth(month)
	if !ok {
		return fmt.Errorf("invalid month '%s'. must be 1-12 or a Spanish month name", input.Month)
	}
	cfg.Month = m

	if cfg.Month != 0 && cfg.Year == 0 {
		return fmt.Errorf("--month requires --year")
	}
	return processComparePeriod(cfg, input)
}

// processComparePeriod validates the gap command's comparison window.
func processComparePeriod(cfg *Config, input *ConfigRawInput) error {
	if input.CompareYear < 0 {
		return fmt.Errorf("compare-year cannot be negative (received %d)", input.CompareYear)
	}
	cfg.CompareYear = input.CompareYear

	month := strings.TrimSpace(input.CompareMonth)
	if month == "" {
		cfg.CompareMonth = 0
		return nil
	}
	m, ok := textnorm.ParseMonth(month)
	if !ok {
		return fmt.Errorf("invalid compare-month '%s'. must be 1-12 or a Spanish month name", input.CompareMonth)
	}
	cfg.CompareMonth = m

	if cfg.CompareMonth != 0 && cfg.CompareYear == 0 {
		return fmt.Errorf("--compare-month requires --compare-year")
	}
	return nil
}

// processRigFilters builds the normalized include and exclude sets.
func processRigFilters(cfg *Config, input *ConfigRawInput) error {
	cfg.IncludeRigs = ParseRigList(input.Rigs)
	cfg.ExcludeRigs = ParseRigList(input.ExcludeRigs)

	for rig := range cfg.IncludeRigs {
		if _, both := cfg.ExcludeRigs[rig]; both {
			return fmt.Errorf("rig '%s' appears in both --rigs and --exclude-rigs", rig)
		}
	}
	return nil
}

// processTargets coerces the objective flags into ratios. Percentages and
// ratios are both accepted; 85 and 0.85 mean the same target.
func processTargets(cfg *Config, input *ConfigRawInput) error {
	parse := func(flag, raw string) (*float64, error) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, nil
		}
		v, ok := textnorm.ParseNumber(raw)
		if !ok {
			return nil, fmt.Errorf("invalid %s value '%s'", flag, raw)
		}
		ratio, ok := textnorm.ParseRatio(v)
		if !ok {
			return nil, fmt.Errorf("invalid %s value '%s': must be a ratio or percentage", flag, raw)
		}
		return &ratio, nil
	}

	disp, err := parse("--availability-target", input.DispTarget)
	if err != nil {
		return err
	}
	cfg.AvailabilityTarget = disp

	uebd, err := parse("--uebd-target", input.UEBDTarget)
	if err != nil {
		return err
	}
	cfg.UEBDTarget = uebd
	return nil
}

// validateBackendConfig validates the results store configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseRigList splits a comma-separated rig list into a set of normalized
// identifiers, so PF-03, pf03 and PF_03 all land on the same key.
func ParseRigList(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for part := range strings.SplitSeq(s, ",") {
		norm := textnorm.NormalizeRig(part)
		if norm != "" {
			out[norm] = struct{}{}
		}
	}
	return out
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// RunParams projects the validated config onto the parameter map persisted
// with each run record.
func (c *Config) RunParams() map[string]any {
	return map[string]any{
		"input":    c.InputPath,
		"year":     c.Year,
		"month":    c.Month,
		"metric":   string(c.Metric),
		"perf_tag": c.PerfTag,
	}
}
