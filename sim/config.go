package sim

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/tcsim/tcsim/sim/trace"
)

//go:embed config.schema.json
var configSchemaJSON string

var configSchema = jsonschema.MustCompileString("config.schema.json", configSchemaJSON)

// Stock is the per-resource quantity block of a config file.
type Stock struct {
	Food  float64 `yaml:"food"`
	Wood  float64 `yaml:"wood"`
	Gold  float64 `yaml:"gold"`
	Stone float64 `yaml:"stone"`
}

// Amounts converts the stock into a per-resource array.
func (s Stock) Amounts() Amounts {
	return Amounts{Food: s.Food, Wood: s.Wood, Gold: s.Gold, Stone: s.Stone}
}

// RoleConfig holds the production constants of a gathering role.
type RoleConfig struct {
	Yield       float64 `yaml:"yield"`        // units per delivery
	CycleLength int64   `yaml:"cycle_length"` // seconds per delivery
}

// RolesConfig groups the four gathering roles.
type RolesConfig struct {
	Farmer     RoleConfig `yaml:"farmer"`
	Lumberjack RoleConfig `yaml:"lumberjack"`
	GoldMiner  RoleConfig `yaml:"gold_miner"`
	StoneMiner RoleConfig `yaml:"stone_miner"`
}

// Config is the static parameter set of a simulation. It is passed to
// NewSimulator and never mutated by a run, so one Config can back many
// independent simulators.
type Config struct {
	Horizon          int64       `yaml:"horizon"`           // default run horizon (seconds)
	InitialResources Stock       `yaml:"initial_resources"` // stockpile at t=0
	InitialVillagers int         `yaml:"initial_villagers"` // farmers present at t=0 in dynamic runs
	Roles            RolesConfig `yaml:"roles"`

	TrainingFoodCost float64 `yaml:"training_food_cost"`
	TrainingDuration int64   `yaml:"training_duration"`
	RetryInterval    int64   `yaml:"retry_interval"` // wait before retrying a failed training attempt

	WoodCostPerHouse      float64 `yaml:"wood_cost_per_house"`
	HouseBuildDuration    int64   `yaml:"house_build_duration"`
	AccommodationPerHouse int     `yaml:"accommodation_per_house"`
	InitialAccommodation  int     `yaml:"initial_accommodation"`
	HousingSlack          int     `yaml:"housing_slack"`          // free slots left when a builder is forced
	HousingMinPopulation  int     `yaml:"housing_min_population"` // population below which houses are never forced

	WoodPerFood            float64 `yaml:"wood_per_food"`      // farm upkeep per unit of food delivered
	WoodCostPerFarm        float64 `yaml:"wood_cost_per_farm"` // wood need added per farmer
	FixedWoodOverhead      float64 `yaml:"fixed_wood_overhead"`
	FarmUpkeepInSimpleMode bool    `yaml:"farm_upkeep_in_simple_mode"`

	MaxEvents        int64              `yaml:"max_events"` // 0 = unlimited
	AllocationPolicy string             `yaml:"allocation_policy"`
	TraceLevel       string             `yaml:"trace_level"`
	Goal             map[string]float64 `yaml:"goal,omitempty"`
}

// DefaultConfig returns the stock town-center parameters.
func DefaultConfig() *Config {
	return &Config{
		Horizon:          10000,
		InitialResources: Stock{Food: 200, Wood: 200, Gold: 100, Stone: 0},
		InitialVillagers: 3,
		Roles: RolesConfig{
			Farmer:     RoleConfig{Yield: 10, CycleLength: 32},
			Lumberjack: RoleConfig{Yield: 10, CycleLength: 24},
			GoldMiner:  RoleConfig{Yield: 10, CycleLength: 28},
			StoneMiner: RoleConfig{Yield: 10, CycleLength: 30},
		},
		TrainingFoodCost:      50,
		TrainingDuration:      25,
		RetryInterval:         10,
		WoodCostPerHouse:      25,
		HouseBuildDuration:    25,
		AccommodationPerHouse: 5,
		InitialAccommodation:  10,
		HousingSlack:          2,
		HousingMinPopulation:  8,
		WoodPerFood:           0.25,
		WoodCostPerFarm:       60,
		FixedWoodOverhead:     100,
		AllocationPolicy:      "need-score",
		TraceLevel:            string(trace.TraceLevelNone),
	}
}

// Role returns the production constants for the role gathering rt.
func (c *Config) Role(rt ResourceType) RoleConfig {
	switch rt {
	case Food:
		return c.Roles.Farmer
	case Wood:
		return c.Roles.Lumberjack
	case Gold:
		return c.Roles.GoldMiner
	default:
		return c.Roles.StoneMiner
	}
}

// GoalFromConfig returns the goal block of the config, or nil when absent.
func (c *Config) GoalFromConfig() (Goal, error) {
	return GoalFromMap(c.Goal)
}

// Validate checks every parameter. It runs before any simulation starts so
// that bad input never surfaces mid-run.
func (c *Config) Validate() error {
	if c.Horizon <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %d", ErrInvalidConfig, c.Horizon)
	}
	for _, rt := range AllResources {
		if v := c.InitialResources.Amounts()[rt]; v < 0 {
			return fmt.Errorf("%w: initial %s must be non-negative, got %v", ErrInvalidConfig, rt, v)
		}
		rc := c.Role(rt)
		if rc.CycleLength <= 0 {
			return fmt.Errorf("%w: %s cycle_length must be positive, got %d", ErrInvalidWorker, RoleFor(rt), rc.CycleLength)
		}
		if rc.Yield <= 0 {
			return fmt.Errorf("%w: %s yield must be positive, got %v", ErrInvalidWorker, RoleFor(rt), rc.Yield)
		}
	}
	if c.HouseBuildDuration <= 0 {
		return fmt.Errorf("%w: house_build_duration must be positive, got %d", ErrInvalidWorker, c.HouseBuildDuration)
	}
	if c.InitialVillagers < 0 {
		return fmt.Errorf("%w: initial_villagers must be non-negative, got %d", ErrInvalidConfig, c.InitialVillagers)
	}
	if c.TrainingFoodCost <= 0 || c.TrainingDuration <= 0 || c.RetryInterval <= 0 {
		return fmt.Errorf("%w: training cost, duration and retry interval must be positive", ErrInvalidConfig)
	}
	if c.WoodCostPerHouse <= 0 || c.AccommodationPerHouse <= 0 || c.InitialAccommodation <= 0 {
		return fmt.Errorf("%w: house cost, accommodation per house and initial accommodation must be positive", ErrInvalidConfig)
	}
	if c.HousingSlack < 0 || c.HousingMinPopulation < 0 {
		return fmt.Errorf("%w: housing_slack and housing_min_population must be non-negative", ErrInvalidConfig)
	}
	if c.WoodPerFood < 0 || c.WoodCostPerFarm < 0 || c.FixedWoodOverhead < 0 {
		return fmt.Errorf("%w: wood upkeep and overhead values must be non-negative", ErrInvalidConfig)
	}
	if c.MaxEvents < 0 {
		return fmt.Errorf("%w: max_events must be non-negative, got %d", ErrInvalidConfig, c.MaxEvents)
	}
	if !IsValidAllocationPolicy(c.AllocationPolicy) {
		return fmt.Errorf("%w: unknown allocation policy %q", ErrInvalidConfig, c.AllocationPolicy)
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("%w: unknown trace level %q", ErrInvalidConfig, c.TraceLevel)
	}
	if _, err := c.GoalFromConfig(); err != nil {
		return err
	}
	return nil
}

// LoadConfig reads a YAML config file layered over DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML config bytes. The document is first checked
// against the embedded JSON schema, then decoded strictly so that a
// misspelled key is an error rather than a silently ignored default.
func ParseConfig(data []byte) (*Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if doc != nil {
		if err := validateSchema(doc); err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateSchema round-trips the YAML tree through encoding/json so the
// validator sees plain JSON values.
func validateSchema(doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: config is not representable as JSON: %v", ErrInvalidConfig, err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := configSchema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ToYAML renders the config in the same layout LoadConfig reads.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}
