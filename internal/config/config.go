// Package config provides Viper-based configuration loading for Emberquest.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// CombatConfig holds the numeric balancing constants consumed by the combat
// engine. They are injected into the engine so balance can be tuned without
// recompiling rule logic.
type CombatConfig struct {
	// BaseEvasion is the base probability of evading an incoming attack.
	BaseEvasion float64 `mapstructure:"base_evasion"`
	// EvasionPerAgility is the additional evasion chance per point of agility.
	EvasionPerAgility float64 `mapstructure:"evasion_per_agility"`
	// MaxEvasion caps the derived evasion chance.
	MaxEvasion float64 `mapstructure:"max_evasion"`
	// FleeChance is the nominal probability that a flee attempt succeeds.
	FleeChance float64 `mapstructure:"flee_chance"`
	// BossAbilityInterval is the fixed turn cooldown between boss abilities.
	BossAbilityInterval int `mapstructure:"boss_ability_interval"`
}

// PotionConfig holds restore amounts for each potion type.
type PotionConfig struct {
	Small      int `mapstructure:"small"`
	Medium     int `mapstructure:"medium"`
	Strong     int `mapstructure:"strong"`
	Mana       int `mapstructure:"mana"`
	ManaStrong int `mapstructure:"mana_strong"`
}

// PlayerConfig holds starting stats and level-up growth for the protagonist.
type PlayerConfig struct {
	StartingHP      int `mapstructure:"starting_hp"`
	StartingAttack  int `mapstructure:"starting_attack"`
	StartingAgility int `mapstructure:"starting_agility"`
	StartingMana    int `mapstructure:"starting_mana"`
	StartingGold    int `mapstructure:"starting_gold"`
	HPPerLevel      int `mapstructure:"hp_per_level"`
	AttackPerLevel  int `mapstructure:"attack_per_level"`
	AgilityPerLevel int `mapstructure:"agility_per_level"`
	XPPerLevel      int `mapstructure:"xp_per_level"`
}

// PathsConfig holds the data directories consumed at startup.
type PathsConfig struct {
	// AbilitiesDir is the directory holding ability definition YAML files.
	AbilitiesDir string `mapstructure:"abilities_dir"`
	// EnemiesDir is the directory holding enemy template YAML files.
	EnemiesDir string `mapstructure:"enemies_dir"`
	// ScriptsDir is the directory holding ability Lua hooks; empty disables scripting.
	ScriptsDir string `mapstructure:"scripts_dir"`
}

// DatabaseConfig holds PostgreSQL connection settings for the save-game store.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Combat   CombatConfig   `mapstructure:"combat"`
	Potions  PotionConfig   `mapstructure:"potions"`
	Player   PlayerConfig   `mapstructure:"player"`
	Paths    PathsConfig    `mapstructure:"paths"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing
// all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateCombat(c.Combat); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validatePotions(c.Potions); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validatePlayer(c.Player); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDatabase(c.Database); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateCombat(cc CombatConfig) error {
	var errs []string
	if cc.BaseEvasion < 0 || cc.BaseEvasion > 1 {
		errs = append(errs, fmt.Sprintf("combat.base_evasion must be in [0, 1], got %g", cc.BaseEvasion))
	}
	if cc.EvasionPerAgility < 0 {
		errs = append(errs, fmt.Sprintf("combat.evasion_per_agility must be >= 0, got %g", cc.EvasionPerAgility))
	}
	if cc.MaxEvasion < 0 || cc.MaxEvasion > 1 {
		errs = append(errs, fmt.Sprintf("combat.max_evasion must be in [0, 1], got %g", cc.MaxEvasion))
	}
	if cc.FleeChance < 0 || cc.FleeChance > 1 {
		errs = append(errs, fmt.Sprintf("combat.flee_chance must be in [0, 1], got %g", cc.FleeChance))
	}
	if cc.BossAbilityInterval < 1 {
		errs = append(errs, fmt.Sprintf("combat.boss_ability_interval must be >= 1, got %d", cc.BossAbilityInterval))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validatePotions(p PotionConfig) error {
	var errs []string
	if p.Small < 1 {
		errs = append(errs, fmt.Sprintf("potions.small must be >= 1, got %d", p.Small))
	}
	if p.Medium < p.Small {
		errs = append(errs, "potions.medium must not be weaker than potions.small")
	}
	if p.Strong < p.Medium {
		errs = append(errs, "potions.strong must not be weaker than potions.medium")
	}
	if p.Mana < 1 {
		errs = append(errs, fmt.Sprintf("potions.mana must be >= 1, got %d", p.Mana))
	}
	if p.ManaStrong < p.Mana {
		errs = append(errs, "potions.mana_strong must not be weaker than potions.mana")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validatePlayer(p PlayerConfig) error {
	var errs []string
	if p.StartingHP < 1 {
		errs = append(errs, fmt.Sprintf("player.starting_hp must be >= 1, got %d", p.StartingHP))
	}
	if p.StartingAttack < 1 {
		errs = append(errs, fmt.Sprintf("player.starting_attack must be >= 1, got %d", p.StartingAttack))
	}
	if p.StartingAgility < 0 {
		errs = append(errs, fmt.Sprintf("player.starting_agility must be >= 0, got %d", p.StartingAgility))
	}
	if p.XPPerLevel < 1 {
		errs = append(errs, fmt.Sprintf("player.xp_per_level must be >= 1, got %d", p.XPPerLevel))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with EMBERQUEST_ prefix
	v.SetEnvPrefix("EMBERQUEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration used when no config file is
// supplied. It always validates.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults are static and known-valid; Unmarshal cannot fail on them.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("combat.base_evasion", 0.1)
	v.SetDefault("combat.evasion_per_agility", 0.02)
	v.SetDefault("combat.max_evasion", 0.5)
	v.SetDefault("combat.flee_chance", 0.5)
	v.SetDefault("combat.boss_ability_interval", 3)

	v.SetDefault("potions.small", 12)
	v.SetDefault("potions.medium", 25)
	v.SetDefault("potions.strong", 50)
	v.SetDefault("potions.mana", 20)
	v.SetDefault("potions.mana_strong", 50)

	v.SetDefault("player.starting_hp", 30)
	v.SetDefault("player.starting_attack", 6)
	v.SetDefault("player.starting_agility", 5)
	v.SetDefault("player.starting_mana", 20)
	v.SetDefault("player.starting_gold", 0)
	v.SetDefault("player.hp_per_level", 6)
	v.SetDefault("player.attack_per_level", 2)
	v.SetDefault("player.agility_per_level", 1)
	v.SetDefault("player.xp_per_level", 12)

	v.SetDefault("paths.abilities_dir", "data/abilities")
	v.SetDefault("paths.enemies_dir", "data/enemies")
	v.SetDefault("paths.scripts_dir", "")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "emberquest")
	v.SetDefault("database.password", "emberquest")
	v.SetDefault("database.name", "emberquest")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
