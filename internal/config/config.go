// Package config loads the read-only settings value that governs the
// dealiasing and superobing stages. It replaces the teacher's env-var-only
// Config with a TOML file (plus env overrides for deployment knobs),
// following the pattern spatialmodel-inmap uses github.com/BurntSushi/toml
// for its own run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Settings holds every setting enumerated in the specification's external
// interfaces table. It is constructed once at startup by Load and passed by
// pointer into the driver and both stages; no stage may mutate it.
type Settings struct {
	Dealiasing bool `toml:"dealiasing"`
	Superobing bool `toml:"superobing"`

	// Dealiasing (§4.3-§4.5).
	ZSectorSize   float64 `toml:"z_sector_size"`
	ZMax          float64 `toml:"z_max"`
	MinGoodPoints int     `toml:"min_good_points"`
	MaxWind       float64 `toml:"max_wind"`

	// Superobing (§4.6-§4.9).
	RangeBinFactor int     `toml:"range_bin_factor"`
	RayAngleFactor int     `toml:"ray_angle_factor"`
	MaxArcSize     float64 `toml:"max_arc_size"`
	MinQuality     float64 `toml:"min_quality"`
	DbzClearsky    float64 `toml:"dbz_clearsky"`
	DbzPercentage  float64 `toml:"dbz_percentage"`
	VradPercentage float64 `toml:"vrad_percentage"`
	VradMaxStd     float64 `toml:"vrad_max_std"`

	// BugCompatMode reproduces the legacy VRAD-variance accumulator bug
	// documented in spec.md §9 (accumulates the loop index instead of the
	// measurement). Off by default; exists only for byte-for-byte
	// comparison against historical HOOF output.
	BugCompatMode bool `toml:"bug_compat_mode"`

	// Ambient service settings.
	KafkaBrokers      []string `toml:"kafka_brokers"`
	KafkaSummaryTopic string   `toml:"kafka_summary_topic"`
	HTTPAddr          string   `toml:"http_addr"`
	LogLevel          string   `toml:"log_level"`
	LogFormat         string   `toml:"log_format"`
}

// Defaults returns Settings with the values the original HOOF namelist
// shipped as defaults for a typical OPERA deployment.
func Defaults() Settings {
	return Settings{
		Dealiasing:        true,
		Superobing:        true,
		ZSectorSize:       500.0,
		ZMax:              10000.0,
		MinGoodPoints:     50,
		MaxWind:           50.0,
		RangeBinFactor:    4,
		RayAngleFactor:    3,
		MaxArcSize:        2000.0,
		MinQuality:        0.5,
		DbzClearsky:       0.0,
		DbzPercentage:     0.5,
		VradPercentage:    0.5,
		VradMaxStd:        2.0,
		BugCompatMode:     false,
		KafkaBrokers:      []string{"localhost:9092"},
		KafkaSummaryTopic: "accord-processing-summary",
		HTTPAddr:          ":8080",
		LogLevel:          "info",
		LogFormat:         "json",
	}
}

// Load reads Settings from a TOML file, filling unset fields with
// Defaults, then applies environment-variable overrides for the
// deployment knobs the teacher also externalizes (log level/format, HTTP
// address, Kafka brokers). Required numerical settings are validated the
// way the teacher's config.Load validates required Kafka settings.
func Load(path string) (*Settings, error) {
	s := Defaults()
	if path != "" {
		if _, err := toml.DecodeFile(path, &s); err != nil {
			return nil, fmt.Errorf("load settings from %s: %w", path, err)
		}
	}

	applyEnvOverrides(&s)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that settings which gate arithmetic (denominators,
// thresholds) are well-formed, so stages never need to guard against
// nonsensical configuration mid-computation.
func (s *Settings) Validate() error {
	if len(s.KafkaBrokers) == 0 {
		return errors.New("kafka_brokers is required")
	}
	if s.Dealiasing {
		if s.ZSectorSize <= 0 {
			return errors.New("z_sector_size must be > 0")
		}
		if s.MinGoodPoints < 1 {
			return errors.New("min_good_points must be >= 1")
		}
		if s.MaxWind <= 0 {
			return errors.New("max_wind must be > 0")
		}
	}
	if s.Superobing {
		if s.RangeBinFactor < 1 {
			return errors.New("range_bin_factor must be >= 1")
		}
		if s.RayAngleFactor < 1 {
			return errors.New("ray_angle_factor must be >= 1")
		}
		if s.MaxArcSize <= 0 {
			return errors.New("max_arc_size must be > 0")
		}
	}
	return nil
}

func applyEnvOverrides(s *Settings) {
	if v := os.Getenv("ACCORD_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv("ACCORD_LOG_FORMAT"); v != "" {
		s.LogFormat = v
	}
	if v := os.Getenv("ACCORD_HTTP_ADDR"); v != "" {
		s.HTTPAddr = v
	}
	if v := os.Getenv("ACCORD_KAFKA_BROKERS"); v != "" {
		s.KafkaBrokers = strings.Split(v, ",")
	}
	if v := os.Getenv("ACCORD_KAFKA_SUMMARY_TOPIC"); v != "" {
		s.KafkaSummaryTopic = v
	}
	if v := os.Getenv("ACCORD_DEALIASING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Dealiasing = b
		}
	}
	if v := os.Getenv("ACCORD_SUPEROBING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Superobing = b
		}
	}
}
