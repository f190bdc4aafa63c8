package intake

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config controls the tunable heuristics of the parsing pipeline. The
// thresholds are deliberately configuration, not constants: the boundary
// between "looks like a room" and "looks like a phone fragment" has no
// principled derivation and callers with unusual inputs (6-digit room codes,
// other numbering regions) adjust it here. Zero values are invalid; start
// from DefaultConfig.
type Config struct {
	// CountryCode is the dialing prefix applied during phone normalization,
	// including the leading '+'. Default: "+27".
	CountryCode string

	// TrunkPrefix is the national dialing prefix replaced by CountryCode
	// when a number of the expected length starts with it. Default: "0".
	TrunkPrefix string

	// NationalNumberLength is the significant-digit count of a national
	// number, excluding the trunk prefix. Default: 9.
	NationalNumberLength int

	// PhoneFragmentDigitThreshold rejects room candidates whose digit
	// content reaches this count, on the theory that they are stray phone
	// fragments. Default: 7.
	PhoneFragmentDigitThreshold int

	// RoomTokenMaxLength caps the alphanumeric length of a room identifier
	// token. Default: 4.
	RoomTokenMaxLength int

	// MinNameTokenLength is the minimum rune count for a token to qualify
	// as one word of a name. Default: 2.
	MinNameTokenLength int

	// NameWeight, PhoneWeight, and RoomWeight are the confidence
	// contributions of each recovered field; the sum is capped at 1.0.
	// Defaults: 0.5, 0.3, 0.2.
	NameWeight  float64
	PhoneWeight float64
	RoomWeight  float64

	// Workers bounds the parallel fan-out of ParseBatch. Values below 2
	// select the sequential path. Default: 0.
	Workers int
}

// DefaultConfig returns the settings the heuristics were tuned against:
// South African numbering (+27, trunk 0, 9 significant digits) and the
// original room/phone disambiguation thresholds.
func DefaultConfig() Config {
	return Config{
		CountryCode:                 "+27",
		TrunkPrefix:                 "0",
		NationalNumberLength:        9,
		PhoneFragmentDigitThreshold: 7,
		RoomTokenMaxLength:          4,
		MinNameTokenLength:          2,
		NameWeight:                  0.5,
		PhoneWeight:                 0.3,
		RoomWeight:                  0.2,
		Workers:                     0,
	}
}

// fileConfig is the yaml shape of a config file. Pointer fields distinguish
// "absent" from explicit zero values.
type fileConfig struct {
	CountryCode                 *string  `yaml:"country_code"`
	TrunkPrefix                 *string  `yaml:"trunk_prefix"`
	NationalNumberLength        *int     `yaml:"national_number_length"`
	PhoneFragmentDigitThreshold *int     `yaml:"phone_fragment_digit_threshold"`
	RoomTokenMaxLength          *int     `yaml:"room_token_max_length"`
	MinNameTokenLength          *int     `yaml:"min_name_token_length"`
	NameWeight                  *float64 `yaml:"name_weight"`
	PhoneWeight                 *float64 `yaml:"phone_weight"`
	RoomWeight                  *float64 `yaml:"room_weight"`
	Workers                     *int     `yaml:"workers"`
}

// LoadConfig resolves a Config from defaults, an optional yaml file, and
// INTAKE_* environment variables, in that order of precedence (env wins).
// A missing file is not an error; an unreadable or malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err != nil && os.IsNotExist(err):
			// No file: defaults plus env.
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			var fc fileConfig
			if err := yaml.Unmarshal(data, &fc); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
			fc.apply(&cfg)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (fc *fileConfig) apply(cfg *Config) {
	if fc.CountryCode != nil {
		cfg.CountryCode = strings.TrimSpace(*fc.CountryCode)
	}
	if fc.TrunkPrefix != nil {
		cfg.TrunkPrefix = strings.TrimSpace(*fc.TrunkPrefix)
	}
	if fc.NationalNumberLength != nil {
		cfg.NationalNumberLength = *fc.NationalNumberLength
	}
	if fc.PhoneFragmentDigitThreshold != nil {
		cfg.PhoneFragmentDigitThreshold = *fc.PhoneFragmentDigitThreshold
	}
	if fc.RoomTokenMaxLength != nil {
		cfg.RoomTokenMaxLength = *fc.RoomTokenMaxLength
	}
	if fc.MinNameTokenLength != nil {
		cfg.MinNameTokenLength = *fc.MinNameTokenLength
	}
	if fc.NameWeight != nil {
		cfg.NameWeight = *fc.NameWeight
	}
	if fc.PhoneWeight != nil {
		cfg.PhoneWeight = *fc.PhoneWeight
	}
	if fc.RoomWeight != nil {
		cfg.RoomWeight = *fc.RoomWeight
	}
	if fc.Workers != nil {
		cfg.Workers = *fc.Workers
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("INTAKE_COUNTRY_CODE"); v != "" {
		cfg.CountryCode = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv("INTAKE_TRUNK_PREFIX"); ok {
		cfg.TrunkPrefix = strings.TrimSpace(v)
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"INTAKE_NATIONAL_NUMBER_LENGTH", &cfg.NationalNumberLength},
		{"INTAKE_PHONE_FRAGMENT_DIGIT_THRESHOLD", &cfg.PhoneFragmentDigitThreshold},
		{"INTAKE_ROOM_TOKEN_MAX_LENGTH", &cfg.RoomTokenMaxLength},
		{"INTAKE_MIN_NAME_TOKEN_LENGTH", &cfg.MinNameTokenLength},
		{"INTAKE_WORKERS", &cfg.Workers},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", e.key, err)
		}
		*e.dst = n
	}
	return nil
}

func (c Config) validate() error {
	if len(c.CountryCode) < 2 || !strings.HasPrefix(c.CountryCode, "+") {
		return fmt.Errorf("country code must be '+' followed by digits, got %q", c.CountryCode)
	}
	if !allDigits(c.CountryCode[1:]) {
		return fmt.Errorf("country code must be '+' followed by digits, got %q", c.CountryCode)
	}
	if c.TrunkPrefix != "" && !allDigits(c.TrunkPrefix) {
		return fmt.Errorf("trunk prefix must be digits, got %q", c.TrunkPrefix)
	}
	if c.NationalNumberLength <= 0 {
		return fmt.Errorf("national number length must be positive, got %d", c.NationalNumberLength)
	}
	if c.PhoneFragmentDigitThreshold <= 0 {
		return fmt.Errorf("phone fragment digit threshold must be positive, got %d", c.PhoneFragmentDigitThreshold)
	}
	if c.RoomTokenMaxLength <= 0 {
		return fmt.Errorf("room token max length must be positive, got %d", c.RoomTokenMaxLength)
	}
	if c.MinNameTokenLength <= 0 {
		return fmt.Errorf("min name token length must be positive, got %d", c.MinNameTokenLength)
	}
	if c.NameWeight < 0 || c.PhoneWeight < 0 || c.RoomWeight < 0 {
		return fmt.Errorf("confidence weights must be non-negative, got %v/%v/%v",
			c.NameWeight, c.PhoneWeight, c.RoomWeight)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
