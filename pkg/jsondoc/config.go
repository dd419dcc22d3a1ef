package jsondoc

import (
	"flag"

	"github.com/pkg/errors"
)

// Config is the configuration block for document serialization.
type Config struct {
	// Variant selects which candidate name of the key table is used.
	Variant int `yaml:"key_variant"`
	// OmitUnnamed drops properties whose key has no name in Variant
	// instead of falling back to another name.
	OmitUnnamed bool `yaml:"omit_unnamed"`
}

// RegisterFlags registers the flags for serialization with the default prefix.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.RegisterFlagsWithPrefix("jsondoc.", f)
}

// RegisterFlagsWithPrefix registers the flags for serialization with a prefix.
func (cfg *Config) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.IntVar(&cfg.Variant, prefix+"key-variant", 0, "Index of the naming variant used to resolve member names from the key table.")
	f.BoolVar(&cfg.OmitUnnamed, prefix+"omit-unnamed", false, "Skip properties whose key has no name in the selected variant instead of falling back to another name or the numeric key.")
}

// Validate validates the serialization settings.
func (cfg *Config) Validate() error {
	if cfg.Variant < 0 {
		return errors.Errorf("invalid key variant %d: must not be negative", cfg.Variant)
	}
	return nil
}
