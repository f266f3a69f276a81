package svgbundle

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the environment-provided configuration shared by the commands.
type Config struct {
	Precision          int  `env:"SVGBUNDLE_PRECISION"            envDefault:"2"`
	BatchSize          int  `env:"SVGBUNDLE_BATCH_SIZE"           envDefault:"50"`
	StripIDs           bool `env:"SVGBUNDLE_STRIP_IDS"`
	DropViewBox        bool `env:"SVGBUNDLE_DROP_VIEWBOX"`
	DropNoopTransforms bool `env:"SVGBUNDLE_DROP_NOOP_TRANSFORMS" envDefault:"true"`
	DropEmptyGroups    bool `env:"SVGBUNDLE_DROP_EMPTY_GROUPS"    envDefault:"true"`
	Minify             bool `env:"SVGBUNDLE_MINIFY"`

	Format       string `env:"SVGBUNDLE_FORMAT"        envDefault:"js"`
	GlobalName   string `env:"SVGBUNDLE_GLOBAL_NAME"   envDefault:"ICON_DATA"`
	LookupName   string `env:"SVGBUNDLE_LOOKUP_NAME"   envDefault:"getIcon"`
	Package      string `env:"SVGBUNDLE_PACKAGE"       envDefault:"icons"`
	VarPrefix    string `env:"SVGBUNDLE_VAR_PREFIX"`
	SpritePrefix string `env:"SVGBUNDLE_SPRITE_PREFIX" envDefault:"e_"`

	LogLevel  string `env:"SVGBUNDLE_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"SVGBUNDLE_LOG_FORMAT" envDefault:"text"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := BundleMode(cfg.Format); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// OptimizeOptions returns the optimizer settings of cfg.
func (cfg Config) OptimizeOptions() OptimizeOptions {
	return OptimizeOptions{
		Precision:          cfg.Precision,
		StripIDs:           cfg.StripIDs,
		DropViewBox:        cfg.DropViewBox,
		DropNoopTransforms: cfg.DropNoopTransforms,
		DropEmptyGroups:    cfg.DropEmptyGroups,
		Minify:             cfg.Minify,
	}
}
