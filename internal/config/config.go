package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Addr      string    `koanf:"addr"`
	Database  Database  `koanf:"db"`
	Locations Locations `koanf:"locations"`
	Day       Day       `koanf:"day"`
	Walking   Walking   `koanf:"walking"`
	Scoring   Scoring   `koanf:"scoring"`
	Oracle    Oracle    `koanf:"oracle"`
}

type Database struct {
	// Driver is either "sqlite" or "postgres".
	Driver string `koanf:"driver"`
	// Path is the database file location, sqlite only.
	Path   string `koanf:"path"`
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Locations struct {
	// File is the campus locations dataset, loaded once at startup.
	File string `koanf:"file"`
}

// Day bounds the window in which free blocks are derived, in "HH:MM".
type Day struct {
	Start string `koanf:"start"`
	End   string `koanf:"end"`
}

type Walking struct {
	SpeedMph float64 `koanf:"speedmph"`
	// TerrainBuffer inflates walking estimates for stairs, crowds and
	// indirect paths. 1.2 means 20% extra.
	TerrainBuffer float64 `koanf:"terrainbuffer"`
}

// Scoring carries the commute ranking weights and thresholds. Lower final
// score means a better option. The suggestion rationale bands read from the
// same values, so a change here changes both ranking and wording.
type Scoring struct {
	SafetyBufferMin        int     `koanf:"safetybuffermin"`
	CommuteWeight          float64 `koanf:"commuteweight"`
	ImbalanceWeight        float64 `koanf:"imbalanceweight"`
	MinSpareMin            int     `koanf:"minsparemin"`
	MaxSpareMin            int     `koanf:"maxsparemin"`
	TightSparePenalty      float64 `koanf:"tightsparepenalty"`
	ExcessSpareWeight      float64 `koanf:"excessspareweight"`
	UtilizationSweetLow    float64 `koanf:"utilizationsweetlow"`
	UtilizationSweetHigh   float64 `koanf:"utilizationsweethigh"`
	SweetSpotBonus         float64 `koanf:"sweetspotbonus"`
	OverUtilizationPenalty float64 `koanf:"overutilizationpenalty"`
	UnderUtilizationWeight float64 `koanf:"underutilizationweight"`
	// CommuteExcellentMax and CommuteGoodMax band the rationale wording for
	// total commute minutes.
	CommuteExcellentMax int `koanf:"commuteexcellentmax"`
	CommuteGoodMax      int `koanf:"commutegoodmax"`
}

// Oracle configures the optional external suggestion service. When disabled
// or failing, ranking falls back to the deterministic optimizer.
type Oracle struct {
	Enabled    bool   `koanf:"enabled"`
	URL        string `koanf:"url"`
	APIKey     string `koanf:"apikey"`
	Model      string `koanf:"model"`
	TimeoutSec int    `koanf:"timeoutsec"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Addr: ":8080",
		Database: Database{
			Driver: "sqlite",
			Path:   "data/gapfit.db",
			Host:   "localhost",
			Port:   5432,
			User:   "gapfit",
			Name:   "gapfit",
			Schema: "gapfit",
		},
		Locations: Locations{
			File: "data/campus_locations.json",
		},
		Day: Day{
			Start: "08:00",
			End:   "18:00",
		},
		Walking: Walking{
			SpeedMph:      3.5,
			TerrainBuffer: 1.2,
		},
		Scoring: Scoring{
			SafetyBufferMin:        5,
			CommuteWeight:          2.0,
			ImbalanceWeight:        0.5,
			MinSpareMin:            5,
			MaxSpareMin:            20,
			TightSparePenalty:      20,
			ExcessSpareWeight:      0.3,
			UtilizationSweetLow:    0.70,
			UtilizationSweetHigh:   0.90,
			SweetSpotBonus:         -5,
			OverUtilizationPenalty: 10,
			UnderUtilizationWeight: 10,
			CommuteExcellentMax:    15,
			CommuteGoodMax:         25,
		},
		Oracle: Oracle{
			Enabled:    false,
			URL:        "https://api.deepseek.com",
			Model:      "deepseek-chat",
			TimeoutSec: 10,
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "GAPFIT_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "GAPFIT_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
