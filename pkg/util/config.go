package util

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the run configuration shared by the cli and the http server.
type Config struct {
	Input         string
	OutputGeoJSON string
	OutputGraph   string
	OutputReport  string

	Mode                 string
	Unit                 string
	Strict               bool
	BaseFallback         bool
	NameProperty         string
	TypeProperty         string
	LargestComponentOnly bool
	Workers              int

	HasStart bool
	StartLon float64
	StartLat float64

	APIPort        int
	APITimeout     time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64
}

func setDefaults() {
	viper.SetDefault("input", "./data/roads.geojson")
	viper.SetDefault("output_geojson", "./data/route.geojson")
	viper.SetDefault("output_graph", "./data/eulerized.graph")
	viper.SetDefault("output_report", "./data/report.json")
	viper.SetDefault("mode", "greedy-weighted")
	viper.SetDefault("unit", "miles")
	viper.SetDefault("strict", false)
	viper.SetDefault("base_fallback", true)
	viper.SetDefault("name_property", "name")
	viper.SetDefault("type_property", "highway")
	viper.SetDefault("largest_component_only", false)
	viper.SetDefault("workers", runtime.NumCPU())

	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "60s")
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("MAX_BODY_BYTES", 32<<20)
}

// ReadConfig loads the config file. with an empty path it looks for "config" in ./data/ and the working directory,
// and a missing file just leaves the defaults and POSTMANX_* env variables in effect.
func ReadConfig(path string) error {
	setDefaults()
	viper.SetEnvPrefix("POSTMANX")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./data/")
		viper.AddConfigPath(".")
	}

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

// LoadConfig snapshots the current viper state.
func LoadConfig() Config {
	cfg := Config{
		Input:         viper.GetString("input"),
		OutputGeoJSON: viper.GetString("output_geojson"),
		OutputGraph:   viper.GetString("output_graph"),
		OutputReport:  viper.GetString("output_report"),

		Mode:                 viper.GetString("mode"),
		Unit:                 viper.GetString("unit"),
		Strict:               viper.GetBool("strict"),
		BaseFallback:         viper.GetBool("base_fallback"),
		NameProperty:         viper.GetString("name_property"),
		TypeProperty:         viper.GetString("type_property"),
		LargestComponentOnly: viper.GetBool("largest_component_only"),
		Workers:              viper.GetInt("workers"),

		APIPort:        viper.GetInt("API_PORT"),
		APITimeout:     viper.GetDuration("API_TIMEOUT"),
		RateLimitRPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: viper.GetInt("RATE_LIMIT_BURST"),
		MaxBodyBytes:   viper.GetInt64("MAX_BODY_BYTES"),
	}
	if viper.IsSet("start_lon") && viper.IsSet("start_lat") {
		cfg.HasStart = true
		cfg.StartLon = viper.GetFloat64("start_lon")
		cfg.StartLat = viper.GetFloat64("start_lat")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg
}
