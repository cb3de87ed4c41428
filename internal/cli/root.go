package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/smokyabdulrahman/salat/internal/config"
	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/logger"
)

// Global flags shared across all subcommands.
var (
	FlagPlace       string
	FlagLatitude    float64
	FlagLongitude   float64
	FlagElevation   float64
	FlagTimezone    string
	FlagMethod      string
	FlagAsr         string
	FlagHighLat     string
	FlagHijriAdjust int
	FlagJSON        bool
	FlagCacheDir    string
	FlagTimeFormat  string
	FlagLang        string
	FlagServer      string
	FlagVerbose     bool
)

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// log is the CLI's debug logger; silent unless --verbose.
var log = zap.NewNop()

// Swappable for tests.
var (
	clock          = time.Now
	detectLocation = geo.DetectLocation
)

// NewRootCmd creates the root command for the salat CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "salat",
		Short:   "Islamic prayer times and Hijri calendar",
		Long:    "Prayer times, Hijri dates and upcoming Islamic events, calculated locally from solar geometry.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log = logger.NewCLI(FlagVerbose)
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loadedConfig = cfg
			return nil
		},
		// Default action: show today's prayer schedule.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(PrintVersion(version))

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagPlace, "place", "", "Bundled district or division, e.g. Dhaka or Sylhet")
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Override latitude")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Override longitude")
	pf.Float64Var(&FlagElevation, "elevation", 0, "Elevation in metres")
	pf.StringVar(&FlagTimezone, "tz", "", "IANA zone or UTC offset in hours (default: the place's zone)")
	pf.StringVar(&FlagMethod, "method", "", "Calculation method ID, see 'salat methods'")
	pf.StringVar(&FlagAsr, "asr", "", "Asr juristic method: standard or hanafi")
	pf.StringVar(&FlagHighLat, "high-lat", "", "High-latitude rule: angle, middle, seventh or none")
	pf.IntVar(&FlagHijriAdjust, "hijri-adjust", 0, "Shift Hijri dates by -2..2 days")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagCacheDir, "cache-dir", "", "Cache directory (default: ~/.cache/salat/)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.StringVar(&FlagLang, "lang", "", "Output language: en, bn or ar")
	pf.StringVar(&FlagServer, "server", "", "Fetch from a salat API server instead of calculating locally")
	pf.BoolVarP(&FlagVerbose, "verbose", "v", false, "Debug logging to stderr")

	// Register subcommands.
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newHijriCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newPlacesCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// PrintVersion prints the version string in the expected format.
func PrintVersion(version string) string {
	return fmt.Sprintf("salat %s\n", version)
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > config (file and environment) > defaults.
// Flag values go through the same validation as `config set`.
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg config.Config
	if loadedConfig != nil {
		cfg = *loadedConfig
	}

	defaults := config.Defaults()

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	set := func(flag, key, value string) error {
		if !flagWasSet(flags, root, flag) {
			return nil
		}
		if err := cfg.Set(key, value); err != nil {
			return fmt.Errorf("--%s: %w", flag, err)
		}
		return nil
	}
	float := func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

	steps := []struct{ flag, key, value string }{
		{"place", "place", FlagPlace},
		{"latitude", "latitude", float(FlagLatitude)},
		{"longitude", "longitude", float(FlagLongitude)},
		{"elevation", "elevation", float(FlagElevation)},
		{"tz", "timezone", FlagTimezone},
		{"method", "method", FlagMethod},
		{"asr", "asr", FlagAsr},
		{"high-lat", "high_lat", FlagHighLat},
		{"hijri-adjust", "hijri_adjust", strconv.Itoa(FlagHijriAdjust)},
		{"time-format", "time_format", FlagTimeFormat},
		{"lang", "language", FlagLang},
		{"cache-dir", "cache_dir", FlagCacheDir},
	}
	for _, s := range steps {
		if err := set(s.flag, s.key, s.value); err != nil {
			return nil, err
		}
	}

	// An explicit place on the command line beats configured coordinates.
	if flagWasSet(flags, root, "place") && !flagWasSet(flags, root, "latitude") {
		cfg.Latitude, cfg.Longitude = nil, nil
	}

	if cfg.Method == "" {
		cfg.Method = defaults.Method
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = defaults.TimeFormat
	}
	if cfg.Language == "" {
		cfg.Language = defaults.Language
	}
	if cfg.HijriAdjust == nil {
		cfg.HijriAdjust = defaults.HijriAdjust
	}

	return &cfg, nil
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}
