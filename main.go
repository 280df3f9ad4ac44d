package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"sonar.klederson.com/internal/app"
	"sonar.klederson.com/internal/config"
	"sonar.klederson.com/internal/heading"
	"sonar.klederson.com/internal/logger"
	"sonar.klederson.com/internal/sonar"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:     "sonar",
	Short:   "Sonar - terminal compass with a rotating sweep",
	Version: config.AppVersion,
	Long: `Sonar draws a rotating sweep over a compass dial. Points light up when the
beam crosses them and fade out afterwards. The dial follows the device heading
fused from accelerometer and magnetometer samples.

Orientation comes from --demo (simulated), --sensor-feed (a file or pipe of
"acc x y z" / "mag x y z" lines) or both. Points come from --points,
--random-points and, with --ble, nearby Bluetooth devices.`,
	RunE: run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	s := config.DefaultSettings()
	flags := rootCmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sonar.yaml)")
	flags.BoolVar(&s.Demo, "demo", false, "simulate device orientation (no sensor required)")
	flags.StringVar(&s.SensorFeed, "sensor-feed", "", "file or pipe with raw sensor samples")
	flags.StringVar(&s.Mode, "mode", "plain", "display mode (plain, compass)")
	flags.StringVar(&s.Axis, "axis", "azimuth", "orientation axis driving the dial (azimuth, pitch, roll)")
	flags.DurationVar(&s.LoopDuration, "loop-duration", sonar.DefaultLoopDuration, "time for one sweep revolution")
	flags.DurationVar(&s.Lifetime, "lifetime", time.Duration(sonar.DefaultLifetime)*time.Millisecond,
		"how long a point stays visible after detection, negative never fades")
	flags.StringVar(&s.PointsFile, "points", "", "YAML file with static points")
	flags.IntVar(&s.RandomPoints, "random-points", 0, "number of random points to scatter")
	flags.BoolVar(&s.BLE, "ble", false, "show nearby BLE devices as points")
	flags.StringVar(&s.Adapter, "adapter", "hci0", "Bluetooth adapter to scan with (selectable on Linux only)")
	flags.StringVar(&s.LogLevel, "log-level", "info", "controls the log level (debug, info, warn, error)")
	flags.StringVar(&s.LogFormat, "log-format", "text", "controls the log output format (json, text)")
	flags.StringVar(&s.LogFile, "log-file", "", "if present logs are written to this file, otherwise discarded")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sonar")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Could not read config file: %v\n", err)
		}
	}

	bindFlags(rootCmd, viper.GetViper())
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --log-level to SONAR_LOG_LEVEL
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", strings.ToUpper(config.EnvPrefix), envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v\n", f.Name, err)
			}
		}
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not set flag value for %s: %v\n", f.Name, err)
			}
		}
	})
}

func run(cmd *cobra.Command, args []string) error {
	s := config.DefaultSettings()

	log, flush, err := logger.Setup(logger.Config{Level: s.LogLevel, Format: s.LogFormat, File: s.LogFile})
	if err != nil {
		return err
	}
	defer flush()

	engine, err := buildEngine(s, log)
	if err != nil {
		return err
	}

	model := app.New(app.Options{
		Logger:     log,
		Engine:     engine,
		Demo:       s.Demo,
		SensorFeed: s.SensorFeed,
		BLE:        s.BLE,
		Adapter:    s.Adapter,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS),
	)

	// Start sources with reference to the tea program
	if err := model.StartSources(p); err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
		if s.BLE {
			fmt.Fprintln(os.Stderr, "Bluetooth scanning requires elevated permissions.")
			fmt.Fprintln(os.Stderr, "Try one of:")
			fmt.Fprintln(os.Stderr, "  sudo ./sonar --ble")
			fmt.Fprintln(os.Stderr, "  sudo setcap cap_net_admin+ep ./sonar")
			fmt.Fprintln(os.Stderr, "  ./sonar --demo    (no hardware needed)")
		}
		return err
	}
	defer model.StopSources()

	_, err = p.Run()
	return err
}

func buildEngine(s *config.Settings, log *zap.Logger) (*sonar.Engine, error) {
	mode, err := sonar.ParseMode(s.Mode)
	if err != nil {
		return nil, err
	}
	axis, err := heading.ParseAxis(s.Axis)
	if err != nil {
		return nil, err
	}

	lifetimeMs := s.Lifetime.Milliseconds()
	if s.Lifetime < 0 {
		lifetimeMs = sonar.LifetimeInfinite
	}

	points := sonar.NewPointStore()
	if err := points.SetLiveLifetime(lifetimeMs); err != nil {
		return nil, err
	}
	if s.PointsFile != "" {
		loaded, err := config.LoadPoints(s.PointsFile, lifetimeMs)
		if err != nil {
			return nil, fmt.Errorf("load points: %w", err)
		}
		points.Add(loaded...)
	}
	if s.RandomPoints > 0 {
		random := sonar.RandomPoints(s.RandomPoints, rand.New(rand.NewSource(time.Now().UnixNano())))
		for _, p := range random {
			if err := p.SetLifetime(lifetimeMs); err != nil {
				return nil, err
			}
		}
		points.Add(random...)
	}

	tracker := heading.NewTracker(log.Named("heading"))
	tracker.SetAxis(axis)

	log.Info("sonar configured",
		zap.Stringer("mode", mode),
		zap.Stringer("axis", axis),
		zap.Duration("loop", s.LoopDuration),
		zap.Int64("lifetime_ms", lifetimeMs),
		zap.Int("points", points.Len()))

	return sonar.NewEngine(sonar.Config{
		Logger:  log.Named("sonar"),
		Tracker: tracker,
		Points:  points,
		Period:  s.LoopDuration,
		Mode:    mode,
	}), nil
}
