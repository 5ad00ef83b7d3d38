package settings

import (
	"encoding/json"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	m "pfeifer.dev/scurve/math"
	"pfeifer.dev/scurve/params"
	"pfeifer.dev/scurve/scurve"
	"pfeifer.dev/scurve/utils"
)

var (
	Settings = ProfileSettings{}

	ErrUnknownSetting = errors.New("unknown setting")
	ErrInvalidSetting = errors.New("invalid setting value")
)

type ProfileSettings struct {
	Distance        float64 `json:"distance"`
	MaxVelocity     float64 `json:"max_velocity"`
	MaxAcceleration float64 `json:"max_acceleration"`
	MaxJerk         float64 `json:"max_jerk"`
	TimeStep        float64 `json:"dt"`
	LogLevel        string  `json:"log_level"`
	OutputDirectory string  `json:"output_directory"`
	PlotWidth       float64 `json:"plot_width"`
	PlotHeight      float64 `json:"plot_height"`
	BatchWorkers    int     `json:"batch_workers"`
}

func (s *ProfileSettings) Default() {
	s.Distance = DEFAULT_DISTANCE
	s.MaxVelocity = DEFAULT_MAX_VELOCITY
	s.MaxAcceleration = DEFAULT_MAX_ACCELERATION
	s.MaxJerk = DEFAULT_MAX_JERK
	s.TimeStep = DEFAULT_TIME_STEP
	s.LogLevel = "error"
	s.OutputDirectory = "."
	s.PlotWidth = DEFAULT_PLOT_WIDTH
	s.PlotHeight = DEFAULT_PLOT_HEIGHT
	s.BatchWorkers = DEFAULT_BATCH_WORKERS
}

// Recommended keeps the default move but samples ten times finer and logs warnings.
func (s *ProfileSettings) Recommended() {
	s.Default()
	s.TimeStep = DEFAULT_TIME_STEP / 10
	s.LogLevel = "warn"
	s.PlotWidth = 10
	s.PlotHeight = 12
}

func (s *ProfileSettings) Load() (success bool) {
	s.Default() // set defaults so settings not already in param are defaulted
	data, err := params.GetParam(params.PROFILE_SETTINGS)
	if err != nil {
		utils.Logde(err)
		s.setLogLevel()
		return false
	}

	err = json.Unmarshal(data, s)
	if err != nil {
		utils.Loge(errors.Wrap(err, "could not parse profile settings"))
		s.setLogLevel()
		return false
	}

	s.setLogLevel()

	return true
}

func (s *ProfileSettings) Save() error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not encode profile settings")
	}
	err = params.PutParam(params.PROFILE_SETTINGS, data)
	if err != nil {
		return errors.Wrap(err, "could not save profile settings")
	}
	return nil
}

// Keys lists the settable keys in the order they are shown.
func Keys() []string {
	return []string{
		"distance", "max_velocity", "max_acceleration", "max_jerk", "dt",
		"log_level", "output_directory", "plot_width", "plot_height", "batch_workers",
	}
}

// Get returns the value of key formatted for display.
func (s *ProfileSettings) Get(key string) (string, error) {
	switch key {
	case "distance":
		return formatFloat(s.Distance), nil
	case "max_velocity":
		return formatFloat(s.MaxVelocity), nil
	case "max_acceleration":
		return formatFloat(s.MaxAcceleration), nil
	case "max_jerk":
		return formatFloat(s.MaxJerk), nil
	case "dt":
		return formatFloat(s.TimeStep), nil
	case "log_level":
		return s.LogLevel, nil
	case "output_directory":
		return s.OutputDirectory, nil
	case "plot_width":
		return formatFloat(s.PlotWidth), nil
	case "plot_height":
		return formatFloat(s.PlotHeight), nil
	case "batch_workers":
		return strconv.Itoa(s.BatchWorkers), nil
	}
	return "", errors.Wrapf(ErrUnknownSetting, "%q", key)
}

// Set parses value and stores it under key. The settings are left unchanged on error.
func (s *ProfileSettings) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "distance":
		return setPositive(&s.Distance, key, value)
	case "max_velocity":
		return setPositive(&s.MaxVelocity, key, value)
	case "max_acceleration":
		return setPositive(&s.MaxAcceleration, key, value)
	case "max_jerk":
		return setPositive(&s.MaxJerk, key, value)
	case "dt":
		return setPositive(&s.TimeStep, key, value)
	case "plot_width":
		return setPositive(&s.PlotWidth, key, value)
	case "plot_height":
		return setPositive(&s.PlotHeight, key, value)
	case "log_level":
		level := strings.ToLower(value)
		if !slices.Contains(LogLevels, level) {
			return errors.Wrapf(ErrInvalidSetting, "log_level must be one of %s, got %q", strings.Join(LogLevels, ", "), value)
		}
		s.LogLevel = level
		s.setLogLevel()
		return nil
	case "output_directory":
		if value == "" {
			return errors.Wrap(ErrInvalidSetting, "output_directory must not be empty")
		}
		s.OutputDirectory = value
		return nil
	case "batch_workers":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return errors.Wrapf(ErrInvalidSetting, "batch_workers must be a positive integer, got %q", value)
		}
		s.BatchWorkers = n
		return nil
	}
	return errors.Wrapf(ErrUnknownSetting, "%q", key)
}

// Limits builds validated kinematic limits from the stored defaults.
func (s *ProfileSettings) Limits() (scurve.Limits, error) {
	return scurve.New(s.Distance, s.MaxVelocity, s.MaxAcceleration, s.MaxJerk)
}

func setPositive(dst *float64, key, value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || !m.Finite(v) || v <= 0 {
		return errors.Wrapf(ErrInvalidSetting, "%s must be a positive number, got %q", key, value)
	}
	*dst = v
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (s *ProfileSettings) setLogLevel() {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		slog.SetLogLoggerLevel(slog.LevelDebug)
	case "info":
		slog.SetLogLoggerLevel(slog.LevelInfo)
	case "warn":
		slog.SetLogLoggerLevel(slog.LevelWarn)
	case "error":
		slog.SetLogLoggerLevel(slog.LevelError)
	default:
		slog.SetLogLoggerLevel(slog.LevelError)
	}
}
