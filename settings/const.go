package settings

const (
	DEFAULT_DISTANCE         = 1.0  // m
	DEFAULT_MAX_VELOCITY     = 0.5  // m/s
	DEFAULT_MAX_ACCELERATION = 1.0  // m/s²
	DEFAULT_MAX_JERK         = 2.0  // m/s³
	DEFAULT_TIME_STEP        = 0.01 // s
	DEFAULT_PLOT_WIDTH       = 8.0  // in
	DEFAULT_PLOT_HEIGHT      = 10.0 // in
	DEFAULT_BATCH_WORKERS    = 4
)

var LogLevels = []string{"debug", "info", "warn", "error"}
