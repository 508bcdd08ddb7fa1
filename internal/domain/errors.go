package domain

import "errors"

// Operational error categories surfaced to the user with a remediation hint.
var (
	// ErrWindowNotFound indicates the paint application window could not be
	// located on the current display.
	ErrWindowNotFound = errors.New("paint window not found")

	// ErrStaleCalibration indicates the active calibration profile was recorded
	// at a different screen resolution than the live one.
	ErrStaleCalibration = errors.New("calibration profile is stale")

	// ErrTargetNotCalibrated indicates a toolbar target required by a command
	// is missing from the active calibration profile.
	ErrTargetNotCalibrated = errors.New("target not present in calibration profile")

	// ErrNoAPIKey indicates no gateway API key was found in the config file,
	// the environment, or a .env file.
	ErrNoAPIKey = errors.New("gateway API key is not configured")
)
