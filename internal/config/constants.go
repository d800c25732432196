package config

import (
	"time"

	"volvedash/pkg/contracts"
)

// Application constants
const (
	AppName = contracts.Name

	// EnvPrefix namespaces every environment variable, e.g. VOLVE_SERVER_PORT
	EnvPrefix = "VOLVE"

	DefaultDatasetPath = "volve_params.xlsx"
	DefaultImagePath   = "img/pozo.jpg"
	DefaultLogFile     = "logs/app.log"
	DefaultTitle       = "Volve Field Production History"

	DefaultPageSize       = 100
	MaxPageSize           = 1000
	MinChartDimension     = 200
	DefaultRequestTimeout = 30 * time.Second
)
