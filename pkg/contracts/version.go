package contracts

import (
	"fmt"
	"runtime"

	"volvedash/pkg/contracts/domain"
)

const (
	// Name is the product name shown in the dashboard title bar and /api/version
	Name = "Volve Production Dashboard"

	// Version is the current version of the application
	Version = "1.0.0"

	// VersionStage represents the current release stage
	VersionStage = "stable"

	// APIVersion versions the JSON shapes served under /api
	APIVersion = "v1"
)

// Set at build time with -ldflags "-X volvedash/pkg/contracts.BuildTime=..."
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionInfo describes the running build and the data contract it serves
type VersionInfo struct {
	Version      string   `json:"version"`
	Stage        string   `json:"stage"`
	BuildTime    string   `json:"build_time"`
	GitCommit    string   `json:"git_commit"`
	GoVersion    string   `json:"go_version"`
	OS           string   `json:"os"`
	Architecture string   `json:"architecture"`
	APIVersion   string   `json:"api_version"`
	Columns      []string `json:"columns"`
}

// GetVersionInfo returns detailed version information. Columns lists the
// short-coded columns every record exposes.
func GetVersionInfo() VersionInfo {
	columns := append([]string{domain.ColumnDate, domain.ColumnWell}, domain.VolumeColumns...)
	return VersionInfo{
		Version:      Version,
		Stage:        VersionStage,
		BuildTime:    BuildTime,
		GitCommit:    GitCommit,
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		APIVersion:   APIVersion,
		Columns:      append(columns, domain.ColumnYear),
	}
}

// GetVersionString returns the product name with its version
func GetVersionString() string {
	return fmt.Sprintf("%s v%s", Name, Version)
}
