// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo carries build-time metadata injected by linker flags
// and surfaced in CLI version output.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo wraps the raw -ldflags values. Anything the build
// did not stamp is reported as "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNA(buildVersion),
		buildDate:    orNA(buildDate),
		buildCommit:  orNA(buildCommit),
	}
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

// BuildVersion reports the stamped semantic version.
func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

// BuildDate reports when the binary was built.
func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

// BuildCommit reports the commit the binary was built from.
func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}
