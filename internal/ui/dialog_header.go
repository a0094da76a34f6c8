package ui

import (
	"fmt"

	"github.com/renato0307/maint/internal/services"
	"github.com/renato0307/maint/internal/theme"
	"github.com/renato0307/maint/internal/version"
)

// renderHeader creates the header used across the entire application: the
// app name with optional build info (in dev mode), the tagline, and the
// subtitle when one is given.
func renderHeader(devMode bool, subtitle string) string {
	appNameLine := theme.AppNameStyle.Render(services.AppTitle)
	if devMode {
		appNameLine += theme.VersionStyle.Render(fmt.Sprintf(" %s | %s | %s | %s",
			version.Version,
			version.ShortCommit(),
			version.Date,
			version.GoVersion))
	}

	result := appNameLine + "\n"
	result += theme.TaglineStyle.Render(version.Tagline)

	if subtitle != "" {
		result += "\n\n" + theme.SubtitleStyle.Render(subtitle)
	}

	result += "\n"
	return result
}

// renderDialogHeader creates the header for dialogs. Only Dialog calls it.
func renderDialogHeader(devMode bool, formTitle string) string {
	return renderHeader(devMode, formTitle)
}
