package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"farmbot/config"
)

const ASCIIArt = `  ___                 ___      _
 | __|_ _ _ _ _ __   | _ ) ___| |_
 | _/ _' | '_| '  \  | _ \/ _ \  _|
 |_|\__,_|_| |_|_|_| |___/\___/\__|`

var Features = []string{
	"• Ask about crops, soil and seasons",
	"• Filter by soil, month, season, land and climate",
	"• Suitability scores as bar or radar charts",
}

func (a AppView) renderAboutModal(width, height int) string {
	var sb strings.Builder

	asciiStyle := lipgloss.NewStyle().
		Foreground(successColor).
		Bold(true).
		Align(lipgloss.Center)

	sb.WriteString(asciiStyle.Render(ASCIIArt))
	sb.WriteString("\n\n")

	featureStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	for _, feature := range Features {
		sb.WriteString(featureStyle.Render(feature))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	labelStyle := lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true)

	timeout := "none"
	if a.cfg.RequestTimeout > 0 {
		timeout = a.cfg.RequestTimeout.String()
	}

	rows := [][2]string{
		{"Version", a.version},
		{"Backend", a.cfg.BackendURL},
		{"Timeout", timeout},
		{"Replies", a.cfg.Renderer},
		{"Chart", string(a.ctrl.Renderer.Kind())},
		{"Settings", config.GetSettingsFilePath()},
	}
	if config.Debug {
		rows = append(rows, [2]string{"Debug log", filepath.Join(config.GetCacheDir(), "debug.log")})
	}
	for _, r := range rows {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", r[0]+":")))
		sb.WriteString(featureStyle.Render(r[1]))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(DimStyle.Render(fmt.Sprintf("Press Esc or %s to close", a.cfg.Keybindings.DisplayActionKey("about"))))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, boxStyle.Render(sb.String()))
}
