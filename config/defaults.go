package config

func DefaultSettings() *Settings {
	return &Settings{
		Backend: BackendConfig{
			URL:     "http://localhost:5000",
			Timeout: "30s",
		},
		Chat: ChatConfig{
			Renderer: RendererFarmbot,
		},
		UI: UIConfig{
			Chart:        ChartBar,
			TipsInterval: "5s",
		},
	}
}

func GenerateSettingsTemplate() string {
	return `# FarmBot Configuration
# Location: ~/.config/farmbot/settings.toml
# This file uses TOML format: https://toml.io

[backend]
# Crop recommendation server (serves /api/options, /api/chat, /api/recommendations)
url = "http://localhost:5000"

# Per-request timeout (Go duration syntax: 500ms, 30s, 2m)
timeout = "30s"

[chat]
# How bot replies are displayed:
#   "farmbot"  - bold, bullets and line breaks only (matches the web widget)
#   "markdown" - full terminal markdown rendering
renderer = "farmbot"

[ui]
# Suitability chart style: "bar" or "radar"
chart = "bar"

# How long each farming tip stays on screen
tips_interval = "5s"
`
}
