package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconPause    = "⏸"
	IconStop     = "⏹"
	IconPending  = "⏳"
	IconError    = "❌"
	IconFolder   = "📁"
	IconRecent   = "🕘"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Layout sizing
const (
	StatusLabelWidth  float32 = 96
	SpeedLabelWidth   float32 = 110
	ProgressBarWidth  float32 = 140
	RowMinWidth       float32 = 400
	RowMinHeight      float32 = 56
	SettingsDlgWidth  float32 = 520
	SettingsDlgHeight float32 = 480
	RecentDlgWidth    float32 = 560
	RecentDlgHeight   float32 = 360
)
