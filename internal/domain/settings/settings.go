// Package settings defines the application settings document. The sync
// core only owns the Sync section; the rest is persisted on behalf of the
// launcher UI.
package settings

// General holds launcher behavior settings.
type General struct {
	AutoLaunch bool `json:"autoLaunch"`
	// Hotkey is the global shortcut that summons the launcher. Empty means
	// no hotkey is registered.
	Hotkey string `json:"hotkey,omitempty"`
}

// Sync holds cloud sync settings: whether sync is enabled and when the
// last explicit bulk sync completed.
type Sync struct {
	Enabled  bool   `json:"enabled"`
	LastSync string `json:"lastSync,omitempty"`
}

// Appearance holds theme settings.
type Appearance struct {
	Theme       string `json:"theme"`
	AccentColor string `json:"accentColor"`
}

// Settings is the complete settings document stored as settings.json under
// the base data directory.
type Settings struct {
	General    General    `json:"general"`
	Sync       Sync       `json:"sync"`
	Appearance Appearance `json:"appearance"`
}

// Defaults returns the settings used when no settings document exists.
func Defaults() Settings {
	return Settings{
		General: General{
			Hotkey: "CommandOrControl+Shift+Space",
		},
		Appearance: Appearance{
			Theme:       "dark",
			AccentColor: "avocado",
		},
	}
}
