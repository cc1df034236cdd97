package pacman

// Settings are user preferences kept by the persistence collaborator.
// The simulation never reads them.
type Settings struct {
	Theme        string `json:"theme"` // "system", "light" or "dark"
	AmbientTheme bool   `json:"ambient_theme"`
	TiltInput    bool   `json:"tilt_input"`
	Difficulty   string `json:"difficulty"`
}

// DefaultSettings returns the settings used before anything is saved.
func DefaultSettings() Settings {
	return Settings{
		Theme:      "system",
		Difficulty: "normal",
	}
}

// PersistenceStore keeps the high score and settings between runs.
type PersistenceStore interface {
	HighScore() (int, error)
	SaveScore(score int) error
	Settings() (Settings, error)
	SaveSettings(s Settings) error
}

// Intent is a requested movement direction as a unit delta.
type Intent struct {
	DX, DY int
}

// InputSource produces direction intents, e.g. from a keyboard or tilt sensor.
type InputSource interface {
	Intents() <-chan Intent
}

// AmbientLightSource reports the ambient light level in lux.
// Only renderers consume it.
type AmbientLightSource interface {
	Lux() float64
}
