package storage

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
)

// Setting keys in the settings table.
const (
	KeyTheme        = "theme"
	KeyAmbientTheme = "ambient_theme"
	KeyTiltInput    = "tilt_input"
	KeyDifficulty   = "difficulty"
)

// SettingKeys lists every key LoadSettings understands.
var SettingKeys = []string{KeyTheme, KeyAmbientTheme, KeyTiltInput, KeyDifficulty}

// ScoreKeeper binds a Store to one game ID and tags every run it saves
// with a session ID. It satisfies pacman.PersistenceStore.
type ScoreKeeper struct {
	store   *Store
	gameID  string
	session string
	runs    int
}

var (
	_ pacman.PersistenceStore = (*ScoreKeeper)(nil)
	_ pacman.RunRecorder      = (*ScoreKeeper)(nil)
)

// Keeper returns a ScoreKeeper for gameID with a fresh session ID.
func (s *Store) Keeper(gameID string) *ScoreKeeper {
	return &ScoreKeeper{
		store:   s,
		gameID:  gameID,
		session: uuid.NewString(),
	}
}

// Session returns the session ID shared by this keeper's runs.
func (k *ScoreKeeper) Session() string {
	return k.session
}

// HighScore implements pacman.PersistenceStore.
func (k *ScoreKeeper) HighScore() (int, error) {
	return k.store.HighScore(k.gameID)
}

// SaveScore implements pacman.PersistenceStore.
func (k *ScoreKeeper) SaveScore(score int) error {
	return k.SaveRun(score, 0)
}

// SaveRun implements pacman.RunRecorder.
func (k *ScoreKeeper) SaveRun(score, dots int) error {
	k.runs++
	runID := fmt.Sprintf("%s/%d", k.session, k.runs)
	_, err := k.store.SaveRun(k.gameID, runID, score, dots)
	return err
}

// Settings implements pacman.PersistenceStore.
func (k *ScoreKeeper) Settings() (pacman.Settings, error) {
	return k.store.LoadSettings()
}

// SaveSettings implements pacman.PersistenceStore.
func (k *ScoreKeeper) SaveSettings(s pacman.Settings) error {
	return k.store.SaveSettings(s)
}

// LoadSettings reads the user settings, filling gaps with defaults.
func (s *Store) LoadSettings() (pacman.Settings, error) {
	out := pacman.DefaultSettings()
	all, err := s.AllSettings()
	if err != nil {
		return out, err
	}

	if v, ok := all[KeyTheme]; ok {
		out.Theme = v
	}
	if v, ok := all[KeyDifficulty]; ok {
		out.Difficulty = v
	}
	if v, ok := all[KeyAmbientTheme]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return out, fmt.Errorf("storage: bad %s value %q: %w", KeyAmbientTheme, v, err)
		}
		out.AmbientTheme = b
	}
	if v, ok := all[KeyTiltInput]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return out, fmt.Errorf("storage: bad %s value %q: %w", KeyTiltInput, v, err)
		}
		out.TiltInput = b
	}
	return out, nil
}

// SaveSettings writes every user setting.
func (s *Store) SaveSettings(st pacman.Settings) error {
	values := map[string]string{
		KeyTheme:        st.Theme,
		KeyAmbientTheme: strconv.FormatBool(st.AmbientTheme),
		KeyTiltInput:    strconv.FormatBool(st.TiltInput),
		KeyDifficulty:   st.Difficulty,
	}
	for _, key := range SettingKeys {
		if err := s.SetSetting(key, values[key]); err != nil {
			return err
		}
	}
	return nil
}

// ApplySetting validates and stores a single setting by key.
func (s *Store) ApplySetting(key, value string) error {
	switch key {
	case KeyTheme:
		switch value {
		case "system", "light", "dark":
		default:
			return fmt.Errorf("storage: theme must be system, light or dark, got %q", value)
		}
	case KeyAmbientTheme, KeyTiltInput:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("storage: %s must be true or false: %w", key, err)
		}
		value = strconv.FormatBool(b)
	case KeyDifficulty:
		switch value {
		case "easy", "normal", "hard", "fixed":
		default:
			return fmt.Errorf("storage: difficulty must be easy, normal, hard or fixed, got %q", value)
		}
	default:
		return fmt.Errorf("storage: unknown setting %q", key)
	}
	return s.SetSetting(key, value)
}
