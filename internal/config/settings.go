package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/tunecatcher/tunecatcher/internal/model"
)

// Settings file name, stored beside the application executable
const SettingsFileName = "tunecatcher_config.json"

// Default values
const (
	DefaultVideoQuality     = "720p"
	DefaultCookieBrowser    = "none"
	DefaultAudioFormat      = "mp3"
	DefaultVideoFormat      = "mp4"
	DefaultPlaylistLimit    = "50"
	DefaultFilenamePreset   = "Title [ID]"
	DefaultCustomTemplate   = "%(title)s"
	DefaultSaveFolder       = "Downloads"
	SettingsFilePermissions = 0644
)

// Settings holds the complete application configuration, including the
// download history. The record is persisted as a whole after every
// mutation; unknown keys from the file are preserved across saves.
type Settings struct {
	Mode                   model.Mode    `json:"mode"`
	VideoQuality           string        `json:"video_quality"`
	CookieBrowser          string        `json:"cookie_browser"`
	AudioFormat            string        `json:"audio_format"`
	VideoFormat            string        `json:"video_format"`
	SavePath               string        `json:"save_path"`
	PlaylistLimit          string        `json:"playlist_limit"`
	FilenamePreset         string        `json:"filename_preset"`
	FilenameTemplateCustom string        `json:"filename_template_custom"`
	History                model.History `json:"history"`
}

// DefaultSettings returns the defaults merged under any persisted record
func DefaultSettings(baseDir string) Settings {
	return Settings{
		Mode:                   model.ModeAudio,
		VideoQuality:           DefaultVideoQuality,
		CookieBrowser:          DefaultCookieBrowser,
		AudioFormat:            DefaultAudioFormat,
		VideoFormat:            DefaultVideoFormat,
		SavePath:               filepath.Join(baseDir, DefaultSaveFolder),
		PlaylistLimit:          DefaultPlaylistLimit,
		FilenamePreset:         DefaultFilenamePreset,
		FilenameTemplateCustom: DefaultCustomTemplate,
		History:                model.History{},
	}
}

// Store owns the settings record. It is the single mutual-exclusion domain
// for all settings access: readers take snapshots, writers go through
// Update which applies the mutation and persists the whole record.
type Store struct {
	mu       sync.Mutex
	path     string
	settings Settings
	extra    map[string]json.RawMessage // unknown keys preserved on save
	logger   *zap.SugaredLogger
}

// NewStore creates a store backed by the given file path. A missing or
// malformed file falls back to defaults; load problems are logged, never
// fatal.
func NewStore(path string, logger *zap.SugaredLogger) *Store {
	s := &Store{
		path:     path,
		settings: DefaultSettings(filepath.Dir(path)),
		extra:    map[string]json.RawMessage{},
		logger:   logger,
	}
	s.load()
	return s
}

// DefaultPath returns the settings file path beside the executable,
// falling back to the working directory.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		return SettingsFileName
	}
	return filepath.Join(filepath.Dir(exe), SettingsFileName)
}

// Path returns the settings file path
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a copy of the current settings. The history slice is
// copied so callers can hold the snapshot across concurrent mutations.
func (s *Store) Snapshot() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copySettings()
}

// Update applies a mutation under the store lock, enforces the history
// bound, and persists the whole record. The in-memory state is updated
// even when the persist fails, so an unwritable disk degrades to settings
// not surviving a restart rather than blocking downloads.
func (s *Store) Update(mutate func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate(&s.settings)
	s.sanitize()
	return s.persist()
}

// RecordHistory inserts a completed download at the head of the history
// and persists. Called by the download orchestrator only.
func (s *Store) RecordHistory(item model.HistoryItem) error {
	return s.Update(func(settings *Settings) {
		settings.History.Record(item)
	})
}

// ClearHistory removes all history entries and persists. Confirmation is
// the caller's responsibility.
func (s *Store) ClearHistory() error {
	return s.Update(func(settings *Settings) {
		settings.History.Clear()
	})
}

func (s *Store) copySettings() Settings {
	snapshot := s.settings
	snapshot.History = make(model.History, len(s.settings.History))
	copy(snapshot.History, s.settings.History)
	return snapshot
}

// load reads the settings file, merging the persisted record over the
// defaults and keeping unknown keys for the next save.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warnw("failed to read settings file, using defaults", "path", s.path, "error", err)
		}
		return
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warnw("settings file is malformed, using defaults", "path", s.path, "error", err)
		return
	}

	if err := json.Unmarshal(data, &s.settings); err != nil {
		s.logger.Warnw("settings file has invalid fields, using defaults", "path", s.path, "error", err)
		s.settings = DefaultSettings(filepath.Dir(s.path))
		return
	}

	for _, key := range knownSettingsKeys() {
		delete(raw, key)
	}
	s.extra = raw

	s.sanitize()
}

// sanitize coerces invalid values back to defaults at the boundary instead
// of storing them.
func (s *Store) sanitize() {
	defaults := DefaultSettings(filepath.Dir(s.path))

	if !s.settings.Mode.IsValid() {
		s.settings.Mode = defaults.Mode
	}
	if !contains(VideoResolutions, s.settings.VideoQuality) {
		s.settings.VideoQuality = defaults.VideoQuality
	}
	if !contains(SupportedBrowsers, s.settings.CookieBrowser) {
		s.settings.CookieBrowser = defaults.CookieBrowser
	}
	if !contains(AudioFormats, s.settings.AudioFormat) {
		s.settings.AudioFormat = defaults.AudioFormat
	}
	if !contains(VideoFormats, s.settings.VideoFormat) {
		s.settings.VideoFormat = defaults.VideoFormat
	}
	if !ValidatePlaylistLimit(s.settings.PlaylistLimit) {
		s.settings.PlaylistLimit = defaults.PlaylistLimit
	}
	if _, ok := FilenamePresets[s.settings.FilenamePreset]; !ok && s.settings.FilenamePreset != FilenamePresetCustom {
		s.settings.FilenamePreset = defaults.FilenamePreset
	}
	if s.settings.SavePath == "" {
		s.settings.SavePath = defaults.SavePath
	}
	if s.settings.History == nil {
		s.settings.History = model.History{}
	}
	s.settings.History.Trim()
}

// persist writes the whole record, overlaying known fields onto any
// preserved unknown keys.
func (s *Store) persist() error {
	known, err := json.Marshal(s.settings)
	if err != nil {
		return model.WrapError(model.ErrPersistence, "failed to encode settings", err)
	}

	record := make(map[string]json.RawMessage, len(s.extra))
	for key, value := range s.extra {
		record[key] = value
	}

	var knownFields map[string]json.RawMessage
	if err := json.Unmarshal(known, &knownFields); err != nil {
		return model.WrapError(model.ErrPersistence, "failed to encode settings", err)
	}
	for key, value := range knownFields {
		record[key] = value
	}

	data, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return model.WrapError(model.ErrPersistence, "failed to encode settings", err)
	}

	if err := os.WriteFile(s.path, data, SettingsFilePermissions); err != nil {
		s.logger.Errorw("failed to save settings", "path", s.path, "error", err)
		return model.WrapError(model.ErrPersistence, "failed to save settings", err)
	}
	return nil
}

func knownSettingsKeys() []string {
	return []string{
		"mode", "video_quality", "cookie_browser", "audio_format",
		"video_format", "save_path", "playlist_limit", "filename_preset",
		"filename_template_custom", "history",
	}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
