package store

import (
	"context"
	"log/slog"

	"github.com/joshsymonds/bucketwise/internal/model"
	"github.com/joshsymonds/bucketwise/internal/storage"
)

// SettingsPatch is a partial settings update; nil fields keep their current
// values.
type SettingsPatch struct {
	Currency           *string
	Locale             *string
	Rule               *model.Rule
	FirstDayOfWeek     *int
	ShowAdvancedCharts *bool
	HapticFeedback     *bool
}

// SaveSettings merges the patch over current settings and re-normalizes the
// result: FirstDayOfWeek collapses to 1 unless exactly 0 and the schema
// version is forced to the current one. The rule percentages are stored as
// given; keeping them summing to 100 is the collaborator's job.
func (s *Store) SaveSettings(ctx context.Context, patch SettingsPatch) (model.Settings, error) {
	s.mu.Lock()

	settings := s.state.Settings
	if patch.Currency != nil && *patch.Currency != "" {
		settings.Currency = *patch.Currency
	}
	if patch.Locale != nil && *patch.Locale != "" {
		settings.Locale = *patch.Locale
	}
	if patch.Rule != nil {
		settings.Rule = *patch.Rule
	}
	if patch.FirstDayOfWeek != nil {
		settings.FirstDayOfWeek = 1
		if *patch.FirstDayOfWeek == 0 {
			settings.FirstDayOfWeek = 0
		}
	}
	if patch.ShowAdvancedCharts != nil {
		settings.ShowAdvancedCharts = *patch.ShowAdvancedCharts
	}
	if patch.HapticFeedback != nil {
		settings.HapticFeedback = *patch.HapticFeedback
	}
	settings.SchemaVersion = model.CurrentSchemaVersion

	if err := s.persist(ctx, storage.KeySettings, settings); err != nil {
		s.mu.Unlock()
		return model.Settings{}, err
	}
	s.state.Settings = settings
	state := s.state.Clone()
	s.mu.Unlock()

	slog.Debug("saved settings")
	s.notify(state, model.Change{Type: model.ChangeSettings})
	return settings, nil
}
