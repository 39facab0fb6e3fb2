package dto

import "tourbook/internal/domains/setting/model"

// ValidationTag bounds the keys and values of a batch update.
const ValidationTag = "required,min=1,dive,keys,required,max=100,endkeys,max=5000"

// SettingsResponse is the flattened key to value view of the settings table.
type SettingsResponse map[string]string

func FromModels(settings []model.Setting) SettingsResponse {
	res := make(SettingsResponse, len(settings))
	for _, setting := range settings {
		res[setting.Key] = setting.Value
	}

	return res
}

type UpdateSettingsRequest map[string]string

type UpdateSettingsResponse struct {
	Updated []string `json:"updated"`
	Skipped []string `json:"skipped,omitempty"`
}
