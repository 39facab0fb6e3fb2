package model

import "tourbook/shared/model"

const (
	TableName  = "settings"
	EntityName = "setting"

	FieldID    = "id"
	FieldKey   = "setting_key"
	FieldValue = "setting_value"
)

type Setting struct {
	ID    string `db:"id"`
	Key   string `db:"setting_key"`
	Value string `db:"setting_value"`
	model.Metadata
}
