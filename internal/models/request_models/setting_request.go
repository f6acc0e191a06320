package request_models

import "encoding/json"

type UpsertSettingRequest struct {
	Key         string          `json:"key" binding:"required"`
	Value       json.RawMessage `json:"value" binding:"required"`
	Type        string          `json:"type" binding:"omitempty,oneof=string number boolean json"`
	Description *string         `json:"description"`
}

type PageQuery struct {
	Page     int
	PageSize int
}
