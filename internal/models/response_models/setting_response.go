package response_models

type SettingResponse struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Value       any    `json:"value"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	UpdatedAt   string `json:"updatedAt"`
}

type EmailLogResponse struct {
	ID                string `json:"id"`
	To                string `json:"to"`
	From              string `json:"from"`
	Subject           string `json:"subject"`
	Type              string `json:"type"`
	Status            string `json:"status"`
	Provider          string `json:"provider"`
	ProviderMessageID string `json:"providerMessageId,omitempty"`
	Error             string `json:"error,omitempty"`
	CreatedAt         string `json:"createdAt"`
}

type Page[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}
