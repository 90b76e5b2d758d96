package transfer

import "encoding/json"

type PublishRequest struct {
	PlatformAccountID int64  `json:"platform_account_id"`
	Content           string `json:"content"`
	PostID            int64  `json:"post_id,omitempty"`
}

type PublishResponse struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
}
