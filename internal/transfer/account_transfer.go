package transfer

import "encoding/json"

type AccountConnection struct {
	Platform    string          `json:"platform"`
	AccountName string          `json:"account_name"`
	Credentials json.RawMessage `json:"credentials"`
}
