package transfer

type PostCreation struct {
	Content           string `json:"content"`
	PlatformAccountID int64  `json:"platform_account_id"`
	ScheduledTime     string `json:"scheduled_time"` // RFC 3339
	PublishNow        bool   `json:"publish_now"`
}

// PostCreated is returned by post creation. Result is set only when the post
// was published immediately.
type PostCreated struct {
	PostID int64            `json:"post_id"`
	Status string           `json:"status"`
	Result *PublishResponse `json:"result,omitempty"`
}
