package dto

type CreateFeedbackRequest struct {
	Content    string `json:"content"`
	DeviceType string `json:"device_type"`
	AppVersion string `json:"app_version"`
}

type FeedbackResponse struct {
	ID        uint   `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type FeedbackAuthor struct {
	ID       uint    `json:"id"`
	Username *string `json:"username"`
	Nickname string  `json:"nickname"`
}

type AdminFeedbackItem struct {
	ID         uint           `json:"id"`
	User       FeedbackAuthor `json:"user"`
	Content    string         `json:"content"`
	DeviceType string         `json:"device_type"`
	AppVersion string         `json:"app_version"`
	CreatedAt  string         `json:"created_at"`
}

type AdminFeedbackListResponse struct {
	Items      []AdminFeedbackItem `json:"items"`
	TotalCount int                 `json:"total_count"`
}
