package dto

type CreateWalkRequest struct {
	StartedAt       string  `json:"started_at"`
	EndedAt         string  `json:"ended_at"`
	DurationSeconds int     `json:"duration_seconds"`
	DistanceMeters  *int    `json:"distance_meters"`
	StepCount       *int    `json:"step_count"`
	PhotoKey        *string `json:"photo_key"`
}

type PhotoResponse struct {
	Key *string `json:"key"`
	URL *string `json:"url"`
}

type WalkResponse struct {
	ID              uint          `json:"id"`
	DistanceMeters  *int          `json:"distance_meters"`
	StepCount       *int          `json:"step_count"`
	DurationSeconds int           `json:"duration_seconds"`
	StartedAt       string        `json:"started_at"`
	EndedAt         string        `json:"ended_at"`
	Photo           PhotoResponse `json:"photo"`
	CreatedAt       string        `json:"created_at"`
	UpdatedAt       string        `json:"updated_at"`
}

type WalkListItem struct {
	ID              uint          `json:"id"`
	Date            string        `json:"date"`
	DistanceMeters  *int          `json:"distance_meters"`
	StepCount       *int          `json:"step_count"`
	DurationSeconds int           `json:"duration_seconds"`
	Photo           PhotoResponse `json:"photo"`
	CreatedAt       string        `json:"created_at"`
	UpdatedAt       string        `json:"updated_at"`
}

type WalkListResponse struct {
	Items      []WalkListItem `json:"items"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalCount int64          `json:"total_count"`
}

type PresignedURLRequest struct {
	ContentType string `json:"content_type"`
	UseCase     string `json:"use_case"`
}

type PresignedURLResponse struct {
	UploadURL string `json:"upload_url"`
	PhotoKey  string `json:"photo_key"`
	ExpiresIn int64  `json:"expires_in"`
}
