package dto

type CreateShareCardRequest struct {
	WalkID          uint    `json:"walk_id"`
	CardDate        string  `json:"card_date"`
	FrameThemeKey   string  `json:"frame_theme_key"`
	ImageKey        *string `json:"image_key"`
	DistanceMeters  *int    `json:"distance_meters"`
	StepCount       *int    `json:"step_count"`
	DurationSeconds *int    `json:"duration_seconds"`
}

type ShareCardResponse struct {
	ID              uint          `json:"id"`
	WalkID          uint          `json:"walk_id"`
	CardDate        string        `json:"card_date"`
	FrameThemeKey   string        `json:"frame_theme_key"`
	Image           PhotoResponse `json:"image"`
	DistanceMeters  *int          `json:"distance_meters"`
	StepCount       *int          `json:"step_count"`
	DurationSeconds *int          `json:"duration_seconds"`
	CreatedAt       string        `json:"created_at"`
}

type ShareCardListResponse struct {
	Items      []ShareCardResponse `json:"items"`
	TotalCount int                 `json:"total_count"`
}

type DailyWalkSummaryResponse struct {
	Date                 string `json:"date"`
	WalkCount            int    `json:"walk_count"`
	TotalDurationSeconds int    `json:"total_duration_seconds"`
	TotalDistanceMeters  int    `json:"total_distance_meters"`
	TotalStepCount       int    `json:"total_step_count"`
	GoalAchieved         bool   `json:"goal_achieved"`
	HasWalk10Min         bool   `json:"has_walk_10min"`
}

type DailyWalkSummaryListResponse struct {
	Items []DailyWalkSummaryResponse `json:"items"`
}
