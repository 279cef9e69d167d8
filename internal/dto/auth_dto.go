package dto

const (
	VerifyStatusExists     = "EXISTS"
	VerifyStatusNeedSignup = "NEED_SIGNUP"
)

type SocialVerifyRequest struct {
	Provider   string `json:"provider"`
	ProviderID string `json:"provider_id"`
}

type SocialSignupRequest struct {
	Provider         string  `json:"provider"`
	ProviderID       string  `json:"provider_id"`
	Username         *string `json:"username"`
	Nickname         string  `json:"nickname"`
	ProfileImageCode *int    `json:"profile_image_code"`
}

type UserResponse struct {
	ID               uint    `json:"id"`
	Username         *string `json:"username"`
	Nickname         string  `json:"nickname"`
	ProfileImageCode *int    `json:"profile_image_code"`
	Provider         string  `json:"provider"`
	CreatedAt        string  `json:"created_at,omitempty"`
	UpdatedAt        string  `json:"updated_at,omitempty"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	// ExpiresIn is null for permanent tokens.
	ExpiresIn *int64 `json:"expires_in"`
}

type SocialVerifyResponse struct {
	Status   string         `json:"status"`
	Provider string         `json:"provider,omitempty"`
	User     *UserResponse  `json:"user,omitempty"`
	Token    *TokenResponse `json:"token,omitempty"`
}

type SocialSignupResponse struct {
	User  UserResponse  `json:"user"`
	Token TokenResponse `json:"token"`
}

type CheckIDResponse struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}
