package dto

type SubscriptionStatusResponse struct {
	Type                  string  `json:"type"`
	IsSubscribed          bool    `json:"is_subscribed"`
	IsTrial               bool    `json:"is_trial"`
	IsExpired             bool    `json:"is_expired"`
	HasUsedTrial          bool    `json:"has_used_trial"`
	HasEverSubscribed     bool    `json:"has_ever_subscribed"`
	SubscriptionExpiresAt *string `json:"subscription_expires_at"`
	TrialExpiresAt        *string `json:"trial_expires_at"`
	DaysLeft              int     `json:"days_left"`
}

type ActivateSubscriptionRequest struct {
	Platform      string `json:"platform"`
	TransactionID string `json:"transaction_id"`
	ExpiresAt     string `json:"expires_at"`
	AutoRenew     *bool  `json:"auto_renew"`
}

type SubscriptionActivatedResponse struct {
	Status                string  `json:"status"`
	SubscriptionExpiresAt *string `json:"subscription_expires_at"`
	DaysLeft              int     `json:"days_left"`
	HasEverSubscribed     bool    `json:"has_ever_subscribed"`
}

type SubscriptionCancelledResponse struct {
	Status    string  `json:"status"`
	ExpiresAt *string `json:"expires_at"`
}
