package dto

// SubscriptionWebhook is the payment provider's event envelope.
type SubscriptionWebhook struct {
	Event SubscriptionEvent `json:"event"`
}

type SubscriptionEvent struct {
	Type           string `json:"type"`
	AppUserID      string `json:"app_user_id"`
	ProductID      string `json:"product_id"`
	PurchasedAtMs  int64  `json:"purchased_at_ms"`
	ExpirationAtMs int64  `json:"expiration_at_ms"`
}
