package cancel_shop_reservation

// CancelRequest HTTP request model, тело необязательно
type CancelRequest struct {
	Reason *string `json:"reason,omitempty"`
}
