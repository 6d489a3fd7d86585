package create_lead

// CreateLeadRequest HTTP request model контактной формы
type CreateLeadRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	Message   *string `json:"message,omitempty"`
	ServiceID *int64  `json:"serviceId,omitempty"`
}
