package models

import (
	"time"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
)

// CreateRequest заявка из контактной формы
type CreateRequest struct {
	Slug      string
	Name      string
	Email     string
	Phone     *string
	Message   *string
	ServiceID *int64
}

// ListRequest запрос владельца на список заявок
type ListRequest struct {
	UserID int64
	ShopID int64
	Source *string
	Limit  uint64
	Offset uint64
}

// LeadResponse ответ с данными заявки
type LeadResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Message   *string   `json:"message,omitempty"`
	ServiceID *int64    `json:"serviceId,omitempty"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

// LeadListResponse ответ со списком заявок
type LeadListResponse struct {
	Leads []LeadResponse `json:"leads"`
}

// FromDomainLead конвертирует domain модель в DTO
func FromDomainLead(l *domain.Lead) *LeadResponse {
	if l == nil {
		return nil
	}
	return &LeadResponse{
		ID:        l.ID,
		Name:      l.Name,
		Email:     l.Email,
		Phone:     l.Phone,
		Message:   l.Message,
		ServiceID: l.ServiceID,
		Source:    string(l.Source),
		CreatedAt: l.CreatedAt,
	}
}

// FromDomainLeadList конвертирует список domain моделей в DTO
func FromDomainLeadList(leads []*domain.Lead) *LeadListResponse {
	resp := &LeadListResponse{Leads: make([]LeadResponse, 0, len(leads))}
	for _, l := range leads {
		if item := FromDomainLead(l); item != nil {
			resp.Leads = append(resp.Leads, *item)
		}
	}
	return resp
}
