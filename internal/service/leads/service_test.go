package leads

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/catalog"
	shopRepo "github.com/m04kA/SMC-DetailingBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-DetailingBooking/internal/service/leads/models"
	"github.com/m04kA/SMC-DetailingBooking/pkg/logger"
	"github.com/m04kA/SMC-DetailingBooking/pkg/ptr"
)

type fakeLeads struct {
	created    []*domain.Lead
	lastFilter domain.LeadsFilter
}

func (f *fakeLeads) Create(_ context.Context, l *domain.Lead) (*domain.Lead, error) {
	l.ID = int64(len(f.created) + 1)
	f.created = append(f.created, l)
	return l, nil
}

func (f *fakeLeads) ListByShop(_ context.Context, filter domain.LeadsFilter) ([]*domain.Lead, error) {
	f.lastFilter = filter
	return f.created, nil
}

type fakeShops struct{}

var shops = map[int64]*domain.Shop{
	1: {ID: 1, OwnerID: 7, Slug: "shine", IsPublished: true},
	2: {ID: 2, OwnerID: 7, Slug: "draft"},
}

func (fakeShops) GetByID(_ context.Context, id int64) (*domain.Shop, error) {
	if s, ok := shops[id]; ok {
		return s, nil
	}
	return nil, shopRepo.ErrShopNotFound
}

func (fakeShops) GetBySlug(_ context.Context, slug string) (*domain.Shop, error) {
	for _, s := range shops {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, shopRepo.ErrShopNotFound
}

type fakeCatalog struct{}

func (fakeCatalog) GetService(_ context.Context, shopID, serviceID int64) (*domain.Service, error) {
	if shopID == 1 && serviceID == 5 {
		return &domain.Service{ID: 5, ShopID: 1}, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

type fakeMetrics struct{ sources []string }

func (m *fakeMetrics) LeadCreated(source string) { m.sources = append(m.sources, source) }

func newService() (*Service, *fakeLeads, *fakeMetrics) {
	repo := &fakeLeads{}
	m := &fakeMetrics{}
	return NewService(repo, fakeShops{}, fakeCatalog{}, m, logger.NewNop()), repo, m
}

func TestCreate(t *testing.T) {
	svc, repo, m := newService()

	resp, err := svc.Create(context.Background(), &models.CreateRequest{
		Slug:      "shine",
		Name:      " Jean Dupont ",
		Email:     "Jean@Example.fr",
		Phone:     ptr.Ptr("  "),
		Message:   ptr.Ptr(" Devis pour un SUV ? "),
		ServiceID: ptr.Ptr(int64(5)),
	})
	require.NoError(t, err)

	assert.Equal(t, "Jean Dupont", resp.Name)
	assert.Equal(t, "jean@example.fr", resp.Email)
	assert.Nil(t, resp.Phone)
	assert.Equal(t, "Devis pour un SUV ?", *resp.Message)
	assert.Equal(t, "contact_form", resp.Source)
	require.Len(t, repo.created, 1)
	assert.Equal(t, int64(1), repo.created[0].ShopID)
	assert.Equal(t, []string{"contact_form"}, m.sources)
}

func TestCreate_Errors(t *testing.T) {
	valid := func() models.CreateRequest {
		return models.CreateRequest{Slug: "shine", Name: "Jean", Email: "jean@example.fr"}
	}

	tests := []struct {
		name    string
		mutate  func(r *models.CreateRequest)
		wantErr error
	}{
		{name: "unpublished shop", mutate: func(r *models.CreateRequest) { r.Slug = "draft" }, wantErr: ErrShopNotFound},
		{name: "unknown shop", mutate: func(r *models.CreateRequest) { r.Slug = "nowhere" }, wantErr: ErrShopNotFound},
		{name: "foreign service", mutate: func(r *models.CreateRequest) { r.ServiceID = ptr.Ptr(int64(6)) }, wantErr: ErrServiceNotFound},
		{name: "short name", mutate: func(r *models.CreateRequest) { r.Name = "J" }, wantErr: ErrInvalidInput},
		{name: "bad email", mutate: func(r *models.CreateRequest) { r.Email = "jean" }, wantErr: ErrInvalidInput},
		{name: "bad phone", mutate: func(r *models.CreateRequest) { r.Phone = ptr.Ptr("call me") }, wantErr: ErrInvalidInput},
		{
			name:    "long message",
			mutate:  func(r *models.CreateRequest) { r.Message = ptr.Ptr(strings.Repeat("я", domain.MaxLeadMessageLength+1)) },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, m := newService()
			req := valid()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), &req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.created)
			assert.Empty(t, m.sources)
		})
	}
}

func TestListForShop(t *testing.T) {
	svc, repo, _ := newService()

	resp, err := svc.ListForShop(context.Background(), &models.ListRequest{UserID: 7, ShopID: 1, Source: ptr.Ptr("booking_flow")})
	require.NoError(t, err)
	assert.Empty(t, resp.Leads)
	assert.Equal(t, uint64(defaultListLimit), repo.lastFilter.Limit)
	assert.Equal(t, domain.LeadSourceBookingFlow, *repo.lastFilter.Source)

	_, err = svc.ListForShop(context.Background(), &models.ListRequest{UserID: 8, ShopID: 1})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.ListForShop(context.Background(), &models.ListRequest{UserID: 7, ShopID: 1, Source: ptr.Ptr("fax")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ListForShop(context.Background(), &models.ListRequest{UserID: 7, ShopID: 404})
	assert.ErrorIs(t, err, ErrShopNotFound)
}
