package service

import (
	"context"
	"time"

	"github.com/pixelnest/studio-server/models"

	"github.com/stretchr/testify/mock"
)

// MockCustomerStore
type MockCustomerStore struct {
	mock.Mock
}

func (m *MockCustomerStore) FindByID(ctx context.Context, id string) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerStore) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerStore) FindByInviteToken(ctx context.Context, token string) (*models.Customer, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerStore) Insert(ctx context.Context, customer *models.Customer) (string, error) {
	args := m.Called(ctx, customer)
	return args.String(0), args.Error(1)
}

func (m *MockCustomerStore) SetInvite(ctx context.Context, id, token string, expiry time.Time) error {
	args := m.Called(ctx, id, token, expiry)
	return args.Error(0)
}

func (m *MockCustomerStore) ConsumeInvite(ctx context.Context, token string, now time.Time, passwordHash string) (*models.Customer, error) {
	args := m.Called(ctx, token, now, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerStore) SetPassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockCustomerStore) SetStripeCustomerID(ctx context.Context, id, stripeID string) error {
	args := m.Called(ctx, id, stripeID)
	return args.Error(0)
}

func (m *MockCustomerStore) CountOutstandingInvites(ctx context.Context, now time.Time) (int64, int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockLeadStore
type MockLeadStore struct {
	mock.Mock
}

func (m *MockLeadStore) List(ctx context.Context, status string) ([]models.Lead, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lead), args.Error(1)
}

func (m *MockLeadStore) FindByID(ctx context.Context, id string) (*models.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *MockLeadStore) Update(ctx context.Context, id string, fields map[string]interface{}) (bool, error) {
	args := m.Called(ctx, id, fields)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadStore) DeleteIfNotConverted(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockProjectStore
type MockProjectStore struct {
	mock.Mock
}

func (m *MockProjectStore) FindByID(ctx context.Context, id string) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectStore) ListOutstanding(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

// MockSubscriptionStore
type MockSubscriptionStore struct {
	mock.Mock
}

func (m *MockSubscriptionStore) ListByStatus(ctx context.Context, status models.SubscriptionStatus) ([]models.RecurringSubscription, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RecurringSubscription), args.Error(1)
}

// MockBillingAPI
type MockBillingAPI struct {
	mock.Mock
}

func (m *MockBillingAPI) CreateCustomer(ctx context.Context, name, email string) (string, error) {
	args := m.Called(ctx, name, email)
	return args.String(0), args.Error(1)
}

func (m *MockBillingAPI) CreatePortalSession(ctx context.Context, providerCustomerID, returnURL string) (string, error) {
	args := m.Called(ctx, providerCustomerID, returnURL)
	return args.String(0), args.Error(1)
}

func (m *MockBillingAPI) ListActiveProducts(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockBillingAPI) ListActivePrices(ctx context.Context) ([]providerPrice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]providerPrice), args.Error(1)
}

// MockFeedbackStore
type MockFeedbackStore struct {
	mock.Mock
}

func (m *MockFeedbackStore) Upsert(ctx context.Context, updateID, customerID string, liked *bool, comment string) (*models.ProjectUpdateFeedback, error) {
	args := m.Called(ctx, updateID, customerID, liked, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectUpdateFeedback), args.Error(1)
}

func (m *MockFeedbackStore) EnsureRecord(ctx context.Context, updateID, customerID string, createdAt time.Time) error {
	args := m.Called(ctx, updateID, customerID, createdAt)
	return args.Error(0)
}

func (m *MockFeedbackStore) SetViewedIfUnset(ctx context.Context, updateID, customerID string, viewedAt time.Time) (bool, error) {
	args := m.Called(ctx, updateID, customerID, viewedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockFeedbackStore) SetReply(ctx context.Context, feedbackID, reply string) (*models.ProjectUpdateFeedback, error) {
	args := m.Called(ctx, feedbackID, reply)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectUpdateFeedback), args.Error(1)
}

func (m *MockFeedbackStore) ListByUpdate(ctx context.Context, updateID string) ([]models.ProjectUpdateFeedback, error) {
	args := m.Called(ctx, updateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProjectUpdateFeedback), args.Error(1)
}

// MockMailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendInvite(to, name, link string) error {
	args := m.Called(to, name, link)
	return args.Error(0)
}
