package http

import (
	"context"

	"github.com/gauravtib/mybankchecknext-sub001/internal/domain/model"
	"github.com/gauravtib/mybankchecknext-sub001/internal/domain/provider"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) GetBySubscriptionID(ctx context.Context, subscriptionID string) (*model.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) GetCurrentForCustomer(ctx context.Context, customerID string) (*model.Subscription, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Upsert(ctx context.Context, sub *model.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) MarkCanceled(ctx context.Context, subscriptionID string) error {
	args := m.Called(ctx, subscriptionID)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) ListByStatus(ctx context.Context, status model.SubscriptionStatus) ([]*model.Subscription, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Subscription), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Insert(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByCheckoutSessionID(ctx context.Context, checkoutSessionID string) (*model.Order, error) {
	args := m.Called(ctx, checkoutSessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]*model.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Order), args.Error(1)
}

type MockCustomerMappingRepository struct {
	mock.Mock
}

func (m *MockCustomerMappingRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.CustomerMapping, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerMapping), args.Error(1)
}

func (m *MockCustomerMappingRepository) GetByCustomerID(ctx context.Context, customerID string) (*model.CustomerMapping, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerMapping), args.Error(1)
}

func (m *MockCustomerMappingRepository) Save(ctx context.Context, mapping *model.CustomerMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockCustomerMappingRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCustomerMappingRepository) List(ctx context.Context) ([]*model.CustomerMapping, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CustomerMapping), args.Error(1)
}

type MockFraudReportRepository struct {
	mock.Mock
}

func (m *MockFraudReportRepository) GetByID(ctx context.Context, id int64) (*model.FraudReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FraudReport), args.Error(1)
}

func (m *MockFraudReportRepository) List(ctx context.Context) ([]*model.FraudReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.FraudReport), args.Error(1)
}

func (m *MockFraudReportRepository) Create(ctx context.Context, report *model.FraudReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockFraudReportRepository) Update(ctx context.Context, report *model.FraudReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockFraudReportRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBillingProvider struct {
	mock.Mock
}

func (m *MockBillingProvider) CreateCustomer(ctx context.Context, email string, userID string) (string, error) {
	args := m.Called(ctx, email, userID)
	return args.String(0), args.Error(1)
}

func (m *MockBillingProvider) CreateCheckoutSession(ctx context.Context, req *provider.CheckoutSessionRequest) (*provider.CheckoutSessionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.CheckoutSessionResult), args.Error(1)
}

func (m *MockBillingProvider) GetSubscription(ctx context.Context, subscriptionID string) (*provider.SubscriptionDetails, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.SubscriptionDetails), args.Error(1)
}

func (m *MockBillingProvider) GetPaymentMethod(ctx context.Context, paymentMethodID string) (*provider.PaymentMethodDetails, error) {
	args := m.Called(ctx, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.PaymentMethodDetails), args.Error(1)
}
