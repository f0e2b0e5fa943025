package usecases

import (
	"context"

	"github.com/MV-Clouds/quickform-payments/internal/application/formpayment/gateway"
	"github.com/MV-Clouds/quickform-payments/internal/domain/formpayment"
	"github.com/MV-Clouds/quickform-payments/internal/shared/logger"
)

type mockPlanRegistry struct {
	GetFunc            func(ctx context.Context, fieldID, merchantID string) (*formpayment.RegistryEntry, error)
	SetFunc            func(ctx context.Context, entry *formpayment.RegistryEntry) error
	DeleteFunc         func(ctx context.Context, fieldID, merchantID string) (bool, error)
	ListByMerchantFunc func(ctx context.Context, merchantID string) ([]*formpayment.RegistryEntry, error)

	SetCalls []*formpayment.RegistryEntry
}

func (m *mockPlanRegistry) Get(ctx context.Context, fieldID, merchantID string) (*formpayment.RegistryEntry, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, fieldID, merchantID)
	}
	return nil, nil
}

func (m *mockPlanRegistry) Set(ctx context.Context, entry *formpayment.RegistryEntry) error {
	m.SetCalls = append(m.SetCalls, entry)
	if m.SetFunc != nil {
		return m.SetFunc(ctx, entry)
	}
	return nil
}

func (m *mockPlanRegistry) Delete(ctx context.Context, fieldID, merchantID string) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, fieldID, merchantID)
	}
	return false, nil
}

func (m *mockPlanRegistry) ListByMerchant(ctx context.Context, merchantID string) ([]*formpayment.RegistryEntry, error) {
	if m.ListByMerchantFunc != nil {
		return m.ListByMerchantFunc(ctx, merchantID)
	}
	return nil, nil
}

type mockProviderGateway struct {
	CreateSubscriptionPlanFunc func(ctx context.Context, req gateway.CreatePlanRequest) (*gateway.CreatePlanResponse, error)
	UpdateSubscriptionPlanFunc func(ctx context.Context, req gateway.UpdatePlanRequest) (*gateway.UpdatePlanResponse, error)
	CreateDonationPlanFunc     func(ctx context.Context, req gateway.CreateDonationRequest) (*gateway.CreateDonationResponse, error)

	CreateCalls []gateway.CreatePlanRequest
	UpdateCalls []gateway.UpdatePlanRequest
}

func (m *mockProviderGateway) CreateSubscriptionPlan(ctx context.Context, req gateway.CreatePlanRequest) (*gateway.CreatePlanResponse, error) {
	m.CreateCalls = append(m.CreateCalls, req)
	if m.CreateSubscriptionPlanFunc != nil {
		return m.CreateSubscriptionPlanFunc(ctx, req)
	}
	return &gateway.CreatePlanResponse{PlanID: "P-NEW", ProductID: "PROD-NEW", Status: "ACTIVE"}, nil
}

func (m *mockProviderGateway) UpdateSubscriptionPlan(ctx context.Context, req gateway.UpdatePlanRequest) (*gateway.UpdatePlanResponse, error) {
	m.UpdateCalls = append(m.UpdateCalls, req)
	if m.UpdateSubscriptionPlanFunc != nil {
		return m.UpdateSubscriptionPlanFunc(ctx, req)
	}
	return &gateway.UpdatePlanResponse{Status: "ACTIVE"}, nil
}

func (m *mockProviderGateway) CreateDonationPlan(ctx context.Context, req gateway.CreateDonationRequest) (*gateway.CreateDonationResponse, error) {
	if m.CreateDonationPlanFunc != nil {
		return m.CreateDonationPlanFunc(ctx, req)
	}
	return &gateway.CreateDonationResponse{DonationPlanID: "D-NEW", Status: "ACTIVE"}, nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                  {}
func (m *mockLogger) Info(msg string, args ...any)                   {}
func (m *mockLogger) Warn(msg string, args ...any)                   {}
func (m *mockLogger) Error(msg string, args ...any)                  {}
func (m *mockLogger) Fatal(msg string, args ...any)                  {}
func (m *mockLogger) With(args ...any) logger.Interface              { return m }
func (m *mockLogger) Named(name string) logger.Interface             { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {}
