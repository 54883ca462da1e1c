package payment

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"deepguard/internal/models"
)

// Plan prices in the smallest currency unit per billing period.
var planPrices = map[models.Plan]int64{
	models.PlanStarter:      500000,
	models.PlanProfessional: 2500000,
}

// Gateway is the client surface the service depends on.
type Gateway interface {
	Initialize(ctx context.Context, email string, amount int64, reference string) (*InitResult, error)
	Verify(ctx context.Context, reference string) (*VerifyResult, error)
}

// Store is the persistence the service depends on. *repository.Payments
// satisfies it.
type Store interface {
	CreateTransaction(ctx context.Context, tx *models.PaymentTransaction) error
	GetTransaction(ctx context.Context, reference string) (*models.PaymentTransaction, error)
	SettleTransaction(ctx context.Context, reference, status string, gatewayResponse models.JSONMap) error
	UpsertPlan(ctx context.Context, userID uint, plan models.Plan) (*models.UserPlan, error)
}

// Service runs the checkout flow: initialize at the gateway, record the
// pending transaction, then verify and activate the plan.
type Service struct {
	gateway Gateway
	store   Store
}

func NewService(gateway Gateway, store Store) *Service {
	return &Service{gateway: gateway, store: store}
}

// Initialize starts checkout for a paid plan. The transaction is recorded
// locally as pending before the caller is redirected, so verification can
// later match the reference against what was actually offered.
func (s *Service) Initialize(ctx context.Context, userID uint, req models.InitializePaymentRequest) (*models.InitializePaymentResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", models.ErrValidation)
	}
	price, ok := planPrices[req.Plan]
	if !ok {
		return nil, fmt.Errorf("%w: plan %q is not purchasable", models.ErrValidation, req.Plan)
	}
	// The gateway charges what we quote. Client-supplied amounts are only
	// accepted when they match the plan price.
	if req.Amount != 0 && req.Amount != price {
		return nil, fmt.Errorf("%w: amount does not match plan price", models.ErrValidation)
	}

	reference := "dg-" + uuid.NewString()
	result, err := s.gateway.Initialize(ctx, email, price, reference)
	if err != nil {
		return nil, err
	}

	tx := &models.PaymentTransaction{
		UserID:     userID,
		Reference:  result.Reference,
		Email:      email,
		AmountKobo: price,
		Plan:       req.Plan,
		Status:     "pending",
	}
	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		// The gateway transaction exists but we lost track of it. Surface
		// the persistence failure; verification by reference can recover.
		return nil, fmt.Errorf("%w: recording transaction: %v", models.ErrPersistence, err)
	}

	return &models.InitializePaymentResponse{
		AuthorizationURL: result.AuthorizationURL,
		AccessCode:       result.AccessCode,
		Reference:        result.Reference,
	}, nil
}

// Verify settles a pending transaction. On gateway-confirmed success the
// user's plan is upgraded and credits reset. Verify is idempotent: a
// transaction already settled as success just reports the active plan again
// without re-upgrading.
func (s *Service) Verify(ctx context.Context, userID uint, reference string) (*models.VerifyPaymentResponse, error) {
	tx, err := s.store.GetTransaction(ctx, reference)
	if err != nil {
		return nil, err
	}
	if tx.UserID != userID {
		return nil, fmt.Errorf("%w: transaction %s", models.ErrNotFound, reference)
	}

	if tx.Status == "success" {
		return &models.VerifyPaymentResponse{
			Reference: reference,
			Status:    tx.Status,
			Plan:      tx.Plan,
			Credits:   models.CreditsForPlan(tx.Plan),
		}, nil
	}

	result, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}

	status := result.Status
	if status != "success" && status != "failed" {
		// Abandoned or still pending at the gateway; leave our record pending.
		log.Printf("[payment] Transaction %s still %s at gateway", reference, status)
		return &models.VerifyPaymentResponse{Reference: reference, Status: status}, nil
	}

	if err := s.store.SettleTransaction(ctx, reference, status, result.Raw); err != nil {
		return nil, fmt.Errorf("%w: settling transaction: %v", models.ErrPersistence, err)
	}

	resp := &models.VerifyPaymentResponse{Reference: reference, Status: status}
	if status == "success" {
		plan, err := s.store.UpsertPlan(ctx, userID, tx.Plan)
		if err != nil {
			return nil, fmt.Errorf("%w: activating plan: %v", models.ErrPersistence, err)
		}
		resp.Plan = plan.Plan
		resp.Credits = plan.CreditsLimit
		log.Printf("[payment] User %d upgraded to %s (%d credits)", userID, plan.Plan, plan.CreditsLimit)
	}
	return resp, nil
}
