package handlers

import (
	"context"
	"net/http"

	"deepguard/internal/models"
)

// PaymentService runs the checkout flow. *payment.Service satisfies it.
type PaymentService interface {
	Initialize(ctx context.Context, userID uint, req models.InitializePaymentRequest) (*models.InitializePaymentResponse, error)
	Verify(ctx context.Context, userID uint, reference string) (*models.VerifyPaymentResponse, error)
}

// PlanReader reports the caller's active plan. *repository.Payments
// satisfies it.
type PlanReader interface {
	GetPlan(ctx context.Context, userID uint) (*models.UserPlan, error)
}

// NewInitializePayment returns the checkout initialization endpoint.
func NewInitializePayment(svc PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			writeError(w, models.ErrUnauthorized)
			return
		}

		var req models.InitializePaymentRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		resp, err := svc.Initialize(r.Context(), userID, req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// NewVerifyPayment returns the transaction verification endpoint.
func NewVerifyPayment(svc PaymentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			writeError(w, models.ErrUnauthorized)
			return
		}

		resp, err := svc.Verify(r.Context(), userID, r.PathValue("reference"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// NewGetPlan returns the caller's active plan and credit balance.
func NewGetPlan(plans PlanReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserID(r)
		if !ok {
			writeError(w, models.ErrUnauthorized)
			return
		}

		plan, err := plans.GetPlan(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, plan)
	}
}
