package core

import (
	"context"
	"errors"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"go.uber.org/zap"

	"iopps-backend-go/internal/db"
	"iopps-backend-go/internal/models"
)

// Product is a purchasable job-posting product. The catalogue lives
// server-side; the client only ever names a product type.
type Product struct {
	Name         string
	Description  string
	PriceCents   int64
	DurationDays int
	Featured     bool
}

// jobPostingProducts is the CAD product catalogue.
var jobPostingProducts = map[string]Product{
	"standard": {
		Name:         "Standard Job Posting",
		Description:  "30-day job posting on IOPPS",
		PriceCents:   9900,
		DurationDays: 30,
	},
	"featured": {
		Name:         "Featured Job Posting",
		Description:  "60-day featured job posting on IOPPS",
		PriceCents:   19900,
		DurationDays: 60,
		Featured:     true,
	},
	"annual": {
		Name:         "Annual Employer Plan",
		Description:  "Unlimited postings for one year",
		PriceCents:   99900,
		DurationDays: 365,
		Featured:     true,
	},
}

// CheckoutResult is returned to the client to redirect into Stripe.
type CheckoutResult struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// CheckoutEvent is the slice of a Stripe webhook event the service
// acts on. The handler verifies the signature and decodes the event;
// the service applies the business effects.
type CheckoutEvent struct {
	EventID         string
	EventType       string
	SessionID       string
	PaymentIntentID string
	AmountTotal     int64
	Currency        string
	Metadata        map[string]string
}

// gstPortion extracts the 5% GST component from a tax-inclusive
// total in cents.
func gstPortion(total int64) int64 {
	return total * 5 / 105
}

// BillingService creates checkout sessions and applies webhook
// events. Webhook handling is idempotent: every event id is recorded
// and redeliveries are skipped.
type BillingService struct {
	payments db.PaymentRepository
	jobs     db.JobRepository
	orgs     db.OrgRepository
	logger   *zap.Logger

	// createSession is session.New in production; tests stub it.
	createSession func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// NewBillingService creates a BillingService. stripeKey configures
// the process-wide Stripe client key.
func NewBillingService(stripeKey string, payments db.PaymentRepository, jobs db.JobRepository, orgs db.OrgRepository, logger *zap.Logger) *BillingService {
	stripe.Key = stripeKey
	return &BillingService{
		payments:      payments,
		jobs:          jobs,
		orgs:          orgs,
		logger:        logger,
		createSession: session.New,
	}
}

// CreateCheckout starts a Stripe checkout for a job-posting product.
// When a job id is given, the caller's resolved org must own the job.
func (s *BillingService) CreateCheckout(ctx context.Context, org *OrgContext, req models.CheckoutRequest, clientURL string) (*CheckoutResult, error) {
	product, ok := jobPostingProducts[req.ProductType]
	if !ok {
		return nil, fmt.Errorf("%w: invalid product type %q", ErrInvalidInput, req.ProductType)
	}

	if req.JobID != "" {
		job, err := s.jobs.GetByID(ctx, req.JobID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return nil, ErrJobNotFound
			}
			return nil, err
		}
		if job.EmployerID != org.OrgID {
			return nil, ErrForbidden
		}
	}

	successURL := req.ReturnURL
	if successURL == "" {
		successURL = clientURL + "/organization/jobs?purchased=true"
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(successURL),
		CancelURL:          stripe.String(clientURL + "/organization/subscribe?canceled=true"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("cad"),
				UnitAmount: stripe.Int64(product.PriceCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(product.Name),
					Description: stripe.String(product.Description),
				},
			},
			Quantity: stripe.Int64(1),
		}},
	}
	params.Context = ctx
	params.AddMetadata("productType", req.ProductType)
	params.AddMetadata("userId", org.UID)
	params.AddMetadata("orgId", org.OrgID)
	if req.JobID != "" {
		params.AddMetadata("jobId", req.JobID)
	}

	sess, err := s.createSession(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session failed: %w", err)
	}
	return &CheckoutResult{SessionID: sess.ID, URL: sess.URL}, nil
}

// ProcessCheckoutCompleted records the payment and activates what was
// bought. Returns false when the event was already processed.
func (s *BillingService) ProcessCheckoutCompleted(ctx context.Context, event CheckoutEvent) (bool, error) {
	done, err := s.payments.EventProcessed(ctx, event.EventID)
	if err != nil {
		return false, err
	}
	if done {
		return false, nil
	}

	metadata := event.Metadata
	userID := metadata["userId"]
	if userID == "" {
		userID = metadata["employerId"]
	}
	currency := event.Currency
	if currency == "" {
		currency = "cad"
	}

	payment := &models.Payment{
		UserID:          userID,
		OrgID:           metadata["orgId"],
		Type:            "checkout",
		Description:     jobPostingProducts[metadata["productType"]].Name,
		Plan:            metadata["productType"],
		Amount:          event.AmountTotal,
		GSTAmount:       gstPortion(event.AmountTotal),
		Currency:        currency,
		Status:          models.PaymentSucceeded,
		PaymentIntentID: event.PaymentIntentID,
		SessionID:       event.SessionID,
		Metadata:        metadata,
	}
	if _, err := s.payments.Create(ctx, payment); err != nil {
		return false, err
	}

	if jobID := metadata["jobId"]; jobID != "" {
		fields := map[string]interface{}{
			"paymentStatus": "paid",
			"paymentId":     event.PaymentIntentID,
		}
		if jobPostingProducts[metadata["productType"]].Featured {
			fields["featured"] = true
		}
		if err := s.jobs.UpdateFields(ctx, "jobs", jobID, fields); err != nil {
			s.logger.Error("job payment stamp failed", zap.String("jobId", jobID), zap.Error(err))
		}
	}
	if orgID := metadata["orgId"]; orgID != "" && metadata["productType"] == "annual" {
		fields := map[string]interface{}{
			"plan":               "annual",
			"subscriptionStatus": models.PaymentActive,
		}
		if err := s.orgs.UpdateFields(ctx, orgID, fields); err != nil {
			s.logger.Error("org plan activation failed", zap.String("orgId", orgID), zap.Error(err))
		}
	}

	if err := s.payments.MarkEventProcessed(ctx, event.EventID, event.EventType); err != nil {
		return true, err
	}
	return true, nil
}

// ProcessSubscriptionCancelled marks the org's subscription
// cancelled. The transition is one-way; nothing here reactivates.
func (s *BillingService) ProcessSubscriptionCancelled(ctx context.Context, eventID, eventType, orgID string) (bool, error) {
	done, err := s.payments.EventProcessed(ctx, eventID)
	if err != nil {
		return false, err
	}
	if done {
		return false, nil
	}
	if orgID != "" {
		fields := map[string]interface{}{"subscriptionStatus": models.PaymentCancelled}
		if err := s.orgs.UpdateFields(ctx, orgID, fields); err != nil && !errors.Is(err, db.ErrNotFound) {
			return false, err
		}
	}
	if err := s.payments.MarkEventProcessed(ctx, eventID, eventType); err != nil {
		return true, err
	}
	return true, nil
}
