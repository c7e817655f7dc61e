package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/zap"

	"iopps-backend-go/internal/core"
	"iopps-backend-go/internal/middleware"
	"iopps-backend-go/internal/models"
)

// BillingHandler serves the Stripe checkout and webhook routes.
type BillingHandler struct {
	billing       *core.BillingService
	orgs          *core.OrgService
	webhookSecret string
	clientURL     string
	logger        *zap.Logger
}

// NewBillingHandler creates a BillingHandler.
func NewBillingHandler(billing *core.BillingService, orgs *core.OrgService, webhookSecret, clientURL string, logger *zap.Logger) *BillingHandler {
	return &BillingHandler{
		billing: billing, orgs: orgs,
		webhookSecret: webhookSecret, clientURL: clientURL, logger: logger,
	}
}

// CreateCheckout handles POST /api/stripe/checkout.
func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	uid := c.GetString(middleware.ContextUserID)
	org, err := h.orgs.ResolveOrg(c.Request.Context(), uid)
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	result, err := h.billing.CreateCheckout(c.Request.Context(), org, req, h.clientURL)
	if err != nil {
		mapCoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Webhook handles POST /api/stripe/webhook. Stripe authenticates via
// the signature header; the route carries no bearer auth.
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unable to read request body"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		h.logger.Warn("webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid signature"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Malformed event payload"})
			return
		}
		checkout := core.CheckoutEvent{
			EventID:     event.ID,
			EventType:   string(event.Type),
			SessionID:   session.ID,
			AmountTotal: session.AmountTotal,
			Currency:    string(session.Currency),
			Metadata:    session.Metadata,
		}
		if session.PaymentIntent != nil {
			checkout.PaymentIntentID = session.PaymentIntent.ID
		}
		applied, err := h.billing.ProcessCheckoutCompleted(c.Request.Context(), checkout)
		if err != nil {
			mapCoreError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "skipped": !applied})

	case "customer.subscription.deleted", "customer.subscription.canceled":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Malformed event payload"})
			return
		}
		applied, err := h.billing.ProcessSubscriptionCancelled(c.Request.Context(), event.ID, string(event.Type), sub.Metadata["orgId"])
		if err != nil {
			mapCoreError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "skipped": !applied})

	default:
		// Unhandled event types are acknowledged so Stripe stops
		// redelivering them.
		c.JSON(http.StatusOK, gin.H{"ok": true, "ignored": string(event.Type)})
	}
}
