package core

import (
	"context"
	"errors"
	"testing"

	stripe "github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"

	"iopps-backend-go/internal/models"
)

func newTestBillingService(payments *fakePaymentRepo, jobs *fakeJobRepo, orgs *fakeOrgRepo) *BillingService {
	svc := &BillingService{
		payments: payments,
		jobs:     jobs,
		orgs:     orgs,
		logger:   zap.NewNop(),
	}
	svc.createSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.test/cs_test_1"}, nil
	}
	return svc
}

func TestGSTPortion(t *testing.T) {
	cases := map[int64]int64{
		9900:  471,
		19900: 947,
		99900: 4757,
		0:     0,
	}
	for total, expect := range cases {
		if got := gstPortion(total); got != expect {
			t.Fatalf("gstPortion(%d) = %d, expected %d", total, got, expect)
		}
	}
}

func TestCreateCheckoutRejectsUnknownProduct(t *testing.T) {
	svc := newTestBillingService(newFakePaymentRepo(), newFakeJobRepo(), newFakeOrgRepo())
	org := &OrgContext{UID: "u1", OrgID: "org-a"}

	_, err := svc.CreateCheckout(context.Background(), org, models.CheckoutRequest{ProductType: "platinum"}, "https://iopps.ca")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateCheckoutEnforcesJobOwnership(t *testing.T) {
	jobs := newFakeJobRepo()
	jobID := jobs.add(&models.Job{Title: "Carpenter", EmployerID: "org-b", Active: true})
	svc := newTestBillingService(newFakePaymentRepo(), jobs, newFakeOrgRepo())
	org := &OrgContext{UID: "u1", OrgID: "org-a"}

	_, err := svc.CreateCheckout(context.Background(), org, models.CheckoutRequest{ProductType: "standard", JobID: jobID}, "https://iopps.ca")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another org's job, got %v", err)
	}

	_, err = svc.CreateCheckout(context.Background(), org, models.CheckoutRequest{ProductType: "standard", JobID: "job-missing"}, "https://iopps.ca")
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestCreateCheckoutReturnsSession(t *testing.T) {
	jobs := newFakeJobRepo()
	jobID := jobs.add(&models.Job{Title: "Carpenter", EmployerID: "org-a", Active: true})
	svc := newTestBillingService(newFakePaymentRepo(), jobs, newFakeOrgRepo())
	org := &OrgContext{UID: "u1", OrgID: "org-a"}

	result, err := svc.CreateCheckout(context.Background(), org, models.CheckoutRequest{ProductType: "featured", JobID: jobID}, "https://iopps.ca")
	if err != nil {
		t.Fatalf("expected checkout session, got %v", err)
	}
	if result.SessionID != "cs_test_1" || result.URL == "" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestProcessCheckoutCompletedIsIdempotent(t *testing.T) {
	payments := newFakePaymentRepo()
	jobs := newFakeJobRepo()
	jobID := jobs.add(&models.Job{Title: "Carpenter", EmployerID: "org-a", Active: true})
	svc := newTestBillingService(payments, jobs, newFakeOrgRepo())

	event := CheckoutEvent{
		EventID:         "evt_1",
		EventType:       "checkout.session.completed",
		SessionID:       "cs_test_1",
		PaymentIntentID: "pi_1",
		AmountTotal:     19900,
		Currency:        "cad",
		Metadata: map[string]string{
			"productType": "featured",
			"userId":      "u1",
			"orgId":       "org-a",
			"jobId":       jobID,
		},
	}

	applied, err := svc.ProcessCheckoutCompleted(context.Background(), event)
	if err != nil || !applied {
		t.Fatalf("expected first delivery applied, got applied=%v err=%v", applied, err)
	}
	applied, err = svc.ProcessCheckoutCompleted(context.Background(), event)
	if err != nil {
		t.Fatalf("expected redelivery skipped cleanly, got %v", err)
	}
	if applied {
		t.Fatalf("expected redelivery skipped")
	}

	if len(payments.payments) != 1 {
		t.Fatalf("expected exactly one payment record, got %d", len(payments.payments))
	}
	payment := payments.payments[0]
	if payment.Amount != 19900 || payment.GSTAmount != 947 {
		t.Fatalf("unexpected amounts: %+v", payment)
	}
	if payment.Status != models.PaymentSucceeded {
		t.Fatalf("unexpected status %q", payment.Status)
	}

	stamped := jobs.updates[jobID]
	if stamped["paymentStatus"] != "paid" || stamped["paymentId"] != "pi_1" {
		t.Fatalf("expected job stamped paid, got %v", stamped)
	}
	if stamped["featured"] != true {
		t.Fatalf("expected featured product to flag the job")
	}
}

func TestProcessCheckoutCompletedAnnualActivatesOrg(t *testing.T) {
	orgs := newFakeOrgRepo()
	orgs.orgs["org-a"] = &models.Organization{ID: "org-a", Name: "Friendship Centre"}
	svc := newTestBillingService(newFakePaymentRepo(), newFakeJobRepo(), orgs)

	_, err := svc.ProcessCheckoutCompleted(context.Background(), CheckoutEvent{
		EventID:     "evt_2",
		EventType:   "checkout.session.completed",
		AmountTotal: 99900,
		Metadata:    map[string]string{"productType": "annual", "userId": "u1", "orgId": "org-a"},
	})
	if err != nil {
		t.Fatalf("expected event applied, got %v", err)
	}

	update := orgs.orgUpdates["org-a"]
	if update["plan"] != "annual" || update["subscriptionStatus"] != models.PaymentActive {
		t.Fatalf("expected annual plan activation, got %v", update)
	}
}

func TestProcessSubscriptionCancelled(t *testing.T) {
	payments := newFakePaymentRepo()
	orgs := newFakeOrgRepo()
	orgs.orgs["org-a"] = &models.Organization{ID: "org-a", Plan: "annual"}
	svc := newTestBillingService(payments, newFakeJobRepo(), orgs)

	applied, err := svc.ProcessSubscriptionCancelled(context.Background(), "evt_3", "customer.subscription.deleted", "org-a")
	if err != nil || !applied {
		t.Fatalf("expected cancellation applied, got applied=%v err=%v", applied, err)
	}
	if orgs.orgUpdates["org-a"]["subscriptionStatus"] != models.PaymentCancelled {
		t.Fatalf("expected subscription marked cancelled, got %v", orgs.orgUpdates["org-a"])
	}

	applied, err = svc.ProcessSubscriptionCancelled(context.Background(), "evt_3", "customer.subscription.deleted", "org-a")
	if err != nil || applied {
		t.Fatalf("expected redelivery skipped, got applied=%v err=%v", applied, err)
	}
}
