// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package rest

import (
	"context"
	"net/http"

	"github.com/frageo/frageo/internal/backend"
)

// SubscriptionService maps the paid-plan endpoints of the upstream API.
type SubscriptionService struct {
	client *backend.Client
}

// NewSubscriptionService constructs a [SubscriptionService] over the shared pipeline.
func NewSubscriptionService(client *backend.Client) *SubscriptionService {
	return &SubscriptionService{client: client}
}

// Current returns the caller's active subscription, or a 404 APIError when
// no plan is active.
func (service *SubscriptionService) Current(context context.Context, token string) (*Subscription, error) {
	var subscription Subscription
	err := service.client.Do(context, backend.Request{
		Method: http.MethodGet,
		Path:   "/subscription/me",
		Token:  token,
		Errors: map[int]string{404: "No active subscription"},
	}, &subscription)
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

// Checkout starts a checkout for the named plan and returns the payment URL.
func (service *SubscriptionService) Checkout(context context.Context, token, planName string) (string, error) {
	var result struct {
		CheckoutURL string `json:"checkout_url"`
	}
	err := service.client.Do(context, backend.Request{
		Method: http.MethodPost,
		Path:   "/subscription/checkout",
		Token:  token,
		Body:   map[string]any{"plan_name": planName},
		Errors: map[int]string{404: "Unknown plan"},
	}, &result)
	if err != nil {
		return "", err
	}
	return result.CheckoutURL, nil
}
