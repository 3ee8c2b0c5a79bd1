package services

import (
	"context"
	"time"

	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sahilchouksey/unifriend-api/model"
	"github.com/sahilchouksey/unifriend-api/utils/validation"
)

// CreateRegistrationInput is the body of the public enquiry form
type CreateRegistrationInput struct {
	FullName           string `json:"fullName" validate:"required"`
	Email              string `json:"email" validate:"required"`
	MobileNumber       string `json:"mobileNumber" validate:"required"`
	City               string `json:"city" validate:"required"`
	CourseInterestedIn string `json:"courseInterestedIn" validate:"required"`
	// OnlineDistance is true only for boolean true or the string "true".
	OnlineDistance interface{} `json:"onlineDistance"`
}

// SubscribeInput is the body of a newsletter sign-up
type SubscribeInput struct {
	Email        string  `json:"email" validate:"required"`
	MobileNumber *string `json:"mobileNumber"`
	Course       *string `json:"course"`
}

// LeadService captures registrations and newsletter subscriptions
type LeadService struct {
	store     database.LeadStore
	validator *validation.Validator
	now       func() time.Time
}

// NewLeadService creates a new lead service
func NewLeadService(store database.LeadStore) *LeadService {
	return &LeadService{store: store, validator: validation.NewValidator(), now: time.Now}
}

func isTruthy(v interface{}) bool {
	switch value := v.(type) {
	case bool:
		return value
	case string:
		return value == "true"
	default:
		return false
	}
}

// CreateRegistration stores a public registration
func (s *LeadService) CreateRegistration(ctx context.Context, input CreateRegistrationInput) (*model.Registration, error) {
	input.FullName = validation.SanitizeString(input.FullName)
	input.Email = validation.SanitizeString(input.Email)
	input.MobileNumber = validation.SanitizeString(input.MobileNumber)
	input.City = validation.SanitizeString(input.City)
	input.CourseInterestedIn = validation.SanitizeString(input.CourseInterestedIn)
	if err := s.validator.ValidateStruct(input); err != nil {
		return nil, Validation("Full name, email, mobile number, city, and course interest are required.")
	}

	registration := &model.Registration{
		FullName:           input.FullName,
		Email:              input.Email,
		MobileNumber:       input.MobileNumber,
		City:               input.City,
		CourseInterestedIn: input.CourseInterestedIn,
		OnlineDistance:     isTruthy(input.OnlineDistance),
		CreatedAt:          s.now().UTC(),
	}
	if err := s.store.CreateRegistration(ctx, registration); err != nil {
		return nil, Internal("Failed to create registration.", err)
	}
	return registration, nil
}

// ListRegistrations returns registrations, newest first
func (s *LeadService) ListRegistrations(ctx context.Context, page database.Page) ([]model.Registration, error) {
	registrations, err := s.store.ListRegistrations(ctx, page)
	if err != nil {
		return nil, Internal("Failed to fetch registrations.", err)
	}
	return nonNil(registrations), nil
}

// Subscribe stores a newsletter subscription
func (s *LeadService) Subscribe(ctx context.Context, input SubscribeInput) (*model.NewsletterSubscription, error) {
	input.Email = validation.SanitizeString(input.Email)
	if err := s.validator.ValidateStruct(input); err != nil {
		return nil, Validation("Email is required.")
	}

	subscription := &model.NewsletterSubscription{
		Email:        input.Email,
		MobileNumber: validation.SanitizeOptional(input.MobileNumber),
		Course:       validation.SanitizeOptional(input.Course),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.CreateSubscription(ctx, subscription); err != nil {
		return nil, Internal("Failed to subscribe to newsletter.", err)
	}
	return subscription, nil
}

// ListSubscriptions returns subscriptions, newest first
func (s *LeadService) ListSubscriptions(ctx context.Context, page database.Page) ([]model.NewsletterSubscription, error) {
	subscriptions, err := s.store.ListSubscriptions(ctx, page)
	if err != nil {
		return nil, Internal("Failed to fetch subscriptions.", err)
	}
	return nonNil(subscriptions), nil
}
