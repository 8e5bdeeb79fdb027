package candidateapimodels

import (
	"context"
	"github.com/pkg/errors"
	"recruit-portal/models"
	apimodels "recruit-portal/models/api"
)

// EmailDetails письмо, которое бэкенд отправит вместе со сменой статуса
type EmailDetails struct {
	Content        string `json:"content" validate:"notblank"`
	RecipientEmail string `json:"recipientEmail" validate:"portal_email"`
	RecipientName  string `json:"recipientName"`
	Subject        string `json:"subject,omitempty"`
}

var emailDetailsMessages = map[string]string{
	"Content.notblank":            "Email content cannot be empty",
	"RecipientEmail.portal_email": "Please enter a valid recipient email address",
}

func (d EmailDetails) Validate() error {
	return apimodels.ValidateForm(context.Background(), d, emailDetailsMessages)
}

type StatusUpdateRequest struct {
	Status       models.CandidateStatus `json:"status"`
	EmailDetails *EmailDetails          `json:"emailDetails,omitempty"`
}

func (r StatusUpdateRequest) Validate() error {
	if !r.Status.IsValid() {
		return errors.Errorf("Invalid status: %v", r.Status)
	}
	if r.EmailDetails != nil {
		return r.EmailDetails.Validate()
	}
	return nil
}

type EmailPreviewResponse struct {
	EmailPreview string `json:"emailPreview"`
}

// InitiateRequest выбор нового статуса оператором
type InitiateRequest struct {
	NewStatus models.CandidateStatus `json:"newStatus"`
}

func (r InitiateRequest) Validate() error {
	if !r.NewStatus.IsValid() {
		return errors.Errorf("Invalid status: %v", r.NewStatus)
	}
	return nil
}

type EditEmailRequest struct {
	Content        *string `json:"content,omitempty"`
	RecipientEmail *string `json:"recipientEmail,omitempty"`
	RecipientName  *string `json:"recipientName,omitempty"`
	Subject        *string `json:"subject,omitempty"`
}

func (r EditEmailRequest) Validate() error {
	if r.Content == nil && r.RecipientEmail == nil && r.RecipientName == nil && r.Subject == nil {
		return errors.New("nothing to update")
	}
	return nil
}
