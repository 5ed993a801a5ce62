// services/notification_service.go
package services

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"groompro-backend/models"
)

// SMSMaxLength is the provider's maximum message body length. Longer bodies
// are truncated, not rejected.
const SMSMaxLength = 1600

// NotificationMessage describes one outbound notification. It is not
// persisted before dispatch.
type NotificationMessage struct {
	BusinessID uuid.UUID         `json:"business_id"`
	Type       string            `json:"type"`
	Channel    string            `json:"channel"`
	Recipient  string            `json:"recipient"`
	Data       map[string]string `json:"data"`
	CustomerID *uuid.UUID        `json:"customer_id,omitempty"`
}

// SendResult is returned to the caller unchanged from the provider outcome.
type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// transactionalTypes must always be delivered regardless of the recipient's
// marketing preferences. The list is fixed, not configurable.
var transactionalTypes = map[string]bool{
	models.TypeBookingConfirmation: true,
	models.TypeBookingCancellation: true,
	models.TypeStatusUpdate:        true,
	models.TypeReportReady:         true,
	models.TypeWaitlistAvailable:   true,
}

// IsTransactionalType reports whether a notification type bypasses
// marketing preferences.
func IsTransactionalType(notifType string) bool {
	return transactionalTypes[notifType]
}

// Collaborator stores. GORM-backed implementations live in
// notification_stores.go; tests substitute mocks.

type SettingsStore interface {
	NotificationTypeEnabled(businessID uuid.UUID, notifType string) (bool, error)
}

// PreferenceStore returns (nil, nil) when the customer has no preference
// record; absence means everything is allowed.
type PreferenceStore interface {
	GetPreference(customerID uuid.UUID) (*models.NotificationPreference, error)
}

// TemplateStore returns (nil, nil) when no active template exists for the
// (type, channel) pair.
type TemplateStore interface {
	GetTemplate(businessID uuid.UUID, notifType, channel string) (*models.NotificationTemplate, error)
}

type LogStore interface {
	CreatePending(msg NotificationMessage, body string) (*models.NotificationLog, error)
	MarkSent(id uuid.UUID, providerID string) error
	MarkFailed(id uuid.UUID, errMsg string) error
}

// RetryScheduler enqueues a transient failure for redelivery.
type RetryScheduler interface {
	Schedule(msg NotificationMessage, lastError string) error
}

// Provider delivers a rendered message over one channel and returns the
// provider-side message id.
type Provider interface {
	Send(ctx context.Context, recipient, subject, body string) (string, error)
}

// ProviderError carries an error class so dispatch failures can be routed
// to the right retry policy.
type ProviderError struct {
	Class string // transient, permanent, configuration
	Err   error
}

func (e *ProviderError) Error() string { return e.Err.Error() }
func (e *ProviderError) Unwrap() error { return e.Err }

// NotificationService runs the full dispatch sequence for one outbound
// message, from eligibility checks through retry scheduling.
type NotificationService struct {
	settings    SettingsStore
	preferences PreferenceStore
	templates   TemplateStore
	logs        LogStore
	retries     RetryScheduler
	providers   map[string]Provider // by channel
}

func NewNotificationService(
	settings SettingsStore,
	preferences PreferenceStore,
	templates TemplateStore,
	logs LogStore,
	retries RetryScheduler,
	providers map[string]Provider,
) *NotificationService {
	return &NotificationService{
		settings:    settings,
		preferences: preferences,
		templates:   templates,
		logs:        logs,
		retries:     retries,
		providers:   providers,
	}
}

// Send runs the full dispatch pipeline and, on a transient failure,
// schedules the message for redelivery.
func (s *NotificationService) Send(ctx context.Context, msg NotificationMessage) SendResult {
	result, errClass := s.Deliver(ctx, msg)
	if !result.Success && errClass == models.ErrorTransient {
		if err := s.retries.Schedule(msg, result.Error); err != nil {
			log.Printf("Failed to schedule retry for %s/%s: %v", msg.Type, msg.Channel, err)
		}
	}
	return result
}

// Deliver runs the dispatch sequence once. It returns the result
// and the error class for a failed dispatch ("" when nothing should be
// retried). Eligibility checks run on every attempt, so a retry respects
// preference changes made since the original send.
func (s *NotificationService) Deliver(ctx context.Context, msg NotificationMessage) (SendResult, string) {
	// 1. Global kill switch per type. Nothing is logged for disabled types.
	enabled, err := s.settings.NotificationTypeEnabled(msg.BusinessID, msg.Type)
	if err != nil {
		return SendResult{Success: false, Error: "failed to load notification settings: " + err.Error()}, ""
	}
	if !enabled {
		return SendResult{Success: false, Error: "notification type disabled: " + msg.Type}, ""
	}

	// 2. Per-customer preferences. Transactional types always pass.
	if msg.CustomerID != nil && !IsTransactionalType(msg.Type) {
		pref, err := s.preferences.GetPreference(*msg.CustomerID)
		if err != nil {
			return SendResult{Success: false, Error: "failed to load preferences: " + err.Error()}, ""
		}
		if pref != nil {
			if !pref.MarketingEnabled {
				return SendResult{Success: false, Error: "recipient has disabled marketing notifications"}, ""
			}
			if msg.Channel == models.ChannelEmail && !pref.EmailEnabled {
				return SendResult{Success: false, Error: "recipient has disabled email notifications"}, ""
			}
			if msg.Channel == models.ChannelSMS && !pref.SMSEnabled {
				return SendResult{Success: false, Error: "recipient has disabled sms notifications"}, ""
			}
		}
	}

	// 3. Template lookup. Absence is a configuration error, never retried.
	tmpl, err := s.templates.GetTemplate(msg.BusinessID, msg.Type, msg.Channel)
	if err != nil {
		return SendResult{Success: false, Error: "failed to load template: " + err.Error()}, ""
	}
	if tmpl == nil {
		return SendResult{Success: false, Error: "no template configured for " + msg.Type + "/" + msg.Channel}, ""
	}

	// 4. Render. Unmatched placeholders stay verbatim.
	body := RenderTemplate(tmpl.Body, msg.Data)
	subject := ""
	if msg.Channel == models.ChannelEmail {
		subject = RenderTemplate(tmpl.Subject, msg.Data)
	}

	// 5. SMS length cap.
	if msg.Channel == models.ChannelSMS && len(body) > SMSMaxLength {
		log.Printf("SMS body for %s truncated from %d to %d characters", msg.Type, len(body), SMSMaxLength)
		body = body[:SMSMaxLength]
	}

	// 6. Pending log row before dispatch, so a crash mid-send still leaves
	// an auditable attempt.
	logEntry, err := s.logs.CreatePending(msg, body)
	if err != nil {
		return SendResult{Success: false, Error: "failed to create notification log: " + err.Error()}, ""
	}

	// 7. Dispatch.
	provider, ok := s.providers[msg.Channel]
	if !ok {
		errMsg := "no provider configured for channel: " + msg.Channel
		if logErr := s.logs.MarkFailed(logEntry.ID, errMsg); logErr != nil {
			log.Printf("Failed to update notification log %s: %v", logEntry.ID, logErr)
		}
		return SendResult{Success: false, Error: errMsg}, ""
	}

	providerID, sendErr := provider.Send(ctx, msg.Recipient, subject, body)

	// 8. Record the outcome.
	if sendErr != nil {
		if logErr := s.logs.MarkFailed(logEntry.ID, sendErr.Error()); logErr != nil {
			log.Printf("Failed to update notification log %s: %v", logEntry.ID, logErr)
		}
		// 9. Only transient failures are worth retrying.
		return SendResult{Success: false, Error: sendErr.Error()}, ClassifyError(sendErr)
	}

	if logErr := s.logs.MarkSent(logEntry.ID, providerID); logErr != nil {
		log.Printf("Failed to update notification log %s: %v", logEntry.ID, logErr)
	}

	// 10. Provider result goes back to the caller unchanged.
	return SendResult{Success: true, MessageID: providerID}, ""
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

// RenderTemplate substitutes {{variableName}} placeholders with values from
// data. Placeholders without a matching key are left verbatim.
func RenderTemplate(text string, data map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := data[name]; ok {
			return value
		}
		return match
	})
}

// ClassifyError maps a dispatch failure to transient, permanent, or
// configuration. Providers wrap errors in ProviderError where they can tell
// the class; anything else is classified by message and defaults to
// transient, so unknown failures get retried rather than dropped.
func ClassifyError(err error) string {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Class
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "invalid recipient"),
		strings.Contains(msg, "unsubscribed"),
		strings.Contains(msg, "not a valid phone number"),
		strings.Contains(msg, "address is blacklisted"):
		return models.ErrorPermanent
	case strings.Contains(msg, "credential"),
		strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "authenticate"),
		strings.Contains(msg, "forbidden"):
		return models.ErrorConfiguration
	default:
		return models.ErrorTransient
	}
}
