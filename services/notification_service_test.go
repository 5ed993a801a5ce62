package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"groompro-backend/models"
)

type mockSettingsStore struct{ mock.Mock }

func (m *mockSettingsStore) NotificationTypeEnabled(businessID uuid.UUID, notifType string) (bool, error) {
	args := m.Called(businessID, notifType)
	return args.Bool(0), args.Error(1)
}

type mockPreferenceStore struct{ mock.Mock }

func (m *mockPreferenceStore) GetPreference(customerID uuid.UUID) (*models.NotificationPreference, error) {
	args := m.Called(customerID)
	pref, _ := args.Get(0).(*models.NotificationPreference)
	return pref, args.Error(1)
}

type mockTemplateStore struct{ mock.Mock }

func (m *mockTemplateStore) GetTemplate(businessID uuid.UUID, notifType, channel string) (*models.NotificationTemplate, error) {
	args := m.Called(businessID, notifType, channel)
	tmpl, _ := args.Get(0).(*models.NotificationTemplate)
	return tmpl, args.Error(1)
}

type mockLogStore struct{ mock.Mock }

func (m *mockLogStore) CreatePending(msg NotificationMessage, body string) (*models.NotificationLog, error) {
	args := m.Called(msg, body)
	entry, _ := args.Get(0).(*models.NotificationLog)
	return entry, args.Error(1)
}

func (m *mockLogStore) MarkSent(id uuid.UUID, providerID string) error {
	return m.Called(id, providerID).Error(0)
}

func (m *mockLogStore) MarkFailed(id uuid.UUID, errMsg string) error {
	return m.Called(id, errMsg).Error(0)
}

type mockRetryScheduler struct{ mock.Mock }

func (m *mockRetryScheduler) Schedule(msg NotificationMessage, lastError string) error {
	return m.Called(msg, lastError).Error(0)
}

type mockProvider struct{ mock.Mock }

func (m *mockProvider) Send(ctx context.Context, recipient, subject, body string) (string, error) {
	args := m.Called(ctx, recipient, subject, body)
	return args.String(0), args.Error(1)
}

type notificationFixture struct {
	settings  *mockSettingsStore
	prefs     *mockPreferenceStore
	templates *mockTemplateStore
	logs      *mockLogStore
	retries   *mockRetryScheduler
	provider  *mockProvider
	service   *NotificationService
}

func newNotificationFixture(channel string) *notificationFixture {
	f := &notificationFixture{
		settings:  &mockSettingsStore{},
		prefs:     &mockPreferenceStore{},
		templates: &mockTemplateStore{},
		logs:      &mockLogStore{},
		retries:   &mockRetryScheduler{},
		provider:  &mockProvider{},
	}
	f.service = NewNotificationService(
		f.settings, f.prefs, f.templates, f.logs, f.retries,
		map[string]Provider{channel: f.provider},
	)
	return f
}

func emailMessage(notifType string) NotificationMessage {
	customerID := uuid.New()
	return NotificationMessage{
		BusinessID: uuid.New(),
		Type:       notifType,
		Channel:    models.ChannelEmail,
		Recipient:  "owner@example.com",
		Data:       map[string]string{"customerName": "Dana", "petName": "Biscuit"},
		CustomerID: &customerID,
	}
}

func TestDeliverDisabledType(t *testing.T) {
	f := newNotificationFixture(models.ChannelEmail)
	msg := emailMessage(models.TypeBookingConfirmation)

	f.settings.On("NotificationTypeEnabled", msg.BusinessID, msg.Type).Return(false, nil)

	result, errClass := f.service.Deliver(context.Background(), msg)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "disabled")
	assert.Equal(t, "", errClass)
	// nothing reaches the template, log, or provider layers
	f.templates.AssertNotCalled(t, "GetTemplate", mock.Anything, mock.Anything, mock.Anything)
	f.logs.AssertNotCalled(t, "CreatePending", mock.Anything, mock.Anything)
}

func TestDeliverMarketingSuppressedByPreference(t *testing.T) {
	f := newNotificationFixture(models.ChannelEmail)
	msg := emailMessage("promotion")

	f.settings.On("NotificationTypeEnabled", msg.BusinessID, msg.Type).Return(true, nil)
	f.prefs.On("GetPreference", *msg.CustomerID).Return(&models.NotificationPreference{
		MarketingEnabled: false,
		EmailEnabled:     true,
		SMSEnabled:       true,
	}, nil)

	result, errClass := f.service.Deliver(context.Background(), msg)

	assert.False(t, result.Success)
	assert.Equal(t, "", errClass)
	f.logs.AssertNotCalled(t, "CreatePending", mock.Anything, mock.Anything)
}

func TestDeliverTransactionalBypassesPreferences(t *testing.T) {
	f := newNotificationFixture(models.ChannelEmail)
	msg := emailMessage(models.TypeBookingConfirmation)

	f.settings.On("NotificationTypeEnabled", msg.BusinessID, msg.Type).Return(true, nil)
	f.templates.On("GetTemplate", msg.BusinessID, msg.Type, msg.Channel).Return(&models.NotificationTemplate{
		Subject: "Booking confirmed",
		Body:    "See you soon, {{customerName}}",
	}, nil)
	logEntry := &models.NotificationLog{ID: uuid.New()}
	f.logs.On("CreatePending", mock.Anything, mock.Anything).Return(logEntry, nil)
	f.provider.On("Send", mock.Anything, msg.Recipient, "Booking confirmed", "See you soon, Dana").
		Return("msg-123", nil)
	f.logs.On("MarkSent", logEntry.ID, "msg-123").Return(nil)

	result, errClass := f.service.Deliver(context.Background(), msg)

	assert.True(t, result.Success)
	assert.Equal(t, "msg-123", result.MessageID)
	assert.Equal(t, "", errClass)
	// preferences were never consulted for a transactional type
	f.prefs.AssertNotCalled(t, "GetPreference", mock.Anything)
}

func TestDeliverMissingTemplate(t *testing.T) {
	f := newNotificationFixture(models.ChannelEmail)
	msg := emailMessage(models.TypeStatusUpdate)

	f.settings.On("NotificationTypeEnabled", msg.BusinessID, msg.Type).Return(true, nil)
	f.templates.On("GetTemplate", msg.BusinessID, msg.Type, msg.Channel).Return(nil, nil)

	result, errClass := f.service.Deliver(context.Background(), msg)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "no template configured")
	assert.Equal(t, "", errClass)
	f.logs.AssertNotCalled(t, "CreatePending", mock.Anything, mock.Anything)
}

func TestDeliverUnknownPlaceholderLeftVerbatim(t *testing.T) {
	f := newNotificationFixture(models.ChannelEmail)
	msg := emailMessage(models.TypeStatusUpdate)

	f.settings.On("NotificationTypeEnabled", msg.BusinessID, msg.Type).Return(true, nil)
	f.templates.On("GetTemplate", msg.BusinessID, msg.Type, msg.Channel).Return(&models.NotificationTemplate{
		Subject: "Update for {{petName}}",
		Body:    "Hi {{customerName}}, {{groomerName}} finished with {{petName}}.",
	}, nil)
	logEntry := &models.NotificationLog{ID: uuid.New()}
	f.logs.On("CreatePending", mock.Anything, mock.Anything).Return(logEntry, nil)
	f.provider.On("Send", mock.Anything, msg.Recipient, "Update for Biscuit",
		"Hi Dana, {{groomerName}} finished with Biscuit.").Return("id", nil)
	f.logs.On("MarkSent", logEntry.ID, "id").Return(nil)

	result, _ := f.service.Deliver(context.Background(), msg)

	assert.True(t, result.Success)
	f.provider.AssertExpectations(t)
}

func TestDeliverSMSTruncation(t *testing.T) {
	f := newNotificationFixture(models.ChannelSMS)
	customerID := uuid.New()
	msg := NotificationMessage{
		BusinessID: uuid.New(),
		Type:       models.TypeStatusUpdate,
		Channel:    models.ChannelSMS,
		Recipient:  "+15550001111",
		CustomerID: &customerID,
	}

	f.settings.On("NotificationTypeEnabled", msg.BusinessID, msg.Type).Return(true, nil)
	f.templates.On("GetTemplate", msg.BusinessID, msg.Type, msg.Channel).Return(&models.NotificationTemplate{
		Body: strings.Repeat("x", SMSMaxLength+200),
	}, nil)
	logEntry := &models.NotificationLog{ID: uuid.New()}
	f.logs.On("CreatePending", mock.Anything, mock.Anything).Return(logEntry, nil)
	f.provider.On("Send", mock.Anything, msg.Recipient, "", mock.MatchedBy(func(body string) bool {
		return len(body) == SMSMaxLength
	})).Return("sid", nil)
	f.logs.On("MarkSent", logEntry.ID, "sid").Return(nil)

	result, _ := f.service.Deliver(context.Background(), msg)

	assert.True(t, result.Success)
	f.provider.AssertExpectations(t)
}

func TestDeliverFailureMarksLogFailed(t *testing.T) {
	f := newNotificationFixture(models.ChannelEmail)
	msg := emailMessage(models.TypeBookingConfirmation)

	f.settings.On("NotificationTypeEnabled", msg.BusinessID, msg.Type).Return(true, nil)
	f.templates.On("GetTemplate", msg.BusinessID, msg.Type, msg.Channel).Return(&models.NotificationTemplate{
		Body: "hello",
	}, nil)
	logEntry := &models.NotificationLog{ID: uuid.New()}
	f.logs.On("CreatePending", mock.Anything, "hello").Return(logEntry, nil)
	f.provider.On("Send", mock.Anything, msg.Recipient, mock.Anything, "hello").
		Return("", errors.New("connection reset by peer"))
	f.logs.On("MarkFailed", logEntry.ID, "connection reset by peer").Return(nil)

	result, errClass := f.service.Deliver(context.Background(), msg)

	assert.False(t, result.Success)
	assert.Equal(t, models.ErrorTransient, errClass)
	f.logs.AssertExpectations(t)
}

func TestSendSchedulesRetryOnTransientFailure(t *testing.T) {
	f := newNotificationFixture(models.ChannelEmail)
	msg := emailMessage(models.TypeBookingConfirmation)

	f.settings.On("NotificationTypeEnabled", msg.BusinessID, msg.Type).Return(true, nil)
	f.templates.On("GetTemplate", msg.BusinessID, msg.Type, msg.Channel).Return(&models.NotificationTemplate{
		Body: "hello",
	}, nil)
	logEntry := &models.NotificationLog{ID: uuid.New()}
	f.logs.On("CreatePending", mock.Anything, mock.Anything).Return(logEntry, nil)
	f.provider.On("Send", mock.Anything, msg.Recipient, mock.Anything, mock.Anything).
		Return("", errors.New("timeout waiting for provider"))
	f.logs.On("MarkFailed", logEntry.ID, mock.Anything).Return(nil)
	f.retries.On("Schedule", msg, "timeout waiting for provider").Return(nil)

	result := f.service.Send(context.Background(), msg)

	assert.False(t, result.Success)
	f.retries.AssertExpectations(t)
}

func TestSendDoesNotRetryPermanentFailure(t *testing.T) {
	f := newNotificationFixture(models.ChannelEmail)
	msg := emailMessage(models.TypeBookingConfirmation)

	f.settings.On("NotificationTypeEnabled", msg.BusinessID, msg.Type).Return(true, nil)
	f.templates.On("GetTemplate", msg.BusinessID, msg.Type, msg.Channel).Return(&models.NotificationTemplate{
		Body: "hello",
	}, nil)
	logEntry := &models.NotificationLog{ID: uuid.New()}
	f.logs.On("CreatePending", mock.Anything, mock.Anything).Return(logEntry, nil)
	f.provider.On("Send", mock.Anything, msg.Recipient, mock.Anything, mock.Anything).
		Return("", &ProviderError{Class: models.ErrorPermanent, Err: errors.New("address is blacklisted")})
	f.logs.On("MarkFailed", logEntry.ID, mock.Anything).Return(nil)

	result := f.service.Send(context.Background(), msg)

	assert.False(t, result.Success)
	f.retries.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything)
}

func TestSendDoesNotRetryEligibilityFailure(t *testing.T) {
	f := newNotificationFixture(models.ChannelEmail)
	msg := emailMessage(models.TypeBookingConfirmation)

	f.settings.On("NotificationTypeEnabled", msg.BusinessID, msg.Type).Return(false, nil)

	result := f.service.Send(context.Background(), msg)

	assert.False(t, result.Success)
	f.retries.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything)
}

func TestDeliverNoProviderForChannel(t *testing.T) {
	f := newNotificationFixture(models.ChannelEmail)
	customerID := uuid.New()
	msg := NotificationMessage{
		BusinessID: uuid.New(),
		Type:       models.TypeStatusUpdate,
		Channel:    models.ChannelSMS,
		Recipient:  "+15550001111",
		CustomerID: &customerID,
	}

	f.settings.On("NotificationTypeEnabled", msg.BusinessID, msg.Type).Return(true, nil)
	f.templates.On("GetTemplate", msg.BusinessID, msg.Type, msg.Channel).Return(&models.NotificationTemplate{
		Body: "hello",
	}, nil)
	logEntry := &models.NotificationLog{ID: uuid.New()}
	f.logs.On("CreatePending", mock.Anything, mock.Anything).Return(logEntry, nil)
	f.logs.On("MarkFailed", logEntry.ID, mock.Anything).Return(nil)

	result, errClass := f.service.Deliver(context.Background(), msg)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "no provider configured")
	assert.Equal(t, "", errClass)
	f.logs.AssertExpectations(t)
}

func TestRenderTemplate(t *testing.T) {
	data := map[string]string{"customerName": "Dana", "time": "2:30 PM"}

	rendered := RenderTemplate("Hi {{customerName}}, see you at {{ time }}. Ref {{bookingRef}}.", data)

	assert.Equal(t, "Hi Dana, see you at 2:30 PM. Ref {{bookingRef}}.", rendered)
}

func TestIsTransactionalType(t *testing.T) {
	for _, notifType := range []string{
		models.TypeBookingConfirmation,
		models.TypeBookingCancellation,
		models.TypeStatusUpdate,
		models.TypeReportReady,
		models.TypeWaitlistAvailable,
	} {
		assert.True(t, IsTransactionalType(notifType), notifType)
	}
	assert.False(t, IsTransactionalType("promotion"))
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&ProviderError{Class: models.ErrorConfiguration, Err: errors.New("whatever")}, models.ErrorConfiguration},
		{errors.New("invalid recipient"), models.ErrorPermanent},
		{errors.New("the number is not a valid phone number"), models.ErrorPermanent},
		{errors.New("could not authenticate request"), models.ErrorConfiguration},
		{errors.New("401 Unauthorized"), models.ErrorConfiguration},
		{errors.New("i/o timeout"), models.ErrorTransient},
		{errors.New("something entirely new"), models.ErrorTransient},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, ClassifyError(tc.err), tc.err.Error())
	}
}
