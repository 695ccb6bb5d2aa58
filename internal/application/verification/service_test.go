package verification

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/email-verify-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockDirectory struct{ mock.Mock }

func (m *mockDirectory) Exists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockCodeStore struct{ mock.Mock }

func (m *mockCodeStore) Put(ctx context.Context, v *domain.VerificationCode) error {
	return m.Called(ctx, v).Error(0)
}
func (m *mockCodeStore) Get(ctx context.Context, email string) (*domain.VerificationCode, error) {
	args := m.Called(ctx, email)
	if v, _ := args.Get(0).(*domain.VerificationCode); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCodeStore) Delete(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(to, subject, textBody, htmlBody string) error {
	return m.Called(to, subject, textBody, htmlBody).Error(0)
}

func newService(dir *mockDirectory, cs *mockCodeStore, ml *mockMailer) Service {
	return NewService(ServiceDeps{Directory: dir, Codes: cs, Mailer: ml})
}

// --- ValidateEmail ---

func TestValidateEmail_Exists(t *testing.T) {
	dir := &mockDirectory{}
	dir.On("Exists", mock.Anything, "a@x.com").Return(true, nil)

	ok, err := newService(dir, nil, nil).ValidateEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateEmail_NotExists(t *testing.T) {
	dir := &mockDirectory{}
	dir.On("Exists", mock.Anything, "nobody@x.com").Return(false, nil)

	ok, err := newService(dir, nil, nil).ValidateEmail(context.Background(), "nobody@x.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateEmail_DirectoryError_Propagated(t *testing.T) {
	dir := &mockDirectory{}
	dir.On("Exists", mock.Anything, "a@x.com").Return(false, errors.New("rpc down"))

	_, err := newService(dir, nil, nil).ValidateEmail(context.Background(), "a@x.com")
	assert.ErrorContains(t, err, "rpc down")
}

// --- SendCode ---

func TestSendCode_UnknownEmail_NoSideEffects(t *testing.T) {
	dir := &mockDirectory{}
	cs := &mockCodeStore{}
	ml := &mockMailer{}
	dir.On("Exists", mock.Anything, "nobody@x.com").Return(false, nil)

	err := newService(dir, cs, ml).SendCode(context.Background(), "nobody@x.com")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	cs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	ml.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendCode_DirectoryError_NoSideEffects(t *testing.T) {
	dir := &mockDirectory{}
	cs := &mockCodeStore{}
	dir.On("Exists", mock.Anything, "a@x.com").Return(false, errors.New("rpc down"))

	err := newService(dir, cs, nil).SendCode(context.Background(), "a@x.com")

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	cs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestSendCode_HappyPath(t *testing.T) {
	dir := &mockDirectory{}
	cs := &mockCodeStore{}
	ml := &mockMailer{}
	dir.On("Exists", mock.Anything, "a@x.com").Return(true, nil)

	var stored *domain.VerificationCode
	cs.On("Put", mock.Anything, mock.AnythingOfType("*domain.VerificationCode")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.VerificationCode) }).
		Return(nil)
	ml.On("Send", "a@x.com", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	before := time.Now()
	err := newService(dir, cs, ml).SendCode(context.Background(), "a@x.com")
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, "a@x.com", stored.Email)
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{6}$`), stored.Code)

	wantExpiry := before.Add(10 * time.Minute).Unix()
	assert.InDelta(t, wantExpiry, stored.ExpiresAt, 5)

	// The emitted code must be what the email carries.
	sentText := ml.Calls[0].Arguments.String(2)
	assert.Contains(t, sentText, stored.Code)
}

func TestSendCode_StoreError_NoMailSent(t *testing.T) {
	dir := &mockDirectory{}
	cs := &mockCodeStore{}
	ml := &mockMailer{}
	dir.On("Exists", mock.Anything, "a@x.com").Return(true, nil)
	cs.On("Put", mock.Anything, mock.Anything).Return(errors.New("dynamo down"))

	err := newService(dir, cs, ml).SendCode(context.Background(), "a@x.com")

	assert.ErrorContains(t, err, "dynamo down")
	ml.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendCode_DeliveryFailure_CodeStaysPersisted(t *testing.T) {
	dir := &mockDirectory{}
	cs := &mockCodeStore{}
	ml := &mockMailer{}
	dir.On("Exists", mock.Anything, "a@x.com").Return(true, nil)
	cs.On("Put", mock.Anything, mock.Anything).Return(nil)
	ml.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp timeout"))

	err := newService(dir, cs, ml).SendCode(context.Background(), "a@x.com")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDelivery))
	cs.AssertCalled(t, "Put", mock.Anything, mock.Anything)
	// No compensating delete: the code remains valid for later verify calls.
	cs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// --- VerifyCode ---

func storedCode(code string, ttl time.Duration) *domain.VerificationCode {
	return &domain.VerificationCode{
		Email:     "a@x.com",
		Code:      code,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	}
}

func TestVerifyCode_NoRow_IsFalseNotError(t *testing.T) {
	cs := &mockCodeStore{}
	cs.On("Get", mock.Anything, "a@x.com").Return(nil, domain.ErrNotFound)

	ok, err := newService(nil, cs, nil).VerifyCode(context.Background(), "a@x.com", "3F9A2B")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyCode_StoreError_Propagated(t *testing.T) {
	cs := &mockCodeStore{}
	cs.On("Get", mock.Anything, "a@x.com").Return(nil, errors.New("dynamo down"))

	_, err := newService(nil, cs, nil).VerifyCode(context.Background(), "a@x.com", "3F9A2B")
	assert.ErrorContains(t, err, "dynamo down")
}

func TestVerifyCode_Expired_AlwaysFalse(t *testing.T) {
	cs := &mockCodeStore{}
	cs.On("Get", mock.Anything, "a@x.com").Return(storedCode("3F9A2B", -time.Minute), nil)

	// Even the exact code is rejected after expiry.
	ok, err := newService(nil, cs, nil).VerifyCode(context.Background(), "a@x.com", "3F9A2B")
	require.NoError(t, err)
	assert.False(t, ok)
	cs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestVerifyCode_Mismatch_RowKept(t *testing.T) {
	cs := &mockCodeStore{}
	cs.On("Get", mock.Anything, "a@x.com").Return(storedCode("3F9A2B", time.Minute), nil)

	ok, err := newService(nil, cs, nil).VerifyCode(context.Background(), "a@x.com", "FFFFFF")
	require.NoError(t, err)
	assert.False(t, ok)
	cs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestVerifyCode_Match_CaseInsensitive_DeletesRow(t *testing.T) {
	cs := &mockCodeStore{}
	cs.On("Get", mock.Anything, "a@x.com").Return(storedCode("3F9A2B", time.Minute), nil)
	cs.On("Delete", mock.Anything, "a@x.com").Return(nil)

	ok, err := newService(nil, cs, nil).VerifyCode(context.Background(), "a@x.com", "3f9a2b")
	require.NoError(t, err)
	assert.True(t, ok)
	cs.AssertCalled(t, "Delete", mock.Anything, "a@x.com")
}

func TestVerifyCode_SecondUse_IsFalse(t *testing.T) {
	cs := &mockCodeStore{}
	cs.On("Get", mock.Anything, "a@x.com").Return(storedCode("3F9A2B", time.Minute), nil).Once()
	cs.On("Delete", mock.Anything, "a@x.com").Return(nil)
	cs.On("Get", mock.Anything, "a@x.com").Return(nil, domain.ErrNotFound)

	svc := newService(nil, cs, nil)

	ok, err := svc.VerifyCode(context.Background(), "a@x.com", "3F9A2B")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.VerifyCode(context.Background(), "a@x.com", "3F9A2B")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyCode_DeleteFailure_StillVerifies(t *testing.T) {
	cs := &mockCodeStore{}
	cs.On("Get", mock.Anything, "a@x.com").Return(storedCode("3F9A2B", time.Minute), nil)
	cs.On("Delete", mock.Anything, "a@x.com").Return(errors.New("dynamo down"))

	ok, err := newService(nil, cs, nil).VerifyCode(context.Background(), "a@x.com", "3F9A2B")
	require.NoError(t, err)
	assert.True(t, ok)
}
