package composer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvnguyen/socialapp-client/internal/api"
	"github.com/dvnguyen/socialapp-client/pkg/errors"
	"github.com/dvnguyen/socialapp-client/pkg/logger"
)

// resetAPI stubs the three endpoints the reset flow touches.
type resetAPI struct {
	api.Client

	forgotCalls int
	verifyErr   error
	lastOTP     string
	resetCalled bool
	resetToken  string
}

func (f *resetAPI) ForgotPassword(_ context.Context, _ string) error {
	f.forgotCalls++
	return nil
}

func (f *resetAPI) VerifyOTP(_ context.Context, _, otp string) (string, error) {
	f.lastOTP = otp
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return "reset-token-123", nil
}

func (f *resetAPI) ResetPassword(_ context.Context, _, token, _ string) error {
	f.resetCalled = true
	f.resetToken = token
	return nil
}

func newResetFlow(t *testing.T, stub *resetAPI) *ResetFlow {
	t.Helper()
	return NewResetFlow(stub, logger.New(logger.Opts{}), "anna@example.com")
}

func TestResetFlowVerifiesOnSixthDigit(t *testing.T) {
	stub := &resetAPI{}
	flow := newResetFlow(t, stub)
	ctx := context.Background()

	require.NoError(t, flow.Start(ctx))
	assert.Equal(t, 1, stub.forgotCalls)

	for i, r := range "12345" {
		done, err := flow.SetDigit(ctx, i, r)
		require.NoError(t, err)
		assert.False(t, done)
		assert.Empty(t, stub.lastOTP, "no request before the code is complete")
	}

	done, err := flow.SetDigit(ctx, 5, '6')
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, "123456", stub.lastOTP)
	assert.True(t, flow.Verified())
}

func TestResetFlowPasteVerifies(t *testing.T) {
	stub := &resetAPI{}
	flow := newResetFlow(t, stub)

	done, err := flow.Paste(context.Background(), "65-43 21")
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, "654321", stub.lastOTP)
	assert.True(t, flow.Verified())
}

func TestResetFlowRejectedCodeClearsEntry(t *testing.T) {
	stub := &resetAPI{
		verifyErr: errors.WrapWithCode(errors.ErrValidation, "invalid_otp", "invalid or expired OTP"),
	}
	flow := newResetFlow(t, stub)

	done, err := flow.Paste(context.Background(), "111111")
	assert.True(t, done)
	require.Error(t, err)
	assert.False(t, flow.Verified())
	assert.Empty(t, flow.OTP().Code(), "rejected code empties the inputs")
}

func TestResetFlowResendCooldown(t *testing.T) {
	stub := &resetAPI{}
	flow := newResetFlow(t, stub)
	ctx := context.Background()

	current := time.Now()
	flow.now = func() time.Time { return current }

	require.NoError(t, flow.Start(ctx))
	assert.False(t, flow.CanResend())

	err := flow.Resend(ctx)
	require.Error(t, err)
	assert.Equal(t, "resend_cooldown", errors.GetCode(err))
	assert.Equal(t, 1, stub.forgotCalls)

	current = current.Add(ResendCooldown)
	assert.True(t, flow.CanResend())
	require.NoError(t, flow.Resend(ctx))
	assert.Equal(t, 2, stub.forgotCalls)
	assert.False(t, flow.CanResend(), "resend re-arms the cooldown")
}

func TestResetFlowComplete(t *testing.T) {
	stub := &resetAPI{}
	flow := newResetFlow(t, stub)
	ctx := context.Background()

	err := flow.Complete(ctx, "newpass1", "newpass1")
	require.Error(t, err)
	assert.Equal(t, "not_verified", errors.GetCode(err))

	_, err = flow.Paste(ctx, "123456")
	require.NoError(t, err)

	err = flow.Complete(ctx, "newpass1", "different")
	require.Error(t, err)
	assert.Equal(t, "password_mismatch", errors.GetCode(err))
	assert.False(t, stub.resetCalled)

	require.NoError(t, flow.Complete(ctx, "newpass1", "newpass1"))
	assert.True(t, stub.resetCalled)
	assert.Equal(t, "reset-token-123", stub.resetToken)
}
