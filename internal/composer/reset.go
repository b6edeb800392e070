package composer

import (
	"context"
	"sync"
	"time"

	"github.com/dvnguyen/socialapp-client/internal/api"
	"github.com/dvnguyen/socialapp-client/pkg/errors"
	"github.com/dvnguyen/socialapp-client/pkg/logger"
)

// ResendCooldown is how long the resend action stays disabled after a code
// was sent.
const ResendCooldown = 60 * time.Second

// ResetFlow drives the three-step password reset: request a code, verify it,
// set the new password. Entering the sixth digit verifies immediately.
type ResetFlow struct {
	api   api.Client
	log   logger.Logger
	email string
	otp   *OTPEntry

	mu         sync.Mutex
	resetToken string
	verifying  bool
	resendAt   time.Time

	now func() time.Time
}

func NewResetFlow(apiClient api.Client, log logger.Logger, email string) *ResetFlow {
	return &ResetFlow{
		api:   apiClient,
		log:   log.WithComponent("PasswordReset"),
		email: email,
		otp:   NewOTPEntry(),
		now:   time.Now,
	}
}

// Start requests the one-time code and arms the resend cooldown.
func (f *ResetFlow) Start(ctx context.Context) error {
	if err := f.api.ForgotPassword(ctx, f.email); err != nil {
		return err
	}
	f.mu.Lock()
	f.resendAt = f.now().Add(ResendCooldown)
	f.mu.Unlock()
	return nil
}

// OTP exposes the entry state for rendering.
func (f *ResetFlow) OTP() *OTPEntry {
	return f.otp
}

// SetDigit writes one cell and, when that completes the code, verifies it
// right away. It reports whether the code is now verified.
func (f *ResetFlow) SetDigit(ctx context.Context, index int, r rune) (bool, error) {
	if !f.otp.SetDigit(index, r) {
		return false, nil
	}
	return true, f.verify(ctx)
}

// Paste fills the entry from pasted text and verifies on a full code.
func (f *ResetFlow) Paste(ctx context.Context, text string) (bool, error) {
	if !f.otp.Paste(text) {
		return false, nil
	}
	return true, f.verify(ctx)
}

func (f *ResetFlow) verify(ctx context.Context) error {
	f.mu.Lock()
	if f.verifying {
		f.mu.Unlock()
		return nil
	}
	f.verifying = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.verifying = false
		f.mu.Unlock()
	}()

	token, err := f.api.VerifyOTP(ctx, f.email, f.otp.Code())
	if err != nil {
		// A rejected code clears the inputs so the user can start over.
		if errors.IsValidation(err) {
			f.otp.Clear()
		}
		return err
	}

	f.mu.Lock()
	f.resetToken = token
	f.mu.Unlock()
	f.log.Info("OTP verified", "email", f.email)
	return nil
}

// Verified reports whether a reset token has been obtained.
func (f *ResetFlow) Verified() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resetToken != ""
}

// CanResend reports whether the cooldown since the last send has passed.
func (f *ResetFlow) CanResend() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.now().Before(f.resendAt)
}

// Resend requests a fresh code, clearing the current entry.
func (f *ResetFlow) Resend(ctx context.Context) error {
	if !f.CanResend() {
		return validationError("resend_cooldown", "please wait before requesting a new code")
	}
	if err := f.api.ForgotPassword(ctx, f.email); err != nil {
		return err
	}

	f.otp.Clear()
	f.mu.Lock()
	f.resendAt = f.now().Add(ResendCooldown)
	f.mu.Unlock()
	return nil
}

// Complete validates the new password and submits it with the reset token.
func (f *ResetFlow) Complete(ctx context.Context, password, confirm string) error {
	f.mu.Lock()
	token := f.resetToken
	f.mu.Unlock()
	if token == "" {
		return validationError("not_verified", "verify the code before setting a new password")
	}

	if err := ValidatePassword(password, confirm); err != nil {
		return err
	}
	return f.api.ResetPassword(ctx, f.email, token, password)
}
