package composer

import (
	"strings"
	"sync"
	"unicode"
)

// OTPDigits is the length of the one-time code sent by the API.
const OTPDigits = 6

// OTPEntry models the six single-digit inputs of the verification screen.
// Filling the last cell completes the entry; the reset flow reacts to that by
// verifying immediately, without an explicit submit action.
type OTPEntry struct {
	mu     sync.Mutex
	digits [OTPDigits]rune
}

func NewOTPEntry() *OTPEntry {
	return &OTPEntry{}
}

// SetDigit writes one cell. Non-digit input is ignored. It reports whether
// the entry is now complete.
func (o *OTPEntry) SetDigit(index int, r rune) bool {
	if index < 0 || index >= OTPDigits || !unicode.IsDigit(r) {
		return false
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.digits[index] = r
	return index == OTPDigits-1 && o.filledLocked()
}

// ClearDigit empties one cell (backspace).
func (o *OTPEntry) ClearDigit(index int) {
	if index < 0 || index >= OTPDigits {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.digits[index] = 0
}

// Paste fills the whole entry from pasted text. Everything that is not a
// digit is stripped; the paste is accepted only when exactly six digits
// remain. It reports whether the entry completed.
func (o *OTPEntry) Paste(text string) bool {
	var digits []rune
	for _, r := range text {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
			if len(digits) > OTPDigits {
				return false
			}
		}
	}
	if len(digits) != OTPDigits {
		return false
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	copy(o.digits[:], digits)
	return true
}

// Code returns the entered digits as a string, skipping empty cells.
func (o *OTPEntry) Code() string {
	o.mu.Lock()
	defer o.mu.Unlock()

	var b strings.Builder
	for _, d := range o.digits {
		if d != 0 {
			b.WriteRune(d)
		}
	}
	return b.String()
}

// Filled reports whether every cell holds a digit.
func (o *OTPEntry) Filled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.filledLocked()
}

// Clear empties every cell, e.g. after a rejected code.
func (o *OTPEntry) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.digits = [OTPDigits]rune{}
}

func (o *OTPEntry) filledLocked() bool {
	for _, d := range o.digits {
		if d == 0 {
			return false
		}
	}
	return true
}
