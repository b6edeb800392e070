package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOTPEntrySetDigit(t *testing.T) {
	o := NewOTPEntry()

	for i := 0; i < OTPDigits-1; i++ {
		assert.False(t, o.SetDigit(i, rune('1'+i)))
	}
	assert.True(t, o.SetDigit(OTPDigits-1, '6'), "sixth digit completes the entry")
	assert.Equal(t, "123456", o.Code())
	assert.True(t, o.Filled())
}

func TestOTPEntryLastDigitAloneDoesNotComplete(t *testing.T) {
	o := NewOTPEntry()

	assert.False(t, o.SetDigit(OTPDigits-1, '9'), "entry with gaps is not complete")
	assert.False(t, o.Filled())
}

func TestOTPEntryRejectsNonDigits(t *testing.T) {
	o := NewOTPEntry()

	assert.False(t, o.SetDigit(0, 'a'))
	assert.False(t, o.SetDigit(-1, '1'))
	assert.False(t, o.SetDigit(OTPDigits, '1'))
	assert.Empty(t, o.Code())
}

func TestOTPEntryBackspace(t *testing.T) {
	o := NewOTPEntry()
	for i := 0; i < OTPDigits; i++ {
		o.SetDigit(i, '7')
	}

	o.ClearDigit(2)
	assert.False(t, o.Filled())
	assert.Equal(t, "77777", o.Code())
}

func TestOTPEntryPaste(t *testing.T) {
	t.Run("plain six digits", func(t *testing.T) {
		o := NewOTPEntry()
		assert.True(t, o.Paste("123456"))
		assert.Equal(t, "123456", o.Code())
	})

	t.Run("separators are stripped", func(t *testing.T) {
		o := NewOTPEntry()
		assert.True(t, o.Paste("12-34 56"))
		assert.Equal(t, "123456", o.Code())
	})

	t.Run("too few digits rejected", func(t *testing.T) {
		o := NewOTPEntry()
		assert.False(t, o.Paste("12345"))
		assert.Empty(t, o.Code())
	})

	t.Run("too many digits rejected", func(t *testing.T) {
		o := NewOTPEntry()
		assert.False(t, o.Paste("1234567"))
		assert.Empty(t, o.Code())
	})
}

func TestOTPEntryClear(t *testing.T) {
	o := NewOTPEntry()
	o.Paste("123456")

	o.Clear()
	assert.Empty(t, o.Code())
	assert.False(t, o.Filled())
}
