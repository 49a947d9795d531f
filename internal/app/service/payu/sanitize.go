package payu

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigitRe   = regexp.MustCompile(`\D`)
	mobileRe     = regexp.MustCompile(`^[6-9]\d{9}$`) // Indian mobile numbering
	stripCharsRe = regexp.MustCompile(`[<>|]`)
)

// SanitizeInput trims, strips angle brackets and pipes, and truncates to 255
// characters. Pipes would corrupt the hash field-delimiter contract, so every
// string that enters a hash computation or a persisted record passes through
// here first. Truncation is rune-aware so multi-byte names are never cut into
// invalid UTF-8.
func SanitizeInput(s string) string {
	s = stripCharsRe.ReplaceAllString(strings.TrimSpace(s), "")
	return TruncateRunes(s, 255)
}

// TruncateRunes cuts s to at most n runes on a rune boundary.
func TruncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// ValidEmail checks basic single-@ structure.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidPhone strips non-digits and requires a 10-digit mobile number
// starting with 6-9. Swap mobileRe when porting to another locale.
func ValidPhone(s string) bool {
	return mobileRe.MatchString(nonDigitRe.ReplaceAllString(s, ""))
}

// DigitsOnly strips everything but digits, for phone normalization.
func DigitsOnly(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

// FormatAmount renders a positive amount as the fixed 2-decimal string PayU
// expects.
func FormatAmount(amount float64) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	return fmt.Sprintf("%.2f", amount), nil
}

const txnIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateTransactionID returns a fresh gateway transaction id,
// PREFIX_<unix-ms>_<6 random chars>. A new id is generated per initiation
// attempt so retried payments never collide with an in-flight one.
func GenerateTransactionID(prefix string) string {
	if prefix == "" {
		prefix = "RAJA"
	}
	b := make([]byte, 6)
	for i := range b {
		b[i] = txnIDAlphabet[rand.Intn(len(txnIDAlphabet))]
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), string(b))
}
