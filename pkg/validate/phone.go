package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonDigitPattern    = regexp.MustCompile(`\D`)
	intlPrefixPattern  = regexp.MustCompile(`^\+\d{1,3}`)
	usParenPattern     = regexp.MustCompile(`^\(\d{3}\)\s?\d{3}-?\d{4}$`)
	// Go's regexp engine (RE2) has no backreferences, so "same digit
	// repeated N+ times" is spelled out as an alternation per digit.
	repeatDigitPattern = regexp.MustCompile(`^(?:0{7,}|1{7,}|2{7,}|3{7,}|4{7,}|5{7,}|6{7,}|7{7,}|8{7,}|9{7,})$`)
	longRepeatPattern  = regexp.MustCompile(`^(?:0{10,}|1{10,}|2{10,}|3{10,}|4{10,}|5{10,}|6{10,}|7{10,}|8{10,}|9{10,})$`)
)

// garbageDigits holds digit runs that are never phone numbers regardless
// of length: keyboard sequences and their reverse.
var garbageDigits = map[string]bool{
	"1234567890": true,
	"0987654321": true,
}

func allSame(digits string, c byte) bool {
	for i := range len(digits) {
		if digits[i] != c {
			return false
		}
	}
	return digits != ""
}

// Phone scores a raw phone candidate using the default validator.
func Phone(raw string) Result { return defaultValidator.Phone(raw) }

// PhoneStrict applies the fill-time phone gate using the default validator.
func PhoneStrict(raw string) bool { return defaultValidator.PhoneStrict(raw) }

// Phone scores a raw phone candidate.
//
// The candidate is normalized to digits, run through the shared reject set
// (timestamps, length bounds, garbage sequences), then scored by format:
// international prefix and US parenthesized formats score High, bare
// 10/11-digit runs Medium, anything else in range Low. Israeli
// international (972, 12 digits) and mobile (05, 10 digits) shapes
// override to High.
func (v *Validator) Phone(raw string) Result {
	if raw == "" {
		return Result{}
	}

	cleaned := nonDigitPattern.ReplaceAllString(raw, "")

	if looksLikeTimestamp(cleaned, v.now()) {
		return Result{Reason: "Timestamp detected"}
	}
	if len(cleaned) < 7 {
		return Result{Reason: "Too short"}
	}
	if len(cleaned) > 15 {
		return Result{Reason: "Too long"}
	}
	if reason := garbageReason(cleaned); reason != "" {
		return Result{Reason: reason}
	}

	confidence := low
	switch {
	case intlPrefixPattern.MatchString(raw):
		confidence = high
	case usParenPattern.MatchString(raw):
		confidence = high
	case len(cleaned) == 10:
		confidence = medium
	case len(cleaned) == 11 && strings.HasPrefix(cleaned, "1"):
		confidence = medium
	}

	// Israeli formats are common in our data and unambiguous.
	if strings.HasPrefix(cleaned, "972") && len(cleaned) == 12 {
		confidence = high
	} else if strings.HasPrefix(cleaned, "05") && len(cleaned) == 10 {
		confidence = high
	}

	return Result{Valid: true, Confidence: confidence, Cleaned: cleaned}
}

// garbageReason returns a rejection reason for digit runs that cannot be
// phone numbers, or "" if the run passes.
func garbageReason(cleaned string) string {
	if allSame(cleaned, '0') || allSame(cleaned, '1') ||
		repeatDigitPattern.MatchString(cleaned) || garbageDigits[cleaned] {
		return "Invalid pattern"
	}
	return ""
}

// PhoneStrict applies the fill-time phone gate.
//
// A +-prefixed candidate with 7-15 digits passes outright. Everything else
// faces stricter rules than the scoring path: the US area code of
// 10-digit and 1+10-digit numbers must be plausible, 10-digit numbers may
// not start with 0 or 1, non-+ numbers under 10 digits are rejected, and
// anything over 12 digits is treated as a timestamp or ID.
func (v *Validator) PhoneStrict(raw string) bool {
	if raw == "" {
		return false
	}

	cleaned := nonDigitPattern.ReplaceAllString(raw, "")

	if strings.HasPrefix(strings.TrimSpace(raw), "+") {
		return len(cleaned) >= 7 && len(cleaned) <= 15
	}

	if len(cleaned) < 7 || len(cleaned) > 15 {
		return false
	}
	if looksLikeTimestamp(cleaned, v.now()) {
		return false
	}

	// A 10-digit run starting with 1 is a country code plus a truncated
	// number, not a dialable US number.
	if len(cleaned) == 10 && strings.HasPrefix(cleaned, "1") {
		return false
	}
	if len(cleaned) == 11 && strings.HasPrefix(cleaned, "1") && !validUSAreaCode(cleaned[1:4]) {
		return false
	}
	if len(cleaned) == 10 {
		if strings.HasPrefix(cleaned, "0") || !validUSAreaCode(cleaned[:3]) {
			return false
		}
	}

	if garbageReason(cleaned) != "" || longRepeatPattern.MatchString(cleaned) {
		return false
	}
	// Non-+ numbers under 10 digits are overwhelmingly IDs and fragments.
	if len(cleaned) <= 9 {
		return false
	}
	if len(cleaned) > 12 {
		return false
	}
	if n, err := strconv.ParseInt(cleaned, 10, 64); err == nil && len(cleaned) > 11 && n > 99999999999 {
		return false
	}

	return true
}

// validUSAreaCode reports whether a 3-digit string is a plausible US area
// code: 201-999, not an N11 service code, not a known test code.
func validUSAreaCode(code string) bool {
	n, err := strconv.Atoi(code)
	if err != nil {
		return false
	}
	if n < 201 || n > 999 {
		return false
	}
	if strings.HasSuffix(code, "11") {
		return false
	}
	switch code {
	case "555", "000", "001", "999":
		return false
	}
	return true
}
