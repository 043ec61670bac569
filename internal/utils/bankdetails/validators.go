// Package bankdetails validates beneficiary bank identifiers (IBAN, SWIFT/BIC)
// and ISO 4217 currency codes.
package bankdetails

import (
	"math/big"
	"regexp"
	"strings"

	"github.com/flowpay/flow_backend/internal/apperrors"
)

var (
	ibanPattern  = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]+$`)
	swiftPattern = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
	ccyPattern   = regexp.MustCompile(`^[A-Z]{3}$`)

	mod97 = big.NewInt(97)
)

// NormalizeIBAN strips spaces and uppercases an IBAN.
func NormalizeIBAN(iban string) string {
	return strings.ToUpper(strings.ReplaceAll(iban, " ", ""))
}

// ValidateIBAN checks length, structure and the ISO 13616 mod-97 checksum.
func ValidateIBAN(iban string) error {
	iban = NormalizeIBAN(iban)
	if iban == "" {
		return apperrors.NewValidationError("iban: IBAN is required")
	}
	if len(iban) < 15 || len(iban) > 34 {
		return apperrors.NewValidationError("iban: IBAN must be between 15 and 34 characters")
	}
	if !ibanPattern.MatchString(iban) {
		return apperrors.NewValidationError("iban: IBAN must start with 2 letters and 2 digits")
	}

	// Move the first four characters to the end, then substitute A=10..Z=35.
	rearranged := iban[4:] + iban[:4]
	var sb strings.Builder
	for _, ch := range rearranged {
		if ch >= '0' && ch <= '9' {
			sb.WriteRune(ch)
		} else {
			sb.WriteString(big.NewInt(int64(ch-'A') + 10).String())
		}
	}

	n, ok := new(big.Int).SetString(sb.String(), 10)
	if !ok {
		return apperrors.NewValidationError("iban: IBAN contains invalid characters")
	}
	if new(big.Int).Mod(n, mod97).Int64() != 1 {
		return apperrors.NewValidationError("iban: IBAN checksum validation failed")
	}
	return nil
}

// FormatIBAN renders an IBAN in space-separated groups of four.
func FormatIBAN(iban string) string {
	iban = NormalizeIBAN(iban)
	var groups []string
	for i := 0; i < len(iban); i += 4 {
		end := i + 4
		if end > len(iban) {
			end = len(iban)
		}
		groups = append(groups, iban[i:end])
	}
	return strings.Join(groups, " ")
}

// NormalizeSwiftBIC strips spaces and uppercases a SWIFT/BIC code.
func NormalizeSwiftBIC(swift string) string {
	return strings.ToUpper(strings.ReplaceAll(swift, " ", ""))
}

// ValidateSwiftBIC checks the 8-or-11 character SWIFT/BIC structure.
func ValidateSwiftBIC(swift string) error {
	swift = NormalizeSwiftBIC(swift)
	if swift == "" {
		return apperrors.NewValidationError("swiftBic: SWIFT/BIC code is required")
	}
	if len(swift) != 8 && len(swift) != 11 {
		return apperrors.NewValidationError("swiftBic: SWIFT/BIC code must be 8 or 11 characters")
	}
	if !swiftPattern.MatchString(swift) {
		return apperrors.NewValidationError("swiftBic: invalid SWIFT/BIC format")
	}
	return nil
}

// ValidateCurrencyCode checks a 3-letter ISO 4217 code shape. Whether the
// currency is actually quotable is the rate provider's call.
func ValidateCurrencyCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return apperrors.NewValidationError("currency: currency code is required")
	}
	if !ccyPattern.MatchString(code) {
		return apperrors.NewValidationError("currency: currency code must be 3 letters")
	}
	return nil
}

// ValidateAccountHolderName rejects empty or unreasonably short holder names.
func ValidateAccountHolderName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidationError("accountHolderName: account holder name is required")
	}
	if len(name) < 2 {
		return apperrors.NewValidationError("accountHolderName: account holder name is too short")
	}
	return nil
}
