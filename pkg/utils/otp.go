package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mediavault/mediavault-backend/internal/common"
)

// OTPPurpose selects the shape of a generated one-time code.
type OTPPurpose string

const (
	OTPVerifyUser       OTPPurpose = "verifyUser"
	OTPReset            OTPPurpose = "reset"
	OTPMembershipNumber OTPPurpose = "membershipNumber"
)

const otpLength = 6

// GenerateOTP produces a one-time code for the given purpose.
//   - verifyUser: a uniform 6-digit decimal number in [100000, 999999]
//   - reset / membershipNumber: the first 6 hex characters of a random
//     UUID with the dashes stripped
//
// Codes are not deduplicated; collisions are the caller's problem when
// uniqueness matters.
func GenerateOTP(purpose OTPPurpose) (string, error) {
	switch purpose {
	case OTPVerifyUser:
		n, err := rand.Int(rand.Reader, big.NewInt(900000))
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(n.Int64()+100000, 10), nil
	case OTPReset, OTPMembershipNumber:
		return strings.ReplaceAll(uuid.NewString(), "-", "")[:otpLength], nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedOTPType, purpose)
	}
}
