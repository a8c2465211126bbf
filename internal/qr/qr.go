// Package qr issues and checks the opaque verification tokens printed on
// drone-delivery QR codes.
package qr

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// TTL is the validity window of an issued token.
const TTL = 5 * time.Minute

const prefix = "DRONE-"

var reToken = regexp.MustCompile(`^DRONE-[A-F0-9]{16}$`)

// Generate derives a token from the order, the user and the issue time,
// salted with 8 random bytes. The digest is truncated to 16 hex characters,
// so the token is opaque: nothing can be recovered from it, it is only ever
// compared against the stored copy.
func Generate(orderID, userID string, now time.Time) (string, error) {
	salt := make([]byte, 8)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("qr salt: %w", err)
	}
	raw := fmt.Sprintf("%s-%s-%s-%s", orderID, userID, now.Format(time.RFC3339Nano), hex.EncodeToString(salt))
	sum := sha256.Sum256([]byte(raw))
	digest := hex.EncodeToString(sum[:])
	return prefix + strings.ToUpper(digest[:16]), nil
}

// ValidFormat reports whether the string looks like an issued token.
func ValidFormat(token string) bool {
	return reToken.MatchString(token)
}

// Expired reports whether a token issued with the given expiry is no longer
// redeemable at now. A zero expiry never expires (tokens issued before the
// expiry column existed).
func Expired(expiry *time.Time, now time.Time) bool {
	return expiry != nil && now.After(*expiry)
}
