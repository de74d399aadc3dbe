// Package gravatar derives avatar URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	defaultSize   = "200"
	defaultRating = "pg"
	defaultImage  = "mm"
)

// URL returns the gravatar image URL for an email address. The derivation is
// deterministic and case-insensitive with respect to the email.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	hash := hex.EncodeToString(sum[:])
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%s&r=%s&d=%s",
		hash, defaultSize, defaultRating, defaultImage)
}
