package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ResetTokenTTL is how long a password-reset token stays valid after
// the verification code was consumed.
const ResetTokenTTL = 30 * time.Minute

// IssueResetToken derives a non-persisted token proving a password-reset
// verification occurred. Format: hex(sha256(email:ts:secret)) + ":" + ts.
// It is re-validated by recomputation, so nothing is stored server-side.
func IssueResetToken(email, secret string, now time.Time) string {
	ts := strconv.FormatInt(now.Unix(), 10)
	return resetTokenHash(email, ts, secret) + ":" + ts
}

// ValidateResetToken recomputes the hash and checks the embedded
// timestamp is within ResetTokenTTL. The hash comparison is constant
// time.
func ValidateResetToken(email, token, secret string, now time.Time) bool {
	idx := strings.LastIndex(token, ":")
	if idx < 0 {
		return false
	}
	hash, ts := token[:idx], token[idx+1:]

	issued, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return false
	}
	if now.Unix()-issued > int64(ResetTokenTTL.Seconds()) {
		return false
	}

	expected := resetTokenHash(email, ts, secret)
	return subtle.ConstantTimeCompare([]byte(hash), []byte(expected)) == 1
}

func resetTokenHash(email, ts, secret string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%s", email, ts, secret)))
	return hex.EncodeToString(sum[:])
}
