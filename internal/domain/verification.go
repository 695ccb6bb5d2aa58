package domain

import "time"

// VerificationCode is one outstanding email verification attempt.
// PK: email — at most one code per address; a new request overwrites the
// previous one. ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type VerificationCode struct {
	Email     string `json:"email" dynamodbav:"email"`
	Code      string `json:"code" dynamodbav:"code"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// Expired reports whether the code's expiry is strictly before now.
// Expiry is only ever checked here, at verification time; stale rows are
// left for the table TTL to reclaim.
func (v *VerificationCode) Expired(now time.Time) bool {
	return v.ExpiresAt < now.Unix()
}
