package srp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/stephenoneal/warrant/pkg/protocol"
)

// TimestampLayout is the TIMESTAMP format signed into the claim, e.g.
// "Thu Mar 23 19:17:44 UTC 2017". The day of month carries no leading zero
// ("Fri Mar 3 09:07:04 UTC 2017"), as the provider's reference clients format
// it with %d. The string is signed verbatim, so a zero-padded day produces a
// signature the provider rejects.
const TimestampLayout = "Mon Jan 2 15:04:05 UTC 2006"

// FormatTimestamp formats t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ResponseInput is everything needed to answer a password verifier challenge once
// the password authentication key is known.
type ResponseInput struct {
	PoolName    string
	UserID      string
	SecretBlock string // Base64, echoed back verbatim
	Timestamp   string
	Key         []byte
	SecretHash  string // Optional
}

// Respond builds the PASSWORD_VERIFIER challenge response. It has no side effects.
func Respond(in ResponseInput) (*protocol.ChallengeResponse, error) {
	if len(in.Key) != PasswordKeyLength {
		return nil, protocol.NewFormatError(
			fmt.Sprintf("password authentication key must be %d bytes, got %d", PasswordKeyLength, len(in.Key)), nil)
	}

	secretBlock, err := base64.StdEncoding.DecodeString(in.SecretBlock)
	if err != nil {
		return nil, protocol.NewFormatError("invalid "+protocol.KeySecretBlock+" encoding", err)
	}

	return &protocol.ChallengeResponse{
		Username:       in.UserID,
		ClaimBlock:     in.SecretBlock,
		ClaimSignature: ClaimSignature(in.Key, in.PoolName, in.UserID, secretBlock, in.Timestamp),
		Timestamp:      in.Timestamp,
		SecretHash:     in.SecretHash,
	}, nil
}

// ClaimSignature computes base64(HMAC-SHA256(key, poolName | userID | secretBlock | timestamp)).
func ClaimSignature(key []byte, poolName, userID string, secretBlock []byte, timestamp string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(poolName))
	mac.Write([]byte(userID))
	mac.Write(secretBlock)
	mac.Write([]byte(timestamp))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// SecretHash computes the SECRET_HASH for app clients that have a client secret:
// base64(HMAC-SHA256(clientSecret, username | clientID)).
func SecretHash(username, clientID, clientSecret string) string {
	mac := hmac.New(sha256.New, []byte(clientSecret))
	mac.Write([]byte(username + clientID))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
