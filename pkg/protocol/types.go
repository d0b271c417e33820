package protocol

// Wire keys used in auth parameters, challenge parameters and challenge responses.
const (
	KeySalt           = "SALT"
	KeySRPB           = "SRP_B"
	KeyUserIDForSRP   = "USER_ID_FOR_SRP"
	KeySecretBlock    = "SECRET_BLOCK"
	KeyUsername       = "USERNAME"
	KeySRPA           = "SRP_A"
	KeySecretHash     = "SECRET_HASH"
	KeyTimestamp      = "TIMESTAMP"
	KeyClaimBlock     = "PASSWORD_CLAIM_SECRET_BLOCK"
	KeyClaimSignature = "PASSWORD_CLAIM_SIGNATURE"
	KeyNewPassword    = "NEW_PASSWORD"
)

// Auth flow and challenge names.
const (
	AuthFlowUserSRP           = "USER_SRP_AUTH"
	ChallengePasswordVerifier = "PASSWORD_VERIFIER"

	// ChallengeNewPasswordRequired follows PASSWORD_VERIFIER for users created
	// with a temporary password.
	ChallengeNewPasswordRequired = "NEW_PASSWORD_REQUIRED"
)

// AuthParameters are sent with InitiateAuth to start a USER_SRP_AUTH flow.
type AuthParameters struct {
	Username   string `json:"USERNAME"`
	SRPA       string `json:"SRP_A"` // Lowercase hex, even length
	SecretHash string `json:"SECRET_HASH,omitempty"`
}

// ToMap returns the parameters keyed by their wire names.
func (p *AuthParameters) ToMap() map[string]string {
	m := map[string]string{
		KeyUsername: p.Username,
		KeySRPA:     p.SRPA,
	}
	if p.SecretHash != "" {
		m[KeySecretHash] = p.SecretHash
	}
	return m
}

// ChallengeParameters are returned by the provider in a PASSWORD_VERIFIER challenge.
type ChallengeParameters struct {
	Salt         string `json:"SALT"`            // Hex-encoded
	SRPB         string `json:"SRP_B"`           // Hex-encoded server public value
	UserIDForSRP string `json:"USER_ID_FOR_SRP"` // Username the provider uses internally
	SecretBlock  string `json:"SECRET_BLOCK"`    // Base64, opaque
	Username     string `json:"USERNAME,omitempty"`
}

// ChallengeParametersFromMap builds ChallengeParameters from a provider response map.
// Unknown keys are ignored and missing keys are left empty.
func ChallengeParametersFromMap(m map[string]string) *ChallengeParameters {
	return &ChallengeParameters{
		Salt:         m[KeySalt],
		SRPB:         m[KeySRPB],
		UserIDForSRP: m[KeyUserIDForSRP],
		SecretBlock:  m[KeySecretBlock],
		Username:     m[KeyUsername],
	}
}

// ChallengeResponse answers a PASSWORD_VERIFIER challenge.
type ChallengeResponse struct {
	Username       string `json:"USERNAME"`
	ClaimBlock     string `json:"PASSWORD_CLAIM_SECRET_BLOCK"`
	ClaimSignature string `json:"PASSWORD_CLAIM_SIGNATURE"` // Base64 HMAC-SHA256
	Timestamp      string `json:"TIMESTAMP"`
	SecretHash     string `json:"SECRET_HASH,omitempty"`
}

// ToMap returns the response keyed by its wire names.
func (r *ChallengeResponse) ToMap() map[string]string {
	m := map[string]string{
		KeyUsername:       r.Username,
		KeyClaimBlock:     r.ClaimBlock,
		KeyClaimSignature: r.ClaimSignature,
		KeyTimestamp:      r.Timestamp,
	}
	if r.SecretHash != "" {
		m[KeySecretHash] = r.SecretHash
	}
	return m
}

// NewPasswordResponse answers a NEW_PASSWORD_REQUIRED challenge.
type NewPasswordResponse struct {
	Username    string `json:"USERNAME"`
	NewPassword string `json:"NEW_PASSWORD"`
	SecretHash  string `json:"SECRET_HASH,omitempty"`
}

// ToMap returns the response keyed by its wire names.
func (r *NewPasswordResponse) ToMap() map[string]string {
	m := map[string]string{
		KeyUsername:    r.Username,
		KeyNewPassword: r.NewPassword,
	}
	if r.SecretHash != "" {
		m[KeySecretHash] = r.SecretHash
	}
	return m
}

// InitiateAuthRequest starts an authentication flow.
type InitiateAuthRequest struct {
	AuthFlow       string            `json:"AuthFlow"`
	ClientID       string            `json:"ClientId"`
	AuthParameters map[string]string `json:"AuthParameters"`
}

// InitiateAuthResponse carries the provider's challenge.
type InitiateAuthResponse struct {
	ChallengeName       string            `json:"ChallengeName"`
	Session             string            `json:"Session,omitempty"`
	ChallengeParameters map[string]string `json:"ChallengeParameters"`
}

// RespondToAuthChallengeRequest answers a challenge.
type RespondToAuthChallengeRequest struct {
	ChallengeName      string            `json:"ChallengeName"`
	ClientID           string            `json:"ClientId"`
	Session            string            `json:"Session,omitempty"`
	ChallengeResponses map[string]string `json:"ChallengeResponses"`
}

// RespondToAuthChallengeResponse carries the tokens issued on success, or the
// next challenge when the flow continues.
type RespondToAuthChallengeResponse struct {
	ChallengeName        string                `json:"ChallengeName,omitempty"`
	Session              string                `json:"Session,omitempty"`
	ChallengeParameters  map[string]string     `json:"ChallengeParameters,omitempty"`
	AuthenticationResult *AuthenticationResult `json:"AuthenticationResult,omitempty"`
}

// AuthenticationResult holds the tokens issued after a successful flow.
type AuthenticationResult struct {
	AccessToken  string `json:"AccessToken"`
	IDToken      string `json:"IdToken"`
	RefreshToken string `json:"RefreshToken,omitempty"`
	TokenType    string `json:"TokenType"`
	ExpiresIn    int    `json:"ExpiresIn"`
}
