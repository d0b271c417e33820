package authflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/stephenoneal/warrant/pkg/protocol"
	"github.com/stephenoneal/warrant/pkg/srp"
)

// Provider is the identity provider side of a USER_SRP_AUTH flow.
type Provider interface {
	InitiateAuth(ctx context.Context, req *protocol.InitiateAuthRequest) (*protocol.InitiateAuthResponse, error)
	RespondToAuthChallenge(ctx context.Context, req *protocol.RespondToAuthChallengeRequest) (*protocol.RespondToAuthChallengeResponse, error)
}

// ErrPasswordChangeRequired is returned when the provider answers the password
// verifier with NEW_PASSWORD_REQUIRED and no new password was supplied.
var ErrPasswordChangeRequired = errors.New("password change required")

// Authenticate runs one complete sign-in for client against provider.
//
// The client's secrets are cleared before Authenticate returns, whatever the outcome,
// so a client cannot be used for a second sign-in.
func Authenticate(ctx context.Context, provider Provider, client *srp.Client) (*protocol.AuthenticationResult, error) {
	return AuthenticateWithNewPassword(ctx, provider, client, "")
}

// AuthenticateWithNewPassword behaves like Authenticate, but answers a
// NEW_PASSWORD_REQUIRED challenge with newPassword. An empty newPassword makes
// that challenge fail with ErrPasswordChangeRequired.
func AuthenticateWithNewPassword(
	ctx context.Context, provider Provider, client *srp.Client, newPassword string,
) (*protocol.AuthenticationResult, error) {
	defer client.ClearSecrets()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params, err := client.StartExchange()
	if err != nil {
		return nil, fmt.Errorf("failed to start SRP exchange: %w", err)
	}

	initResp, err := provider.InitiateAuth(ctx, &protocol.InitiateAuthRequest{
		AuthFlow:       protocol.AuthFlowUserSRP,
		ClientID:       client.ClientID,
		AuthParameters: params.ToMap(),
	})
	if err != nil {
		return nil, fmt.Errorf("initiate auth failed: %w", err)
	}
	if initResp == nil {
		return nil, protocol.NewProtocolError("empty initiate auth response")
	}

	if initResp.ChallengeName != protocol.ChallengePasswordVerifier {
		return nil, protocol.NewUnexpectedChallengeError(initResp.ChallengeName)
	}

	resp, err := client.RespondToChallenge(protocol.ChallengeParametersFromMap(initResp.ChallengeParameters), "")
	if err != nil {
		return nil, fmt.Errorf("failed to answer %s challenge: %w", protocol.ChallengePasswordVerifier, err)
	}

	final, err := provider.RespondToAuthChallenge(ctx, &protocol.RespondToAuthChallengeRequest{
		ChallengeName:      protocol.ChallengePasswordVerifier,
		ClientID:           client.ClientID,
		Session:            initResp.Session,
		ChallengeResponses: resp.ToMap(),
	})
	if err != nil {
		return nil, fmt.Errorf("respond to auth challenge failed: %w", err)
	}
	if final == nil {
		return nil, protocol.NewProtocolError("empty challenge response")
	}

	if final.ChallengeName == protocol.ChallengeNewPasswordRequired && final.AuthenticationResult == nil {
		final, err = respondNewPassword(ctx, provider, client, final.Session, newPassword)
		if err != nil {
			return nil, err
		}
	}

	if final.AuthenticationResult == nil {
		// MFA challenges are not handled
		if final.ChallengeName != "" {
			return nil, protocol.NewUnexpectedChallengeError(final.ChallengeName)
		}
		return nil, protocol.NewProtocolError("provider returned no authentication result")
	}

	return final.AuthenticationResult, nil
}

func respondNewPassword(
	ctx context.Context, provider Provider, client *srp.Client, session, newPassword string,
) (*protocol.RespondToAuthChallengeResponse, error) {
	if newPassword == "" {
		return nil, ErrPasswordChangeRequired
	}

	resp := &protocol.NewPasswordResponse{
		Username:    client.Username,
		NewPassword: newPassword,
		SecretHash:  client.SecretHashFor(client.Username),
	}

	final, err := provider.RespondToAuthChallenge(ctx, &protocol.RespondToAuthChallengeRequest{
		ChallengeName:      protocol.ChallengeNewPasswordRequired,
		ClientID:           client.ClientID,
		Session:            session,
		ChallengeResponses: resp.ToMap(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set new password: %w", err)
	}
	if final == nil {
		return nil, protocol.NewProtocolError("empty new password response")
	}
	return final, nil
}
