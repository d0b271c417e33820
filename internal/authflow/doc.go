// Package authflow drives a USER_SRP_AUTH sign-in against an identity provider.
//
// The SRP arithmetic lives in pkg/srp. This package only moves its parameters
// to and from a Provider and checks the provider answers with the challenge
// the client knows how to solve.
//
//go:generate go tool mockgen -destination=mock_provider.go -package=authflow github.com/stephenoneal/warrant/internal/authflow Provider
package authflow
