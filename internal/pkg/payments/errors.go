package payments

import "errors"

var (
	// ErrInvalidRequest marks malformed caller input; nothing was persisted.
	ErrInvalidRequest = errors.New("invalid checkout request")
	// ErrInvalidSignature marks a webhook whose signature did not verify;
	// no state was touched and the sender must not retry.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrGateway marks a failed call to the payment provider.
	ErrGateway = errors.New("payment gateway error")
)
