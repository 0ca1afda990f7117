package x

import (
	"context"

	"github.com/iov-one/custody"
)

// Authenticator extracts the conditions a transaction was authorized with.
// Handlers receive one in their constructor so that the authentication
// scheme can be swapped without touching the extension.
type Authenticator interface {
	// GetConditions returns all conditions fulfilled by the current
	// transaction.
	GetConditions(context.Context) []custody.Condition
	// HasAddress returns true if any fulfilled condition matches addr.
	HasAddress(context.Context, custody.Address) bool
}

// MultiAuth combines many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticators.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions returns the conditions of all Authenticators, without
// duplicates.
func (m MultiAuth) GetConditions(ctx context.Context) []custody.Condition {
	var res []custody.Condition
	for _, impl := range m.impls {
		for _, c := range impl.GetConditions(ctx) {
			if !hasCondition(res, c) {
				res = append(res, c)
			}
		}
	}
	return res
}

// HasAddress returns true if any Authenticator accepts addr.
func (m MultiAuth) HasAddress(ctx context.Context, addr custody.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses returns the addresses of all fulfilled conditions.
func GetAddresses(ctx context.Context, auth Authenticator) []custody.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]custody.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}

// MainSigner returns the first condition, or nil if there is none.
func MainSigner(ctx context.Context, auth Authenticator) custody.Condition {
	conds := auth.GetConditions(ctx)
	if len(conds) == 0 {
		return nil
	}
	return conds[0]
}

// HasAllAddresses returns true if every address in required is
// authorized.
func HasAllAddresses(ctx context.Context, auth Authenticator, required []custody.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasAllConditions returns true if every condition in required is
// fulfilled.
func HasAllConditions(ctx context.Context, auth Authenticator, required []custody.Condition) bool {
	conds := auth.GetConditions(ctx)
	for _, r := range required {
		if !hasCondition(conds, r) {
			return false
		}
	}
	return true
}

func hasCondition(conds []custody.Condition, c custody.Condition) bool {
	for _, x := range conds {
		if x.Equals(c) {
			return true
		}
	}
	return false
}
