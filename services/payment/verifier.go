package payment

import (
	"context"
	"errors"
)

// ErrNotCompleted means the provider knows the payment but it has not
// settled, or the reference does not exist.
var ErrNotCompleted = errors.New("payment not completed")

// Verifier confirms a payment with one provider. Verify returns nil only for
// a settled payment.
type Verifier interface {
	Provider() string
	Verify(ctx context.Context, reference string) error
}

// Registry resolves a provider name to its verifier.
type Registry struct {
	verifiers map[string]Verifier
}

func NewRegistry(verifiers ...Verifier) *Registry {
	r := &Registry{verifiers: make(map[string]Verifier, len(verifiers))}
	for _, v := range verifiers {
		if v != nil {
			r.verifiers[v.Provider()] = v
		}
	}
	return r
}

func (r *Registry) Get(provider string) (Verifier, bool) {
	v, ok := r.verifiers[provider]
	return v, ok
}
