package app

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/store"
)

// tracer records its name before calling the next step.
type tracer struct {
	name  string
	calls *[]string
}

func (tr tracer) Check(ctx context.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	*tr.calls = append(*tr.calls, tr.name)
	return next.Check(ctx, db, tx)
}

func (tr tracer) Deliver(ctx context.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	*tr.calls = append(*tr.calls, tr.name)
	return next.Deliver(ctx, db, tx)
}

func TestChainDecoratorsOrder(t *testing.T) {
	var calls []string
	var nilTracer *tracer
	var h custodytest.Handler

	stack := ChainDecorators(
		tracer{name: "first", calls: &calls},
		nil,
		nilTracer,
	).Chain(
		tracer{name: "second", calls: &calls},
	).WithHandler(&h)

	ctx := context.Background()
	db := store.MemStore()
	tx := &custodytest.Tx{}

	_, err := stack.Check(ctx, db, tx)
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, db, tx)
	assert.Nil(t, err)

	assert.Equal(t, []string{"first", "second", "first", "second"}, calls)
	assert.Equal(t, 2, h.CallCount())
}
