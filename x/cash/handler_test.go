package cash

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendHandler(t *testing.T) {
	perm := custodytest.NewCondition()
	other := custodytest.NewCondition()
	dest := custodytest.NewCondition().Address()
	amount := coin.NewCoin(3, 0, "IOV")

	cases := map[string]struct {
		signer       custody.Condition
		msg          *SendMsg
		wantCheckErr *errors.Error
		wantErr      *errors.Error
	}{
		"send": {
			signer: perm,
			msg: &SendMsg{
				Metadata:    &custody.Metadata{Schema: 1},
				Source:      perm.Address(),
				Destination: dest,
				Amount:      &amount,
				Memo:        "rent",
			},
		},
		"not signed by source": {
			signer: other,
			msg: &SendMsg{
				Metadata:    &custody.Metadata{Schema: 1},
				Source:      perm.Address(),
				Destination: dest,
				Amount:      &amount,
			},
			wantCheckErr: errors.ErrUnauthorized,
			wantErr:      errors.ErrUnauthorized,
		},
		"more than held": {
			signer: perm,
			msg: &SendMsg{
				Metadata:    &custody.Metadata{Schema: 1},
				Source:      perm.Address(),
				Destination: dest,
				Amount:      coin.NewCoinp(30, 0, "IOV"),
			},
			wantErr: errors.ErrInsufficientAmount,
		},
		"missing amount": {
			signer: perm,
			msg: &SendMsg{
				Metadata:    &custody.Metadata{Schema: 1},
				Source:      perm.Address(),
				Destination: dest,
			},
			wantCheckErr: errors.ErrAmount,
			wantErr:      errors.ErrAmount,
		},
		"missing metadata": {
			signer: perm,
			msg: &SendMsg{
				Source:      perm.Address(),
				Destination: dest,
				Amount:      &amount,
			},
			wantCheckErr: errors.ErrMetadata,
			wantErr:      errors.ErrMetadata,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			kv := store.MemStore()
			controller := NewController(NewBucket())
			require.NoError(t, controller.IssueCoins(kv, perm.Address(), coin.NewCoin(10, 0, "IOV")))

			rt := app.NewRouter()
			RegisterRoutes(rt, &custodytest.Auth{Signer: tc.signer}, controller)
			tx := &custodytest.Tx{Msg: tc.msg}

			ctx := context.Background()
			_, err := rt.Check(ctx, kv, tx)
			if !tc.wantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			_, err = rt.Deliver(ctx, kv, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			got, err := controller.Balance(kv, dest)
			require.NoError(t, err)
			assert.True(t, coin.Coins{&amount}.Equals(got))
		})
	}
}
