package gconf

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

type myconfigMsg struct {
	Patch *myconfig
}

func (m *myconfigMsg) Marshal() ([]byte, error) { return nil, nil }
func (m *myconfigMsg) Unmarshal([]byte) error   { return nil }
func (m *myconfigMsg) Path() string             { return "mypkg/update_configuration" }
func (m *myconfigMsg) Validate() error          { return nil }

func TestUpdateConfigurationHandler(t *testing.T) {
	cond := custodytest.NewCondition()
	admin := custodytest.NewCondition()

	cases := map[string]struct {
		init           *myconfig
		msg            custody.Msg
		signers        []custody.Condition
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantConfig     *myconfig
	}{
		"success": {
			init:       &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar"},
			msg:        &myconfigMsg{Patch: &myconfig{Num: 333, Str: "boing!"}},
			signers:    []custody.Condition{cond},
			wantConfig: &myconfig{Owner: cond.Address(), Num: 333, Str: "boing!"},
		},
		"message must be signed by the configuration owner": {
			init:           &myconfig{Owner: cond.Address(), Num: 5125},
			msg:            &myconfigMsg{Patch: &myconfig{Num: 1}},
			signers:        []custody.Condition{custodytest.NewCondition()},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
			wantConfig:     &myconfig{Owner: cond.Address(), Num: 5125},
		},
		"zero values are not updating the configuration": {
			init:       &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar"},
			msg:        &myconfigMsg{Patch: &myconfig{Str: "only"}},
			signers:    []custody.Condition{cond},
			wantConfig: &myconfig{Owner: cond.Address(), Num: 5125, Str: "only"},
		},
		"ownership can be transferred": {
			init:       &myconfig{Owner: cond.Address(), Num: 1},
			msg:        &myconfigMsg{Patch: &myconfig{Owner: admin.Address()}},
			signers:    []custody.Condition{cond},
			wantConfig: &myconfig{Owner: admin.Address(), Num: 1},
		},
		"missing configuration is created by the init admin": {
			msg:        &myconfigMsg{Patch: &myconfig{Owner: cond.Address(), Num: 7}},
			signers:    []custody.Condition{admin},
			wantConfig: &myconfig{Owner: cond.Address(), Num: 7},
		},
		"missing configuration cannot be created by anyone else": {
			msg:            &myconfigMsg{Patch: &myconfig{Owner: cond.Address(), Num: 7}},
			signers:        []custody.Condition{cond},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"patch must be valid": {
			init:           &myconfig{Owner: cond.Address(), Num: 1},
			msg:            &myconfigMsg{Patch: &myconfig{Num: -9}},
			signers:        []custody.Condition{cond},
			wantCheckErr:   errors.ErrState,
			wantDeliverErr: errors.ErrState,
			wantConfig:     &myconfig{Owner: cond.Address(), Num: 1},
		},
		"patch is required": {
			init:           &myconfig{Owner: cond.Address(), Num: 1},
			msg:            &myconfigMsg{},
			signers:        []custody.Condition{cond},
			wantCheckErr:   errors.ErrState,
			wantDeliverErr: errors.ErrState,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			if tc.init != nil {
				assert.Nil(t, Save(db, "mypkg", tc.init))
			}

			auth := &custodytest.Auth{Signers: tc.signers}
			initAdmin := func(custody.ReadOnlyKVStore) (custody.Address, error) {
				return admin.Address(), nil
			}
			h := NewUpdateConfigurationHandler("mypkg", &myconfig{}, auth, initAdmin)

			ctx := context.Background()
			tx := &custodytest.Tx{Msg: tc.msg}
			cache := db.CacheWrap()
			if _, err := h.Check(ctx, cache, tx); !tc.wantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()
			if _, err := h.Deliver(ctx, db, tx); !tc.wantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			if tc.wantConfig != nil {
				var got myconfig
				assert.Nil(t, Load(db, "mypkg", &got))
				assert.Equal(t, *tc.wantConfig, got)
			}
		})
	}
}
