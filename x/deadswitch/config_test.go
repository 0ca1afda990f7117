package deadswitch

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

func TestConfigurationValidate(t *testing.T) {
	owner := custodytest.NewCondition().Address()

	cases := map[string]struct {
		conf    Configuration
		wantErr map[string]*errors.Error
	}{
		"valid": {
			conf: Configuration{Metadata: meta(), Owner: owner, DepositPolicy: DepositPolicyOwnerOnly, MaxHorizon: 3600},
		},
		"negative horizon means no limit": {
			conf: Configuration{Metadata: meta(), Owner: owner, DepositPolicy: DepositPolicyAnyone, MaxHorizon: -1},
		},
		"missing policy": {
			conf: Configuration{Metadata: meta(), Owner: owner},
			wantErr: map[string]*errors.Error{
				"DepositPolicy": errors.ErrInput,
			},
		},
		"missing owner and metadata": {
			conf: Configuration{DepositPolicy: DepositPolicyAnyone},
			wantErr: map[string]*errors.Error{
				"Owner":    errors.ErrInput,
				"Metadata": errors.ErrMetadata,
			},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.conf.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			for field, want := range tc.wantErr {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestCheckHorizon(t *testing.T) {
	cases := map[string]struct {
		horizon  int64
		deadline custody.UnixTime
		wantErr  *errors.Error
	}{
		"no horizon":             {deadline: t0 + 1e9},
		"negative horizon":       {horizon: -1, deadline: t0 + 1e9},
		"one second ahead":       {horizon: 10, deadline: t0 + 1},
		"at the horizon":         {horizon: 10, deadline: t0 + 10},
		"beyond the horizon":     {horizon: 10, deadline: t0 + 11, wantErr: ErrInvalidDeadline},
		"now":                    {deadline: t0, wantErr: ErrInvalidDeadline},
		"past":                   {horizon: 10, deadline: t0 - 1, wantErr: ErrInvalidDeadline},
		"horizon would overflow": {horizon: 1<<63 - 1, deadline: t0 + 1, wantErr: errors.ErrOverflow},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			conf := Configuration{MaxHorizon: tc.horizon}
			if err := conf.checkHorizon(t0, tc.deadline); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestLoadConfDefaults(t *testing.T) {
	e := newTestEnv(t)
	conf, err := loadConf(e.db)
	assert.Nil(t, err)
	assert.Equal(t, DepositPolicyAnyone, conf.DepositPolicy)
	assert.Equal(t, int64(0), conf.MaxHorizon)
}

func TestUpdateConfiguration(t *testing.T) {
	owner := custodytest.NewCondition()
	stranger := custodytest.NewCondition()

	e := newTestEnv(t)

	patch := &UpdateConfigurationMsg{Metadata: meta(), Patch: &Configuration{MaxHorizon: 500}}

	// Without a genesis configuration nobody can create one.
	_, err := e.deliver(t0, patch, owner)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	e.configure(Configuration{Owner: owner.Address(), DepositPolicy: DepositPolicyAnyone})

	_, err = e.deliver(t0, patch, stranger)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	e.mustDeliver(t0, &UpdateConfigurationMsg{
		Metadata: meta(),
		Patch:    &Configuration{DepositPolicy: DepositPolicyOwnerOnly, MaxHorizon: 500},
	}, owner)

	var conf Configuration
	assert.Nil(t, gconf.Load(e.db, packageName, &conf))
	assert.Equal(t, owner.Address(), conf.Owner)
	assert.Equal(t, DepositPolicyOwnerOnly, conf.DepositPolicy)
	assert.Equal(t, int64(500), conf.MaxHorizon)

	// The horizon applies to new switches right away.
	_, err = e.deliver(t0, &CreateMsg{Metadata: meta(), Beneficiary: stranger.Address(), Deadline: t0 + 501}, owner)
	assert.IsErr(t, ErrInvalidDeadline, err)

	// A negative value lifts the limit, zero values keep the rest.
	e.mustDeliver(t0, &UpdateConfigurationMsg{Metadata: meta(), Patch: &Configuration{MaxHorizon: -1}}, owner)
	assert.Nil(t, gconf.Load(e.db, packageName, &conf))
	assert.Equal(t, DepositPolicyOwnerOnly, conf.DepositPolicy)
	e.mustDeliver(t0, &CreateMsg{Metadata: meta(), Beneficiary: stranger.Address(), Deadline: t0 + 100000}, owner)

	// An invalid result is refused.
	_, err = e.deliver(t0, &UpdateConfigurationMsg{Metadata: meta(), Patch: &Configuration{DepositPolicy: 7}}, owner)
	assert.IsErr(t, errors.ErrInput, err)
}
