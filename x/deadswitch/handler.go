package deadswitch

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
)

// RegisterRoutes registers the handlers of this extension.
func RegisterRoutes(r custody.Registry, auth x.Authenticator, control cash.Controller) {
	bucket := NewSwitchBucket()
	r.Handle(&CreateMsg{}, CreateHandler{auth: auth, bucket: bucket, control: control})
	r.Handle(&DepositMsg{}, DepositHandler{auth: auth, bucket: bucket, control: control})
	r.Handle(&CheckInMsg{}, CheckInHandler{auth: auth, bucket: bucket})
	r.Handle(&HeartbeatMsg{}, HeartbeatHandler{auth: auth, bucket: bucket})
	r.Handle(&ClaimMsg{}, ClaimHandler{auth: auth, bucket: bucket, control: control})
	r.Handle(&CancelMsg{}, CancelHandler{auth: auth, bucket: bucket, control: control})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(packageName, &Configuration{}, auth, nil))
}

// RegisterQuery exposes switches under "/switches", "/switches/owner" and
// "/switches/beneficiary".
func RegisterQuery(qr custody.QueryRouter) {
	NewSwitchBucket().Register("switches", qr)
}

// CreateHandler opens a new switch.
type CreateHandler struct {
	auth    x.Authenticator
	bucket  SwitchBucket
	control cash.Controller
}

var _ custody.Handler = CreateHandler{}

func (h CreateHandler) Check(ctx context.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h CreateHandler) Deliver(ctx context.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, obj, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "cannot save switch")
	}
	sw := AsSwitch(obj)
	for _, amount := range msg.Amount {
		if err := h.control.TransferIn(db, sw.Owner, sw.Holding, *amount); err != nil {
			return nil, errors.Wrap(err, "cannot fund switch")
		}
	}
	custody.GetLogger(ctx).Info("switch created",
		"switch", custody.Address(obj.Key()),
		"owner", sw.Owner,
		"deadline", sw.Deadline)
	return &custody.DeliverResult{Data: obj.Key()}, nil
}

// validate returns the new switch object. The owner must sign, the switch
// address must be unused and the deadline must be in the future.
func (h CreateHandler) validate(ctx context.Context, db custody.KVStore, tx custody.Tx) (*CreateMsg, orm.Object, error) {
	var msg CreateMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	owner := msg.Owner
	if owner == nil {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
		}
		owner = signer.Address()
	} else if !h.auth.HasAddress(ctx, owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner did not sign")
	}

	now, err := custody.BlockNow(ctx)
	if err != nil {
		return nil, nil, err
	}
	obj, err := NewSwitch(owner, msg.Beneficiary, msg.Seed, msg.Deadline, now, msg.Period, msg.Memo)
	if err != nil {
		return nil, nil, err
	}
	switch exists, err := h.bucket.Has(db, obj.Key()); {
	case err != nil:
		return nil, nil, errors.Wrap(err, "cannot check switch")
	case exists:
		return nil, nil, errors.Wrapf(errors.ErrDuplicate, "switch %X", obj.Key())
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if err := conf.checkHorizon(now, msg.Deadline); err != nil {
		return nil, nil, err
	}
	return &msg, obj, nil
}

// DepositHandler funds the holding of an active switch.
type DepositHandler struct {
	auth    x.Authenticator
	bucket  SwitchBucket
	control cash.Controller
}

var _ custody.Handler = DepositHandler{}

func (h DepositHandler) Check(ctx context.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h DepositHandler) Deliver(ctx context.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, sw, source, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.TransferIn(db, source, sw.Holding, *msg.Amount); err != nil {
		return nil, errors.Wrap(err, "cannot deposit")
	}
	return &custody.DeliverResult{}, nil
}

func (h DepositHandler) validate(ctx context.Context, db custody.KVStore, tx custody.Tx) (*DepositMsg, *Switch, custody.Address, error) {
	var msg DepositMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	_, sw, err := h.bucket.GetSwitch(db, msg.SwitchID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !sw.IsActive() {
		return nil, nil, nil, errors.Wrapf(ErrSwitchInactive, "switch is %s", sw.State)
	}

	source := msg.Source
	if source == nil {
		if signer := x.MainSigner(ctx, h.auth); signer != nil {
			source = signer.Address()
		}
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := Authorize(ctx, h.auth, ActionDeposit, sw, conf, source); err != nil {
		return nil, nil, nil, err
	}
	return &msg, sw, source, nil
}

// CheckInHandler moves the deadline of an active switch before it passes.
type CheckInHandler struct {
	auth   x.Authenticator
	bucket SwitchBucket
}

var _ custody.Handler = CheckInHandler{}

func (h CheckInHandler) Check(ctx context.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h CheckInHandler) Deliver(ctx context.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, obj, now, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	sw := AsSwitch(obj)
	sw.Deadline = msg.NewDeadline
	sw.LastActivity = now
	if err := h.bucket.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "cannot save switch")
	}
	return &custody.DeliverResult{}, nil
}

func (h CheckInHandler) validate(ctx context.Context, db custody.KVStore, tx custody.Tx) (*CheckInMsg, orm.Object, custody.UnixTime, error) {
	var msg CheckInMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, 0, errors.Wrap(err, "load msg")
	}
	obj, sw, err := h.bucket.GetSwitch(db, msg.SwitchID)
	if err != nil {
		return nil, nil, 0, err
	}
	now, err := ownerTransition(ctx, h.auth, ActionCheckIn, sw)
	if err != nil {
		return nil, nil, 0, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, 0, err
	}
	if err := conf.checkHorizon(now, msg.NewDeadline); err != nil {
		return nil, nil, 0, err
	}
	return &msg, obj, now, nil
}

// HeartbeatHandler moves the deadline of an active switch one period after
// the block time.
type HeartbeatHandler struct {
	auth   x.Authenticator
	bucket SwitchBucket
}

var _ custody.Handler = HeartbeatHandler{}

func (h HeartbeatHandler) Check(ctx context.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h HeartbeatHandler) Deliver(ctx context.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	obj, now, deadline, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	sw := AsSwitch(obj)
	sw.Deadline = deadline
	sw.LastActivity = now
	if err := h.bucket.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "cannot save switch")
	}
	return &custody.DeliverResult{}, nil
}

func (h HeartbeatHandler) validate(ctx context.Context, db custody.KVStore, tx custody.Tx) (orm.Object, custody.UnixTime, custody.UnixTime, error) {
	var msg HeartbeatMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, 0, 0, errors.Wrap(err, "load msg")
	}
	obj, sw, err := h.bucket.GetSwitch(db, msg.SwitchID)
	if err != nil {
		return nil, 0, 0, err
	}
	now, err := ownerTransition(ctx, h.auth, ActionHeartbeat, sw)
	if err != nil {
		return nil, 0, 0, err
	}
	if sw.Period <= 0 {
		return nil, 0, 0, errors.Wrap(errors.ErrState, "switch has no heartbeat period")
	}
	deadline, err := now.AddSeconds(sw.Period)
	if err != nil {
		// Reported as an invalid deadline, the overflow stays in the chain.
		return nil, 0, 0, errors.Append(errors.Field("Period", ErrInvalidDeadline, "heartbeat deadline out of range"), err)
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, 0, 0, err
	}
	if err := conf.checkHorizon(now, deadline); err != nil {
		return nil, 0, 0, err
	}
	return obj, now, deadline, nil
}

// ownerTransition runs the guards shared by check in and heartbeat and
// returns the block time. The owner must sign, the switch must be active
// and its deadline must not be reached.
func ownerTransition(ctx context.Context, auth x.Authenticator, action Action, sw *Switch) (custody.UnixTime, error) {
	if err := Authorize(ctx, auth, action, sw, nil, nil); err != nil {
		return 0, err
	}
	if !sw.IsActive() {
		return 0, errors.Wrapf(ErrSwitchInactive, "switch is %s", sw.State)
	}
	now, err := custody.BlockNow(ctx)
	if err != nil {
		return 0, err
	}
	if now >= sw.Deadline {
		return 0, errors.Wrapf(ErrDeadlineReached, "deadline %s passed", sw.Deadline)
	}
	return now, nil
}

// ClaimHandler releases the whole holding of an expired switch to its
// beneficiary. Anyone can submit the claim.
type ClaimHandler struct {
	auth    x.Authenticator
	bucket  SwitchBucket
	control cash.Controller
}

var _ custody.Handler = ClaimHandler{}

func (h ClaimHandler) Check(ctx context.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h ClaimHandler) Deliver(ctx context.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	obj, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	sw := AsSwitch(obj)
	return release(ctx, db, h.bucket, h.control, obj, sw.Beneficiary, StateClaimed)
}

func (h ClaimHandler) validate(ctx context.Context, db custody.KVStore, tx custody.Tx) (orm.Object, error) {
	var msg ClaimMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	obj, sw, err := h.bucket.GetSwitch(db, msg.SwitchID)
	if err != nil {
		return nil, err
	}
	// A released switch reports its state to any caller.
	if !sw.IsActive() {
		return nil, errors.Wrapf(ErrSwitchInactive, "switch is %s", sw.State)
	}
	if err := Authorize(ctx, h.auth, ActionClaim, sw, nil, msg.Beneficiary); err != nil {
		return nil, err
	}
	now, err := custody.BlockNow(ctx)
	if err != nil {
		return nil, err
	}
	if now < sw.Deadline {
		return nil, errors.Wrapf(ErrDeadlineNotReached, "deadline is %s", sw.Deadline)
	}
	return obj, nil
}

// CancelHandler returns the whole holding of an active switch to its owner.
type CancelHandler struct {
	auth    x.Authenticator
	bucket  SwitchBucket
	control cash.Controller
}

var _ custody.Handler = CancelHandler{}

func (h CancelHandler) Check(ctx context.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h CancelHandler) Deliver(ctx context.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	obj, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	sw := AsSwitch(obj)
	return release(ctx, db, h.bucket, h.control, obj, sw.Owner, StateCancelled)
}

func (h CancelHandler) validate(ctx context.Context, db custody.KVStore, tx custody.Tx) (orm.Object, error) {
	var msg CancelMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	obj, sw, err := h.bucket.GetSwitch(db, msg.SwitchID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(ctx, h.auth, ActionCancel, sw, nil, nil); err != nil {
		return nil, err
	}
	if !sw.IsActive() {
		return nil, errors.Wrapf(ErrSwitchInactive, "switch is %s", sw.State)
	}
	return obj, nil
}

// release sweeps the holding of the switch to recipient and stores the
// switch in its terminal state. The swept coins are the result data.
func release(
	ctx context.Context,
	db custody.KVStore,
	bucket SwitchBucket,
	control cash.Controller,
	obj orm.Object,
	recipient custody.Address,
	final State,
) (*custody.DeliverResult, error) {
	sw := AsSwitch(obj)
	swept, err := control.Sweep(db, sw.Holding, recipient)
	if err != nil {
		return nil, errors.Wrap(err, "cannot sweep holding")
	}
	sw.State = final
	if err := bucket.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "cannot save switch")
	}

	data, err := (&Release{Recipient: recipient, Coins: swept}).Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "cannot marshal release")
	}
	custody.GetLogger(ctx).Info("switch released",
		"switch", custody.Address(obj.Key()),
		"state", final,
		"recipient", recipient,
		"coins", swept)
	return &custody.DeliverResult{Data: data}, nil
}
