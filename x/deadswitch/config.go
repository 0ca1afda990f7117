package deadswitch

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const packageName = "deadswitch"

var _ gconf.OwnedConfig = (*Configuration)(nil)

// Validate requires an owner and a known deposit policy.
func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	switch c.DepositPolicy {
	case DepositPolicyAnyone, DepositPolicyOwnerOnly:
	default:
		errs = errors.Append(errs, errors.Field("DepositPolicy", errors.ErrInput, "unknown policy %d", c.DepositPolicy))
	}
	return errs
}

// GetOwner returns the address allowed to update the configuration.
func (c *Configuration) GetOwner() custody.Address {
	return c.Owner
}

// defaultConfiguration is used when none was stored.
func defaultConfiguration() Configuration {
	return Configuration{
		Metadata:      &custody.Metadata{Schema: 1},
		DepositPolicy: DepositPolicyAnyone,
	}
}

// loadConf returns the stored configuration, or the default one.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		conf = defaultConfiguration()
		return &conf, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}

// checkHorizon fails with ErrInvalidDeadline unless deadline is strictly
// after now and within the configured horizon.
func (c *Configuration) checkHorizon(now, deadline custody.UnixTime) error {
	if deadline <= now {
		return errors.Wrapf(ErrInvalidDeadline, "deadline %s is not after %s", deadline, now)
	}
	if c.MaxHorizon <= 0 {
		return nil
	}
	limit, err := now.AddSeconds(c.MaxHorizon)
	if err != nil {
		return errors.Wrap(err, "horizon")
	}
	if deadline > limit {
		return errors.Wrapf(ErrInvalidDeadline, "deadline %s is beyond %s", deadline, limit)
	}
	return nil
}
