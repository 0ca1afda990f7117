/*
Package deadswitch implements a time-locked custody switch.

An owner locks funds in a holding wallet that is controlled by this
extension only, names a beneficiary and sets a deadline. Checking in before
the deadline moves it forward. Once the deadline is reached without a check
in, the beneficiary can claim the whole balance. Until then the owner can
cancel the switch and take the funds back.

A switch is stored under an address derived from the owner and a seed, so
that one owner can run many switches and every switch can be found again
from its inputs. Claimed and cancelled switches are kept as terminal records,
all further transitions fail with ErrSwitchInactive.
*/
package deadswitch
