package utils

import (
	"context"
	"testing"

	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/prometheus/client_golang/prometheus"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	assert.Nil(t, err)

	ctx := context.Background()
	db := store.MemStore()
	tx := &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "deadswitch/claim"}}

	_, err = m.Deliver(ctx, db, tx, &custodytest.Handler{})
	assert.Nil(t, err)
	_, err = m.Deliver(ctx, db, tx, &custodytest.Handler{DeliverErr: errors.ErrUnauthorized})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	_, err = m.Check(ctx, db, tx, &custodytest.Handler{})
	assert.Nil(t, err)

	families, err := reg.Gather()
	assert.Nil(t, err)

	counts := make(map[string]float64)
	for _, f := range families {
		if f.GetName() != "custody_tx_processed_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			var phase, code string
			for _, l := range metric.GetLabel() {
				switch l.GetName() {
				case "phase":
					phase = l.GetValue()
				case "code":
					code = l.GetValue()
				}
			}
			counts[phase+"/"+code] += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{
		"deliver/ok": 1,
		"deliver/2":  1,
		"check/ok":   1,
	}, counts)

	if _, err := NewMetrics(reg); !errors.ErrState.Is(err) {
		t.Fatalf("want duplicate registration error, got %+v", err)
	}
}
