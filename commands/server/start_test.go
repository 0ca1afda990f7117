package server

import (
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

func TestParseStartFlags(t *testing.T) {
	defaults := Options{
		Home:        "/tmp/custody",
		Bind:        "tcp://localhost:26658",
		MetricsAddr: "localhost:9100",
	}

	cases := map[string]struct {
		args        []string
		wantBind    string
		wantDebug   bool
		wantMetrics string
		wantErr     *errors.Error
	}{
		"defaults": {
			wantBind:    "tcp://localhost:26658",
			wantMetrics: "localhost:9100",
		},
		"flags override": {
			args:        []string{"-bind", "unix://custody.sock", "-debug", "-metrics", ""},
			wantBind:    "unix://custody.sock",
			wantDebug:   true,
			wantMetrics: "",
		},
		"empty bind": {
			args:    []string{"-bind", ""},
			wantErr: errors.ErrEmpty,
		},
		"unknown flag": {
			args:    []string{"-min_fee", "0 IOV"},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			opts, err := ParseStartFlags(tc.args, defaults)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, tc.wantBind, opts.Bind)
			assert.Equal(t, tc.wantDebug, opts.Debug)
			assert.Equal(t, tc.wantMetrics, opts.MetricsAddr)
			assert.Equal(t, defaults.Home, opts.Home)
			require.NotNil(t, opts.Registry)
			require.NotNil(t, opts.Logger)
		})
	}
}

func TestStartFailsWithoutApp(t *testing.T) {
	opts, err := ParseStartFlags(nil, Options{Bind: "tcp://localhost:0"})
	require.NoError(t, err)

	gen := func(*Options) (abci.Application, error) {
		return nil, errors.Wrap(errors.ErrDatabase, "locked")
	}
	err = StartCmd(gen, opts)
	assert.True(t, errors.ErrDatabase.Is(err))
}

func TestStartKeepsServing(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	opts, err := ParseStartFlags([]string{"-bind", fmt.Sprintf("tcp://%s", addr), "-metrics", ""}, Options{})
	require.NoError(t, err)

	gen := func(*Options) (abci.Application, error) {
		return abci.NewBaseApplication(), nil
	}
	done := make(chan error, 1)
	go func() { done <- StartCmd(gen, opts) }()

	var conn net.Conn
	for i := 0; i < 50; i++ {
		if conn, err = net.Dial("tcp", addr); err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, err, "server never accepted a connection")
	require.NoError(t, conn.Close())

	select {
	case err := <-done:
		t.Fatalf("start returned while the server should keep running: %+v", err)
	case <-time.After(time.Second):
	}
}
