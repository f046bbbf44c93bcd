package app

import (
	"context"
	"fmt"

	"github.com/bamorim/bindcheck/internal/bind"
	"github.com/bamorim/bindcheck/internal/config"
	"github.com/bamorim/bindcheck/internal/logger"
)

type Options struct {
	ConfigPath string
	Addresses  []string // overrides config and defaults when non-empty
	KeepGoing  bool     // run every address even after a failure
	Strict     bool     // return ErrChecksFailed when any check fails
	Portable   bool     // use the net package instead of raw sockets
	Verbose    bool
	LogFile    string
	Binder     bind.Binder // optional, defaults to SocketBinder or ListenBinder
	Logger     *logger.Logger
}

// Report holds the outcome of a run. Skipped lists addresses that were never
// attempted because an earlier check failed in fail-fast mode.
type Report struct {
	Results []bind.Result
	Skipped []string
}

func (r Report) Failed() bool {
	for _, res := range r.Results {
		if !res.OK() {
			return true
		}
	}
	return false
}

type runner struct {
	addresses []string
	keepGoing bool
	binder    bind.Binder
	logger    logger.Logger
}

// Check binds each target address in order and reports the outcome. Bind
// failures end up in the Report, not in the returned error, unless Strict is
// set.
func Check(ctx context.Context, opts Options) (Report, error) {
	r, err := newRunner(opts)
	if err != nil {
		return Report{}, NewCodeError(2, err)
	}
	report := r.run(ctx)
	if opts.Strict && report.Failed() {
		return report, NewCodeError(1, ErrChecksFailed)
	}
	return report, nil
}

func newRunner(opts Options) (*runner, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	addresses := cfg.Addresses
	if len(opts.Addresses) > 0 {
		addresses = opts.Addresses
		for _, addr := range addresses {
			if err := config.ValidateAddress(addr); err != nil {
				return nil, err
			}
		}
	}
	if len(addresses) == 0 {
		return nil, ErrNoAddresses
	}
	logFile := cfg.LogFile
	if opts.LogFile != "" {
		logFile = opts.LogFile
	}
	log := logger.Logger{Path: logFile, Verbose: opts.Verbose}
	if opts.Logger != nil {
		log = *opts.Logger
	}
	binder := opts.Binder
	if binder == nil {
		if opts.Portable {
			binder = bind.ListenBinder{}
		} else {
			binder = bind.SocketBinder{}
		}
	}
	return &runner{
		addresses: addresses,
		keepGoing: opts.KeepGoing || cfg.KeepGoing,
		binder:    binder,
		logger:    log,
	}, nil
}

func (r *runner) run(ctx context.Context) Report {
	report := Report{}
	for i, addr := range r.addresses {
		r.logger.Debugf("binding %s:0", addr)
		res := bind.Attempt(ctx, r.binder, addr)
		report.Results = append(report.Results, res)
		if res.OK() {
			r.logger.Debugf("bound %s:%d", addr, res.Port)
			_ = r.logger.Event("BIND_OK", fmt.Sprintf("address=%s port=%d", addr, res.Port))
			continue
		}
		r.logger.Debugf("bind %s failed: %v", addr, res.Err)
		_ = r.logger.Event("BIND_FAIL", fmt.Sprintf("address=%s error=%q", addr, res.Err.Error()))
		if !r.keepGoing {
			report.Skipped = append(report.Skipped, r.addresses[i+1:]...)
			for _, skipped := range report.Skipped {
				_ = r.logger.Event("BIND_SKIP", fmt.Sprintf("address=%s", skipped))
			}
			break
		}
	}
	return report
}
