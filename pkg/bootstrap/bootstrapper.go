// Package bootstrap opens a required outbound connection at process start,
// retrying a bounded number of times with a fixed delay before giving up.
package bootstrap

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/logger"
	reasoncodes "github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/reason_codes"
)

const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = 5 * time.Second
)

type State int

const (
	Disconnected State = iota
	Connecting
	Connected
	Aborted
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "Disconnected"
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	case Aborted:
		return "Aborted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ConnectFunc makes a single connection attempt.
type ConnectFunc[C any] func(ctx context.Context) (C, error)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

type Bootstrapper[C any] struct {
	Name       string
	Connect    ConnectFunc[C]
	MaxRetries int
	RetryDelay time.Duration
	Sleep      SleepFunc
	Logger     *logger.Logger

	mu       sync.Mutex
	state    State
	attempts int
}

func New[C any](name string, connect ConnectFunc[C], log *logger.Logger) *Bootstrapper[C] {
	return &Bootstrapper[C]{
		Name:       name,
		Connect:    connect,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
		Sleep:      ContextSleep,
		Logger:     log,
	}
}

// Run drives Disconnected -> Connecting -> Connected, or ends in Aborted once
// MaxRetries attempts have failed. The returned error is a ConnectionAborted
// reason carrying the last connection error.
func (b *Bootstrapper[C]) Run(ctx context.Context) (C, error) {
	var zero C
	log := b.log()
	maxRetries := b.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	b.setState(Disconnected, 0)
	attempts := 0

	for {
		b.setState(Connecting, attempts)
		conn, err := b.Connect(ctx)
		if err == nil {
			b.setState(Connected, attempts)
			log.Infof("Connected to %s", b.Name)
			return conn, nil
		}

		attempts++
		b.setState(Connecting, attempts)
		log.Warnf("Attempt %d to connect to %s failed: %v", attempts, b.Name, err)

		if attempts >= maxRetries {
			b.setState(Aborted, attempts)
			log.Errorf(err, "Failed to connect to %s after %d attempts", b.Name, attempts)
			return zero, reasoncodes.Aborted(
				fmt.Sprintf("could not connect to %s after %d attempts", b.Name, attempts),
				err,
			)
		}

		log.Infof("Retrying connection to %s in %v...", b.Name, b.RetryDelay)
		if err := b.sleep(ctx); err != nil {
			b.setState(Aborted, attempts)
			return zero, reasoncodes.Aborted(fmt.Sprintf("connecting to %s interrupted", b.Name), err)
		}
	}
}

func (b *Bootstrapper[C]) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Bootstrapper[C]) Attempts() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attempts
}

func (b *Bootstrapper[C]) setState(state State, attempts int) {
	b.mu.Lock()
	b.state = state
	b.attempts = attempts
	b.mu.Unlock()
}

func (b *Bootstrapper[C]) sleep(ctx context.Context) error {
	if b.Sleep == nil {
		return ContextSleep(ctx, b.RetryDelay)
	}
	return b.Sleep(ctx, b.RetryDelay)
}

func (b *Bootstrapper[C]) log() *logger.Logger {
	if b.Logger == nil {
		return logger.Nop()
	}
	return b.Logger
}

func ContextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
