//go:build linux || darwin

// Package pipehost is a [rtlocal.HostLoop] for Unix platforms, woken
// through a non-blocking self-pipe/eventfd exactly the way the teacher's
// eventloop package wakes its own poller (wakeup_linux.go's
// unix.Eventfd, wakeup_darwin.go's syscall.Pipe self-pipe) — generalized
// here from "wake the fd poller" to "wake a blocking read."
package pipehost

import (
	"golang.org/x/sys/unix"

	"github.com/joeycumines/rtlocal-core"
)

// Loop is a [rtlocal.HostLoop] that blocks in a read syscall on a wake
// fd between steps, the simplest faithful stand-in for "a real OS event
// loop" this package can drive without pulling in an actual poller.
type Loop struct {
	readFd, writeFd int
}

// New creates a Loop with its wake fd pair open. Call Close when done.
func New() (*Loop, error) {
	r, w, err := createWakeFd()
	if err != nil {
		return nil, err
	}
	return &Loop{readFd: r, writeFd: w}, nil
}

// Close releases the wake fd pair.
func (l *Loop) Close() error {
	return closeWakeFd(l.readFd, l.writeFd)
}

// Waker implements [rtlocal.HostLoop].
func (l *Loop) Waker() rtlocal.HostWaker {
	return (*waker)(l)
}

// Run implements [rtlocal.HostLoop]: calls step, then blocks on the wake
// fd until the next wake, one blocking read per iteration. That single
// read is the only place this loop ever consumes the fd, so a wake that
// lands before Run starts, or anywhere between the previous block
// returning and this one starting, is still sitting in the fd and is
// consumed immediately rather than lost — there is no separate drain
// phase that could race a concurrent Wake() and empty the fd just
// before a blocking read goes to sleep on it. A wake that arrives while
// step is still running is likewise picked up the moment block is
// called next. Coalesced wakes (several Wake() calls before block ever
// runs) just mean the read returns immediately and step runs an extra,
// harmless time.
func (l *Loop) Run(step func() (done bool, value any)) any {
	for {
		if done, value := step(); done {
			return value
		}
		if err := l.block(); err != nil {
			panic(err)
		}
	}
}

// block waits for at least one wake notification, using a blocking read
// on the (non-pollable outside this call) wake fd.
func (l *Loop) block() error {
	if err := unix.SetNonblock(l.readFd, false); err != nil {
		return err
	}
	defer unix.SetNonblock(l.readFd, true)
	var buf [8]byte
	_, err := unix.Read(l.readFd, buf[:])
	return err
}

type waker Loop

// Wake writes an 8-byte buffer holding the value 1 to the pipe/eventfd
// (the write size an eventfd requires), the same way the teacher's
// submitWakeup writes to wakePipeWrite.
func (w *waker) Wake() {
	buf := [8]byte{1}
	_, _ = unix.Write(w.writeFd, buf[:])
}
