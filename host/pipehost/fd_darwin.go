//go:build darwin

package pipehost

import "syscall"

// createWakeFd opens a non-blocking, close-on-exec self-pipe, lifted
// from the teacher's wakeup_darwin.go.
func createWakeFd() (int, int, error) {
	var fds [2]int
	if err := syscall.Pipe(fds[:]); err != nil {
		return 0, 0, err
	}
	cleanup := func() {
		syscall.Close(fds[0])
		syscall.Close(fds[1])
	}
	syscall.CloseOnExec(fds[0])
	syscall.CloseOnExec(fds[1])
	if err := syscall.SetNonblock(fds[0], true); err != nil {
		cleanup()
		return 0, 0, err
	}
	if err := syscall.SetNonblock(fds[1], true); err != nil {
		cleanup()
		return 0, 0, err
	}
	return fds[0], fds[1], nil
}

func closeWakeFd(readFd, writeFd int) error {
	if readFd >= 0 {
		_ = syscall.Close(readFd)
	}
	if writeFd >= 0 && writeFd != readFd {
		_ = syscall.Close(writeFd)
	}
	return nil
}
