package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	crashMu   sync.Mutex
	crashHook func()
	crashOnce sync.Once

	// Replaced in tests
	crashOut  io.Writer = os.Stderr
	crashExit           = os.Exit
	crashLog  *logrus.Logger
)

// SetCrashHook registers the frontend teardown run before the stack is printed
// The terminal frontend restores the screen here
func SetCrashHook(fn func()) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashHook = fn
}

// SetCrashLogger mirrors crash reports into l
func SetCrashLogger(l *logrus.Logger) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashLog = l
}

// HandleCrash restores the frontend, prints the panic with its stack and exits
// Only the first crash is reported when several goroutines panic together
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashOnce.Do(func() {
		crashMu.Lock()
		hook, l := crashHook, crashLog
		crashMu.Unlock()

		if hook != nil {
			hook()
		}

		stack := debug.Stack()
		if l != nil {
			l.WithField("stack", string(stack)).Errorf("crash: %v", r)
		}

		// \r\n keeps the output aligned if the terminal is still raw
		fmt.Fprintf(crashOut, "\r\n\x1b[31mMATHFALL CRASHED: %v\x1b[0m\r\n", r)
		fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", stack)
		if f, ok := crashOut.(*os.File); ok {
			f.Sync()
		}
		crashExit(1)
	})
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the go keyword so a crash restores the terminal
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
