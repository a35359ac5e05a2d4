package async

import (
	"runtime/debug"

	log "github.com/sirupsen/logrus"
)

func pcall(fn func()) {
	defer func() {
		if err := recover(); err != nil {
			log.Errorf("async/pcall: Error=%v\n%s", err, debug.Stack())
		}
	}()

	fn()
}

// Run fn in a new goroutine, a panic is logged instead of crashing the process
func Run(fn func()) {
	go pcall(fn)
}
