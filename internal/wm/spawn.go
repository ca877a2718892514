package wm

import (
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// Spawn detaches and runs cmd with args, the way dwm's spawn() forks and
// execs. The child is reaped by ReapChildren's SIGCHLD handler, not here.
func Spawn(cmd string, args ...string) {
	c := exec.Command(cmd, args...)
	c.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := c.Start(); err != nil {
		log.WithError(err).WithField("cmd", cmd).Warn("spawn failed")
	}
}

// ReapChildren is the one background goroutine the core runs (spec §5): it
// only reaps terminated children so they don't accumulate as zombies,
// touching no shared Context state.
func ReapChildren() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGCHLD)
	go func() {
		for range sigs {
			for {
				var status syscall.WaitStatus
				pid, err := syscall.Wait4(-1, &status, syscall.WNOHANG, nil)
				if pid <= 0 || err != nil {
					break
				}
			}
		}
	}()
}
