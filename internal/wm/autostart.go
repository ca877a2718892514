package wm

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Autostart runs /etc/dwm/autostart.sh (system-wide) and then every regular
// file directly under $HOME/.config/dwm, in that order. Neither is required
// (spec §6 "Autostart"/"Environment").
func Autostart() {
	runIfExecutable("/etc/dwm/autostart.sh")

	home, err := os.UserHomeDir()
	if err != nil {
		log.WithError(err).Warn("could not resolve home directory for autostart")
		return
	}

	dir := filepath.Join(home, ".config", "dwm")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		runIfExecutable(filepath.Join(dir, e.Name()))
	}
}

func runIfExecutable(path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Mode()&0o111 == 0 {
		return
	}
	Spawn(path)
}
