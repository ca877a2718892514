package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gowm/dwm/internal/common"
	"github.com/gowm/dwm/internal/wm"

	log "github.com/sirupsen/logrus"
)

func main() {
	showVersion := flag.Bool("v", false, "print version and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-v]\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(2)
	}

	if *showVersion {
		fmt.Println(common.Summary())
		return
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	ctx, err := wm.Setup()
	if err != nil {
		log.WithError(err).Fatal("setup failed")
		os.Exit(1)
	}

	wm.ReapChildren()
	wm.Autostart()
	wm.Scan(ctx)

	wm.Run(ctx)

	wm.Teardown(ctx)
}
