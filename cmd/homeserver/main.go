package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"courier/internal/homeserver"
)

func main() {
	var (
		listen      = flag.String("listen", ":8080", "listen address")
		dataDir     = flag.String("data", "", "storage directory (empty = in-memory)")
		deleteRPS   = flag.Float64("delete-rps", 25, "per-owner delete requests per second")
		deleteBurst = flag.Int("delete-burst", 50, "per-owner delete burst")
		logLevel    = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(*logLevel); err == nil {
		log.SetLevel(lvl)
	}

	srv, err := homeserver.NewServer(homeserver.ServerConfig{
		DataDir:     *dataDir,
		DeleteRPS:   *deleteRPS,
		DeleteBurst: *deleteBurst,
		Logger:      log,
	})
	if err != nil {
		log.WithError(err).Error("open store")
		os.Exit(1)
	}
	defer srv.Close()

	log.WithField("addr", *listen).Info("homeserver listening")
	if err := http.ListenAndServe(*listen, srv.Handler()); err != nil {
		log.WithError(err).Error("serve")
		os.Exit(1)
	}
}
