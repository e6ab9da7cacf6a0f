// numdeck-hook hosts the low-level keyboard hook in its own minimal process,
// so contention in the main application can never cost the hook its latency
// budget. It communicates with numdeck only through a named shared-memory
// region and exits on its own when the parent process dies.
package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"numdeck/internal/numpad"
)

var (
	parentPID = flag.Int("parent", 0, "pid of the owning numdeck process")
	shmName   = flag.String("shm", "", "override the shared memory region name")
	buttons   = flag.String("buttons", "", "scan:row:col button mappings, comma separated")
	back      = flag.String("back", "", "back-navigation scan codes, comma separated")
	verbose   = flag.Bool("verbose", false, "enable debug logging")
)

func main() {
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	layout := numpad.DefaultLayout()
	if *buttons != "" || *back != "" {
		l, err := numpad.ParseLayoutFlags(*buttons, *back)
		if err != nil {
			logrus.WithError(err).Fatal("bad layout arguments")
		}
		layout = l
	}

	if err := run(*parentPID, *shmName, layout); err != nil {
		logrus.WithError(err).Fatal("capture helper failed")
	}
}
