// Command bidump inspects snapshot files written by the bimap package.
//
// It reads a string-to-string snapshot and prints the associations it holds,
// either forward (key: value) or inverse (value: key).
package main

//spellchecker:words bidump bimap

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/FAU-CDI/bimap"
	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"
	"github.com/tkw1536/pkglib/perf"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func main() {
	if debugProfile != "" {
		defer profile.Start(profile.ProfilePath(debugProfile)).Stop()
	}

	if len(nArgs) != 1 {
		logger.Error("Usage: bidump [-help] [...flags] /path/to/snapshot")
		flag.PrintDefaults()
		os.Exit(1)
	}

	file, err := os.Open(nArgs[0])
	if err != nil {
		logger.Error("open snapshot", "error", err)
		os.Exit(1)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		logger.Error("stat snapshot", "error", err)
		os.Exit(1)
	}

	start := perf.Now()
	mp, err := bimap.Read[string, string](file)
	if err != nil {
		logger.Error("read snapshot", "error", err)
		os.Exit(1)
	}
	defer mp.Close()
	took := perf.Now().Sub(start)

	count, err := mp.Len()
	if err != nil {
		logger.Error("count associations", "error", err)
		os.Exit(1)
	}

	logger.Info("loaded snapshot",
		"path", nArgs[0],
		"size", humanize.Bytes(uint64(info.Size())),
		"policy", mp.Policy(),
		"associations", humanize.Comma(int64(count)),
		"took", took,
	)

	if countOnly {
		return
	}

	if inverseFlag {
		err = mp.Inverse().Iterate(func(value string, key string) error {
			fmt.Printf("%s: %s\n", value, key)
			return nil
		})
	} else {
		err = mp.Iterate(func(key string, value string) error {
			fmt.Printf("%s: %s\n", key, value)
			return nil
		})
	}
	if err != nil {
		logger.Error("dump associations", "error", err)
		os.Exit(1)
	}
}

var nArgs []string

var inverseFlag bool
var countOnly bool
var debugProfile = ""

func init() {
	var legalFlag bool = false
	flag.BoolVar(&legalFlag, "legal", legalFlag, "Display legal notices and exit")

	flag.BoolVar(&inverseFlag, "inverse", inverseFlag, "Dump the inverse direction (value: key)")
	flag.BoolVar(&countOnly, "count", countOnly, "Only print the number of associations")

	flag.StringVar(&debugProfile, "debug-profile", debugProfile, "write out a debugging profile to the given path")

	defer func() {
		if legalFlag {
			fmt.Print(bimap.LegalText())
			os.Exit(0)
		}
	}()

	flag.Parse()
	nArgs = flag.Args()
}
