package lib

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli"
)

const buildTimeFormat = "2006-01-02T15:04:05-0700"

var (
	// VersionString is the git describe version set at build time
	VersionString = "?"
	// RevisionString is the git revision set at build time
	RevisionString = "?"
	// GeneratedString is the build date set at build time
	GeneratedString = "?"
)

func init() {
	cli.VersionPrinter = printVersion
}

func printVersion(c *cli.Context) {
	fmt.Printf("%s %s (revision %s, built %s)\n",
		c.App.Name, c.App.Version, RevisionString, GeneratedTime().Format(buildTimeFormat))
}

// GeneratedTime returns the build date, falling back to the
// binary's mtime when no date was stamped in.
func GeneratedTime() time.Time {
	if GeneratedString != "?" {
		t, err := time.Parse(buildTimeFormat, GeneratedString)
		if err == nil {
			return t
		}
	}

	info, err := os.Stat(os.Args[0])
	if err != nil {
		return time.Now().UTC()
	}
	return info.ModTime()
}
