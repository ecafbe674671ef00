package commands

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"os/user"
	"path"
	"strings"
	"time"

	"github.com/flowtag/flowtag/config"
	"github.com/flowtag/flowtag/resources"
	"github.com/flowtag/flowtag/util"

	"github.com/blang/semver"
	"github.com/google/go-github/github"
	log "github.com/sirupsen/logrus"
)

//Strings used for informing the user of a new version.
var informFmtStr = "\nTheres a new %s version of flowtag %s available at:\nhttps://github.com/flowtag/flowtag/releases\n"
var versions = []string{"Major", "Minor", "Patch"}

// updateCheck performs a check for a new version of flowtag against the git
// repository and returns a string indicating the new version if available.
// The timestamp of the last check is cached in a file under the user's
// config directory so the remote is contacted at most once per configured
// interval.
func updateCheck(configFile string) string {
	res := resources.InitResources(configFile)
	delta := res.Config.S.UserConfig.UpdateCheckFrequency

	if delta <= 0 {
		return ""
	}

	var newVersion semver.Version
	var err error

	days := time.Now().Sub(lastCheck()).Hours() / 24

	if days > float64(delta) {
		newVersion, err = getRemoteVersion()

		if err != nil {
			return ""
		}

		recordCheck(time.Now())

		res.Log.WithFields(log.Fields{
			"LastUpdateCheck": time.Now(),
			"NewestVersion":   fmt.Sprint(newVersion),
		}).Info("Checking for new version")
	}

	configVersion, err := semver.ParseTolerant(config.Version)
	if err != nil {
		return ""
	}

	if newVersion.GT(configVersion) {
		return informUser(configVersion, newVersion)
	}

	return ""
}

// checkStampPath locates the cached timestamp of the last update check
func checkStampPath() (string, error) {
	user, err := user.Current()
	if err != nil {
		return "", err
	}
	return path.Join(user.HomeDir, ".flowtag", "last-update-check"), nil
}

// lastCheck returns the time of the last update check, or the zero time if
// no check has been recorded
func lastCheck() time.Time {
	stampPath, err := checkStampPath()
	if err != nil {
		return time.Time{}
	}
	contents, err := ioutil.ReadFile(stampPath)
	if err != nil {
		return time.Time{}
	}
	timestamp, err := time.Parse(util.TimeFormat, strings.TrimSpace(string(contents)))
	if err != nil {
		return time.Time{}
	}
	return timestamp
}

// recordCheck caches the time of the latest update check
func recordCheck(timestamp time.Time) {
	stampPath, err := checkStampPath()
	if err != nil {
		return
	}
	os.MkdirAll(path.Dir(stampPath), 0755)
	ioutil.WriteFile(stampPath, []byte(timestamp.Format(util.TimeFormat)), 0644)
}

// Returns the first index where v1 is greater than v2
func versionDiffIndex(v1 semver.Version, v2 semver.Version) int {

	if v1.Major > v2.Major {
		return 0
	}
	if v1.Minor > v2.Minor {
		return 1
	}

	return 2
}

func getRemoteVersion() (semver.Version, error) {
	client := github.NewClient(nil)
	refs, _, err := client.Git.GetRefs(context.Background(), "flowtag", "flowtag", "refs/tags/v")

	if err == nil {
		s := strings.TrimPrefix(*refs[len(refs)-1].Ref, "refs/tags/")
		return semver.ParseTolerant(s)
	}
	return semver.Version{}, err
}

// Assembles a notice for the user informing them of an upgrade.
// The return value is printed regardless so, "" is returned on errror.
func informUser(local semver.Version, remote semver.Version) string {
	return fmt.Sprintf(informFmtStr,
		versions[versionDiffIndex(remote, local)],
		fmt.Sprint(remote))
}
