package internal

import (
	"fmt"
	"os"
	"os/user"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/earthboundkid/versioninfo/v2"
	log "github.com/sirupsen/logrus"
)

var sensitiveRegex = regexp.MustCompile(`(?i)(PASSWORD|API_KEY|ACCESS_KEY|SECRET|TOKEN)`)

func ShowVersion() {
	log.Infof("Version: %s", versioninfo.Short())
}

// MaskEnvironment returns KEY=value pairs sorted by key, with the values of
// anything that looks like a credential replaced by asterisks.
func MaskEnvironment(environ []string) []string {
	sorted := append([]string(nil), environ...)
	sort.Slice(sorted, func(i, j int) bool {
		keyI := strings.SplitN(sorted[i], "=", 2)[0]
		keyJ := strings.SplitN(sorted[j], "=", 2)[0]
		return keyI < keyJ
	})

	for i, entry := range sorted {
		kv := strings.SplitN(entry, "=", 2)
		if len(kv) == 2 && sensitiveRegex.MatchString(kv[0]) {
			sorted[i] = kv[0] + "=********"
		}
	}
	return sorted
}

func EnvironmentVars() {
	log.Debug("Environment variables")
	for _, entry := range MaskEnvironment(os.Environ()) {
		log.Debugf("  %s", entry)
	}
}

func UserInfo() {
	log.Debugf("PID: %d", os.Getpid())
	currentUser, err := user.Current()
	if err != nil {
		log.Warnf("Error getting current user: %v", err)
	} else {
		log.Debugf("User: uid=%s(%s) gid=%s", currentUser.Uid, currentUser.Username, currentUser.Gid)
	}
	groups, err := os.Getgroups()
	if err != nil {
		log.Warnf("Error getting groups: %v", err)
	} else {
		groupNames := make([]string, 0, len(groups))
		for _, gid := range groups {
			group, err := user.LookupGroupId(strconv.Itoa(gid))
			if err != nil {
				groupNames = append(groupNames, strconv.Itoa(gid)) // Append ID if name lookup fails
			} else {
				groupNames = append(groupNames, fmt.Sprintf("%s(%s)", group.Name, group.Gid))
			}
		}
		log.Debugf("Groups: %v", groupNames)
	}
}
