// Package version describes the tyir build.
package version

import (
	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"
)

// Overridable at build time via -ldflags "-X tyir/internal/version.Version=...".
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Banner renders Version with coloured components. Versions that do not
// parse are returned unchanged.
func Banner() string {
	v, err := semver.NewVersion(Version)
	if err != nil {
		return Version
	}
	out := majorColor.Sprint(v.Major()) + "." + minorColor.Sprint(v.Minor()) + "." + patchColor.Sprint(v.Patch())
	if pre := v.Prerelease(); pre != "" {
		out += "-" + pre
	}
	if meta := v.Metadata(); meta != "" {
		out += "+" + meta
	}
	return out
}

// Compatible reports whether data written by a tool of version other can
// be read by this build: same major and minor. Unparsable versions are
// never compatible.
func Compatible(other string) bool {
	return compatible(Version, other)
}

func compatible(current, other string) bool {
	cur, err := semver.NewVersion(current)
	if err != nil {
		return false
	}
	v, err := semver.NewVersion(other)
	if err != nil {
		return false
	}
	return cur.Major() == v.Major() && cur.Minor() == v.Minor()
}
