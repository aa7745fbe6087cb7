package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"
)

// Version information for the cairolint CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Number is the plain semantic version, compared against `min_version`.
	Number = "0.1.0"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Semver parses Number. A malformed Number is a build error and panics.
func Semver() *semver.Version {
	v, err := semver.NewVersion(Number)
	if err != nil {
		panic(fmt.Errorf("version: bad build version %q: %w", Number, err))
	}
	return v
}

// Colored renders Number with each component highlighted.
func Colored() string {
	v := Semver()
	s := versionMajorColor.Sprint(v.Major()) + "." +
		versionMinorColor.Sprint(v.Minor()) + "." +
		versionPatchColor.Sprint(v.Patch())
	if pre := v.Prerelease(); pre != "" {
		s += "-" + pre
	}
	return s
}

// Satisfies reports whether the running version meets constraint
// (e.g. ">= 0.1, < 2").
func Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	// пререлизы сравниваем как релиз: 0.2.0-dev удовлетворяет ">= 0.1"
	v := Semver()
	if v.Prerelease() != "" {
		plain, err := v.SetPrerelease("")
		if err != nil {
			return false, err
		}
		v = &plain
	}
	return c.Check(v), nil
}
