// Copyright 2026 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package intervals

import (
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// BranchPrefix marks a version token as a branch pseudo-version.
// Branch versions live off the numeric version line: they are never
// numerically compared and only ever equal themselves.
const BranchPrefix = "dev-"

// Version is an immutable version value: either a numeric version ordered
// through github.com/hashicorp/go-version, a branch token carrying the
// "dev-" prefix, or one of the two sentinels bounding the numeric line
// (Zero and PositiveInfinity).
//
// Callers are expected to hand in already-normalized version strings; the
// string given at construction is the canonical rendering used for cache
// keys and list comparisons.
type Version struct {
	raw     string
	branch  bool
	posInf  bool
	numeric *goversion.Version
}

// NewVersion parses a version string. Strings with the "dev-" prefix become
// branch versions and are accepted verbatim; anything else must parse as a
// numeric version.
func NewVersion(s string) (Version, error) {
	if strings.HasPrefix(s, BranchPrefix) {
		return Version{raw: s, branch: true}, nil
	}
	v, err := goversion.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return Version{raw: s, numeric: v}, nil
}

// MustVersion is like NewVersion but panics on error.
// Intended for fixed version literals.
func MustVersion(s string) Version {
	v, err := NewVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

var (
	versionZero = Version{
		raw:     "0.0.0.0-dev",
		numeric: goversion.Must(goversion.NewVersion("0.0.0.0-dev")),
	}
	versionPosInf = Version{raw: "∞", posInf: true}
)

// Zero returns the sentinel version below every release, bounding the
// numeric version line on the left.
func Zero() Version {
	return versionZero
}

// PositiveInfinity returns the sentinel version above every release,
// bounding the numeric version line on the right.
func PositiveInfinity() Version {
	return versionPosInf
}

// String returns the canonical rendering of the version.
func (v Version) String() string {
	return v.raw
}

// IsBranch returns true if this is a branch pseudo-version.
func (v Version) IsBranch() bool {
	return v.branch
}

// Compare orders two versions.
// Returns:
//   - negative if v < other
//   - zero if v == other
//   - positive if v > other
//
// PositiveInfinity is above everything. Branch versions have no numeric
// order; comparisons involving one fall back to string comparison so that
// sorting stays deterministic, mirroring how unrelated version types are
// ordered elsewhere in the module.
func (v Version) Compare(other Version) int {
	switch {
	case v.posInf && other.posInf:
		return 0
	case v.posInf:
		return 1
	case other.posInf:
		return -1
	}
	if v.branch || other.branch {
		return strings.Compare(v.raw, other.raw)
	}
	return v.numeric.Compare(other.numeric)
}

// Equal reports whether two versions denote the same point. Branch versions
// compare by token; a branch version never equals a numeric one.
func (v Version) Equal(other Version) bool {
	if v.branch != other.branch || v.posInf != other.posInf {
		return false
	}
	if v.branch {
		return v.raw == other.raw
	}
	if v.posInf {
		return true
	}
	return v.numeric.Compare(other.numeric) == 0
}
