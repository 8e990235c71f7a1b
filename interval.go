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

// Interval represents a contiguous range of numeric versions as a pair of
// atomic comparisons: a start bound with operator > or >= and an end bound
// with operator < or <=.
//
// Examples:
//   - {>=1.0.0, <2.0.0} represents [1.0.0, 2.0.0)
//   - {>1.0.0, <=2.0.0} represents (1.0.0, 2.0.0]
//   - {>=1.0.0, <∞} represents >=1.0.0
//
// Within a canonical form, intervals are strictly ordered by start version,
// mutually non-overlapping and never empty.
type Interval struct {
	Start AtomicConstraint
	End   AtomicConstraint
}

// ZeroBound returns the sentinel start constraint opening the numeric
// version line: ">=0.0.0.0-dev".
func ZeroBound() AtomicConstraint {
	return zeroBound
}

// PositiveInfinityBound returns the sentinel end constraint closing the
// numeric version line: "<∞".
func PositiveInfinityBound() AtomicConstraint {
	return posInfBound
}

var (
	zeroBound   = AtomicConstraint{op: OpGe, version: versionZero}
	posInfBound = AtomicConstraint{op: OpLt, version: versionPosInf}
)

func fullInterval() Interval {
	return Interval{Start: zeroBound, End: posInfBound}
}

// String returns the interval's rendering, e.g. ">=1.0.0, <2.0.0".
func (iv Interval) String() string {
	return iv.Start.String() + ", " + iv.End.String()
}

// isEmpty returns true if the interval contains no versions. At a single
// version, only the inclusive pairing >=x with <=x denotes a non-empty
// (point) interval; >x with <=x, >=x with <x and >x with <x are all empty.
func (iv Interval) isEmpty() bool {
	if cmp := iv.Start.version.Compare(iv.End.version); cmp != 0 {
		return cmp > 0
	}
	return iv.Start.op != OpGe || iv.End.op != OpLe
}

// isFull returns true if the interval spans the whole numeric line.
func (iv Interval) isFull() bool {
	return iv.Start.op == zeroBound.op && iv.Start.version.Equal(versionZero) &&
		iv.End.op == posInfBound.op && iv.End.version.Equal(versionPosInf)
}

// isPoint returns true if the interval contains exactly one version.
func (iv Interval) isPoint() bool {
	return iv.Start.op == OpGe && iv.End.op == OpLe &&
		iv.Start.version.Equal(iv.End.version)
}

// startsAtZero returns true if the start bound is the Zero sentinel.
func (iv Interval) startsAtZero() bool {
	return iv.Start.op == zeroBound.op && iv.Start.version.Equal(versionZero)
}

// endsAtInfinity returns true if the end bound is the infinity sentinel.
func (iv Interval) endsAtInfinity() bool {
	return iv.End.op == posInfBound.op && iv.End.version.Equal(versionPosInf)
}
