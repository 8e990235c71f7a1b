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

package intervals_test

import (
	"fmt"

	intervals "github.com/contriboss/intervals-go"
)

func ExampleParseConstraint() {
	c, err := intervals.ParseConstraint(">=1.0.0, <2.0.0 || >=3.0.0")
	if err != nil {
		panic(err)
	}
	fmt.Println(c)
	// Output: [[>=1.0.0, <2.0.0] || >=3.0.0]
}

func ExampleCanonicalize() {
	c, _ := intervals.ParseConstraint("!=1.5.0")
	fmt.Println(intervals.Canonicalize(c))
	// Output: [>=0.0.0.0-dev, <1.5.0] || [>1.5.0, <∞] || dev*
}

func ExampleIsSubsetOf() {
	narrow, _ := intervals.ParseConstraint(">=1.0.0, <2.0.0")
	wide, _ := intervals.ParseConstraint(">=0.5.0")

	fmt.Println(intervals.IsSubsetOf(narrow, wide))
	fmt.Println(intervals.IsSubsetOf(wide, narrow))
	// Output:
	// true
	// false
}

func ExampleCompact() {
	c, _ := intervals.ParseConstraint("<5.0.0 || >5.0.0")
	fmt.Println(intervals.Compact(c))
	// Output: !=5.0.0
}

func ExampleCompileAndMatch() {
	c, _ := intervals.ParseConstraint(">=1.0.0")
	v := intervals.MustVersion("2.0.0")

	fmt.Println(intervals.CompileAndMatch(c, intervals.OpEq, v))
	// Output: true
}
