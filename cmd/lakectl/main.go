/*
 * Copyright 2017 Dgraph Labs, Inc. and Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command lakectl is an operator-facing CLI around the compaction policy
// core: it can score and pick rowsets for a synthetic tablet, or run the
// in-memory scheduler against a handful of generated tablets so the whole
// pipeline can be watched end to end without a real storage engine.
package main

import (
	"fmt"
	"os"

	"github.com/ngaut/lakecompact/cmd/lakectl/internal/app"
)

func main() {
	if err := app.RootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
