// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pointer

// workEntry is a pending propagation: the objects of pts not yet known to
// ptr must be merged into it and forwarded. The same pointer may be queued
// several times with different deltas; processing order does not change the
// fixed point.
type workEntry struct {
	ptr Pointer
	pts *PointsToSet
}

// workList is a FIFO queue of pending propagations. It is a queue, not a
// set: entries are never merged.
type workList struct {
	entries []workEntry
}

func (w *workList) add(p Pointer, pts *PointsToSet) {
	w.entries = append(w.entries, workEntry{ptr: p, pts: pts})
}

func (w *workList) empty() bool { return len(w.entries) == 0 }

func (w *workList) poll() workEntry {
	e := w.entries[0]
	w.entries = w.entries[1:]
	return e
}
