// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import "runtime"

// memoryUsageMB reports the process's current heap usage in megabytes,
// the Go-native counterpart to OSystemLayer::memory_usage() in the
// original; no pack dependency wraps runtime.MemStats so stdlib is used
// directly here.
func memoryUsageMB() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.HeapAlloc) / (1024 * 1024)
}
