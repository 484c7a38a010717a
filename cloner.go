// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sparsemap

// Cloner is an interface that enables deep cloning of values of type V.
// If a value implements Cloner[V], [Array.Set] and [Map.Insert] use its
// Clone method for previous values handed out of nodes that are still
// shared with other handles.
type Cloner[V any] interface {
	Clone() V
}
