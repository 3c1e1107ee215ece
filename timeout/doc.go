// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout provides per-attempt timeout policies for the
// fetch-style transport. The overall deadline of a request is carried
// by the context passed to the duck's thunk instead.
package timeout
