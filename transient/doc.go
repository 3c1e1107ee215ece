// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient sorts transport errors into categories according to
// whether repeating the HTTP attempt has a realistic chance of success.
// The fetch-style transport's retry policies are built on it.
package transient
