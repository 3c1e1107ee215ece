// Copyright 2021 The ducks Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command breeds browses the dog.ceo breeds API through two ducks.
//
//	breeds list
//	breeds sub hound --output json
//	breeds list --state --output yaml
//	breeds list --state --select breeds.didLoad
package main

import (
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
)

func main() {
	log.SetHandler(cli.Default)

	err := newRootCmd(os.Stdout, os.Stderr).Execute()
	if err == nil {
		return
	}
	log.WithError(err).Fatal("breeds")
}
