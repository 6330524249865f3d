// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/nsalias/nsalias/cmd/nsalias"

func main() {
	cmd.Execute()
}
