// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/bytelens/bytelens/cmd/bytelens"

func main() {
	cmd.Execute()
}
