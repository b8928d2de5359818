// This program provides a wallet for signing and submitting transfers
// to a running relay pair.
package main

import "github.com/relaylabs/relay/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
