package main

import (
	"os"

	"github.com/yungbote/ledger-backend/cmd/ledger/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
