package main

import (
	"context"

	"forum-checkin/cmd/checkin/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
