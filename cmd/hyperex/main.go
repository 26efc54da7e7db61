// cmd/hyperex/main.go
package main

import (
	"hyperex/internal/app"
	"hyperex/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
