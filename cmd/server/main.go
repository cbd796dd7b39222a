package main

import (
	"os"

	"github.com/ankush43545-hub/LumoBackendTest/internal/app"
)

func main() {
	os.Exit(app.Run())
}
