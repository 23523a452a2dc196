package main

import (
	"sampark-api/core/logger"
	"sampark-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Fatal("run server error", "error", err)
	}
}
