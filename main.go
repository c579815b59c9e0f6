package main

import (
	"machineguard/connection"
	"machineguard/scheduler"

	"github.com/gin-gonic/gin"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	scheduler.StartScheduler()
	connection.StartServer()
}
