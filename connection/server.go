package connection

import (
	"log"
	"machineguard/controller/answer"
	"machineguard/controller/machine"
	"machineguard/controller/maintenance"
	"machineguard/controller/report"
	"machineguard/controller/run"
	"machineguard/controller/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func StartServer() {
	router := gin.Default()

	DB, err := DBConnection()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	router.Use(cors.Default())

	template.TemplateController(router, DB)
	template.CreateTemplateController(router, DB)
	template.UpdateTemplateController(router, DB)
	template.DeprecateTemplateController(router, DB)

	run.RunController(router, DB)
	run.StartRunController(router, DB)
	run.FinishRunController(router, DB)

	answer.AnswerController(router, DB)

	maintenance.MaintenanceController(router, DB)
	maintenance.CreateTaskController(router, DB)
	maintenance.CompleteTaskController(router, DB)
	maintenance.CancelTaskController(router, DB)

	machine.MachineController(router, DB)

	report.ReportController(router, DB)

	router.Run()
}
