package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/trackline/tracker/config"
	"github.com/trackline/tracker/db"
	"github.com/trackline/tracker/middleware"
	"github.com/trackline/tracker/minio"
	"github.com/trackline/tracker/render"
	"github.com/trackline/tracker/routes"
)

func main() {
	config.LoadConfig()
	middleware.Init()
	db.Init()
	minio.InitMinio()
	render.Init(config.TemplateDir)

	r := gin.Default()
	routes.RegisterRoutes(r)

	if err := r.Run(":" + config.ServerPort); err != nil {
		log.Fatal(err)
	}
}
