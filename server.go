package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"trailangels/api/handlers"
	"trailangels/api/routes"
	"trailangels/config"
	"trailangels/db"
	"trailangels/services"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	err := config.LoadConfig(configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	log.Println("Starting server...")

	if err := db.ConnectDB(); err != nil {
		panic("Failed to connect to the database: " + err.Error())
	}

	if err := services.InitRedis(); err != nil {
		log.Printf("WARN: Redis unavailable, feed cache disabled: %v", err)
		services.RedisClient = nil
	} else {
		defer services.CloseRedis()
	}

	if err := services.InitRabbitMQ(); err != nil {
		log.Printf("WARN: RabbitMQ unavailable, radio fan-out disabled: %v", err)
	} else {
		defer services.CloseRabbitMQ()
		if err := services.StartRadioEventConsumer(context.Background(), "radio_ws_fanout"); err != nil {
			log.Printf("WARN: failed to start radio consumer: %v", err)
		}
	}

	handlers.RadioGate = services.NewModerationClient(
		config.AppConfig.Moderation.Endpoint,
		time.Duration(config.AppConfig.Moderation.TimeoutSeconds)*time.Second,
	)

	inboxCfg := config.AppConfig.Inbox
	handlers.Inboxes = handlers.NewInboxRegistry(
		inboxCfg.DemoReplies, inboxCfg.SeedDemo, inboxCfg.PersistentStore)

	angels := services.NewAngelService()
	if err := angels.SeedDemo(context.Background(), 6); err != nil {
		log.Printf("WARN: failed to seed trail angel directory: %v", err)
	}

	router := gin.Default()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	routes.PublicApi(router, routes.DefaultAuth())

	addr := fmt.Sprintf(":%d", config.AppConfig.Backend.Port)
	if config.AppConfig.Backend.Port == 0 {
		addr = ":8080"
	}
	if err := router.Run(addr); err != nil {
		panic(err)
	}
}
