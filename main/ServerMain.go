package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"qhub/hub_server"
	"qhub/hub_server/config"
)

func main() {
	configPath := flag.String("config", "", "path to the config file, defaults apply when omitted")
	flag.Parse()
	if err := config.Load(*configPath); err != nil {
		log.Fatalf("failed to load config from %s: %s", *configPath, err.Error())
	}
	server, err := hub_server.NewServer()
	if err != nil {
		log.Fatalf("failed to assemble server: %s", err.Error())
	}
	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		<-signals
		server.Stop()
	}()
	if err = server.Start(); err != nil {
		log.Printf("server stopped: %s", err.Error())
	}
}
