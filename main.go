package main

import (
	"log"
	"net/http"

	"github.com/soptrack/soptracker/internal/api"
	"github.com/soptrack/soptracker/internal/config"
	"github.com/soptrack/soptracker/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config: ", err)
	}

	db, err := repository.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatal("init db: ", err)
	}
	defer db.Close()

	router := api.SetupRouter(db)

	log.Printf("server listening at http://localhost%s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, router); err != nil {
		log.Fatal("serve: ", err)
	}
}
