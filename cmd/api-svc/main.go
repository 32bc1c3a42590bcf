package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"socialnet/internal/config"
	"socialnet/internal/dbmysql"
	"socialnet/internal/di"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system env variables")
	}

	// step-1: load configuration once at process start
	cnf := config.Load()
	log.Println("Configuration loaded")

	// step-2: initialize database (pool + migrations)
	db, err := dbmysql.NewMySQL(cnf)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully")

	// step-3: wire up all the dependencies
	app, err := di.InitializeAPI(db, cnf)
	if err != nil {
		log.Fatalf("Failed to wire dependencies: %v", err)
	}
	log.Println("Dependencies wired successfully")

	// step-4: routes; resource handlers live under /api, stored images are
	// served as static files
	router := mux.NewRouter()
	apiRouter := router.PathPrefix("/api").Subrouter()
	app.UserHandler.Register(apiRouter)
	app.PostHandler.Register(apiRouter)
	app.UploadServer.Register(router)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	server := &http.Server{
		Addr:         cnf.Server.Host + ":" + cnf.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cnf.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cnf.Server.WriteTimeout) * time.Second,
	}

	log.Printf("API service listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Failed to serve HTTP: %v", err)
	}
}
