package main

import (
	"context"
	"log"
	"time"

	"github.com/FahriNazarudin/Frog/cachedRepo"
	"github.com/FahriNazarudin/Frog/db"
	"github.com/FahriNazarudin/Frog/followRepo"
	"github.com/FahriNazarudin/Frog/postRepo"
	"github.com/FahriNazarudin/Frog/userRepo"
)

func main() {
	InitLogger()

	config, err := LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config file: ", err.Error())
	}
	appConfig, err := LoadAppConfig("config.yaml")
	if err != nil {
		log.Fatal("Failed to load app config: ", err.Error())
	}

	database, err := db.InitDB(context.Background(), config)
	if err != nil {
		log.Fatal("Failed to initialize database connection: ", err.Error())
	}
	defer database.Client().Disconnect(context.Background())

	posts := postRepo.NewMongoRepo(database)
	users := userRepo.NewMongoRepo(database)
	follows := followRepo.NewMongoRepo(database)

	cache, err := cachedRepo.NewRedisCache(config.CacheAddr, config.CachePassword)
	if err != nil {
		log.Fatal("Failed to connect to cache: ", err.Error())
	}
	defer cache.Close()

	cachedPosts := cachedRepo.NewCachedRepo(posts, cache,
		time.Duration(appConfig.Cache.PostsTTLSeconds)*time.Second,
		time.Duration(appConfig.Cache.PostTTLSeconds)*time.Second,
	)

	auth := NewAuthResolver(users, config.JWTSecret)

	server, err := NewServer(config, appConfig, cachedPosts, users, follows, auth)
	if err != nil {
		log.Fatal("Failed to build server: ", err.Error())
	}
	log.Fatal(server.start())
}
