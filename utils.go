package main

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/FahriNazarudin/Frog/models"
)

func LoadConfig() (models.Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		return models.Config{}, err
	}
	config := models.Config{
		MongoURI:      os.Getenv("MONGODB_URI"),
		DBName:        os.Getenv("DB_NAME"),
		CacheAddr:     os.Getenv("CACHE_ADDR"),
		CachePassword: os.Getenv("CACHE_PASSWORD"),
		ServerHost:    os.Getenv("SERVER_HOST"),
		ServerPort:    os.Getenv("SERVER_PORT"),
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return models.Config{}, errors.New("failed intialization of config: JWT_SECRET is required")
	}
	config.JWTSecret = []byte(secret)
	return config, nil
}

func LoadAppConfig(path string) (models.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.AppConfig{}, err
	}
	var config models.AppConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return models.AppConfig{}, err
	}
	// list queries stay hot for an hour, single posts for half
	if config.Cache.PostsTTLSeconds == 0 {
		config.Cache.PostsTTLSeconds = 3600
	}
	if config.Cache.PostTTLSeconds == 0 {
		config.Cache.PostTTLSeconds = 1800
	}
	if config.Server.RequestTimeoutSeconds == 0 {
		config.Server.RequestTimeoutSeconds = 10
	}
	return config, nil
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func checkRegister(user models.User) error {
	if len(user.Name) == 0 {
		return fmt.Errorf("%w: name is required", models.ErrValidation)
	}
	if len(user.Username) == 0 {
		return fmt.Errorf("%w: username is required", models.ErrValidation)
	}
	if len(user.Email) == 0 {
		return fmt.Errorf("%w: email is required", models.ErrValidation)
	}
	if !emailRegex.MatchString(user.Email) {
		return fmt.Errorf("%w: invalid email format", models.ErrValidation)
	}
	if len(user.Password) < 5 {
		return fmt.Errorf("%w: password must be at least 5 characters", models.ErrValidation)
	}
	return nil
}
