// Package config loads environment-driven configuration structs.
//
// Fields are declared with `env` tags and parsed with caarlos0/env. On first
// use the loader also reads a .env file from the working directory when one
// exists, so local development needs no exported shell variables.
//
// # Usage
//
//	type Config struct {
//	    Secret string `env:"SESSION_SECRET,required"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    // handle
//	}
package config
