package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/soportek/almacen-api/internal/infrastructure/migration"
	"github.com/soportek/almacen-api/pkg/config"
	"github.com/soportek/almacen-api/pkg/logger"
)

// Herramienta de migraciones: up | down | steps <n> | version | force <v>
func main() {
	path := flag.String("path", "migrations", "ruta del directorio de migraciones")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error cargando configuración: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	mg, err := migration.New(cfg.DB.ConnectionString(), *path, log)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo inicializar el migrador")
	}
	defer mg.Close()

	args := flag.Args()
	command := "up"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	case "steps":
		if len(args) < 2 {
			log.Fatal().Msg("uso: migrate steps <n>")
		}
		var n int
		n, err = strconv.Atoi(args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("steps requiere un número")
		}
		err = mg.Steps(n)
	case "version":
		var version uint
		var dirty bool
		version, dirty, err = mg.Version()
		if err == nil {
			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("versión actual del esquema")
		}
	case "force":
		if len(args) < 2 {
			log.Fatal().Msg("uso: migrate force <version>")
		}
		var v int
		v, err = strconv.Atoi(args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("force requiere un número de versión")
		}
		err = mg.Force(v)
	default:
		log.Fatal().Str("command", command).Msg("comando desconocido (up | down | steps | version | force)")
	}

	if err != nil {
		log.Fatal().Err(err).Msg("la migración falló")
	}
}
