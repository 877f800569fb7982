// seed_admin crea el primer operador admin de la consola.
//
// Uso: ADMIN_EMAIL=... ADMIN_PASSWORD=... go run ./cmd/seed_admin
// Aplica las migraciones pendientes antes de insertar. Si el email ya existe no hace nada.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/jhoicas/kho-api/internal/application/auth"
	"github.com/jhoicas/kho-api/internal/application/dto"
	"github.com/jhoicas/kho-api/internal/domain"
	"github.com/jhoicas/kho-api/internal/domain/entity"
	"github.com/jhoicas/kho-api/internal/infrastructure/postgres"
	"github.com/jhoicas/kho-api/pkg/config"
	"github.com/jhoicas/kho-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed_admin")

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ADMIN_NAME", "Quản trị")
	email := v.GetString("ADMIN_EMAIL")
	password := v.GetString("ADMIN_PASSWORD")
	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_EMAIL y ADMIN_PASSWORD son obligatorios")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{Secret: cfg.JWT.Secret})
	user, err := authUC.RegisterUser(ctx, dto.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     v.GetString("ADMIN_NAME"),
		Role:     entity.RoleAdmin,
	})
	if errors.Is(err, domain.ErrInvalidInput) {
		log.Warn().Err(err).Str("email", email).Msg("admin no creado")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("crear admin")
	}
	log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("admin creado")
}
