package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/config"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
	repository "github.com/aaravmahajanofficial/antiques-catalogue/internal/repositories"
	service "github.com/aaravmahajanofficial/antiques-catalogue/internal/services"
	"github.com/aaravmahajanofficial/antiques-catalogue/internal/utils"
	"github.com/go-playground/validator/v10"
)

// create-admin seeds a back-office account. The password is read from
// ADMIN_PASSWORD so it never lands in shell history.
func main() {

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	name := flag.String("name", "", "display name of the admin")
	email := flag.String("email", "", "login email of the admin")

	cfg := config.MustLoad()
	if !flag.Parsed() {
		flag.Parse()
	}

	req := &models.CreateAdminRequest{
		Name:     *name,
		Email:    *email,
		Password: os.Getenv("ADMIN_PASSWORD"),
	}

	if err := utils.ValidateStruct(validator.New(), req); err != nil {
		slog.Error("❌ Invalid admin details", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repos, err := repository.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer repos.Close()

	userService := service.NewUserService(repos.User, nil, nil, 0)

	user, err := userService.CreateAdmin(ctx, req)
	if err != nil {
		slog.Error("❌ Failed to create admin", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("✅ Admin created", slog.String("userId", user.ID.String()), slog.String("email", user.Email))
}
