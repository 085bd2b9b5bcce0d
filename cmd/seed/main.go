package main

import (
	"errors"
	"os"
	"strings"

	"github.com/mfalgas/christmas-planner-backend/config"
	"github.com/mfalgas/christmas-planner-backend/internal/app/model"
	"github.com/mfalgas/christmas-planner-backend/internal/app/repository"
	"github.com/mfalgas/christmas-planner-backend/internal/db"
	"github.com/mfalgas/christmas-planner-backend/pkg/logger"
	"gorm.io/gorm"
)

// Seeds the family roster. Only emails created here can log in, so this is
// how a new installation gets its allowlist.
//
// FAMILY_MEMBERS is a comma separated list of email:name pairs, for example:
//
//	FAMILY_MEMBERS="maria@example.com:María,jose@example.com:José"
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.Config{
		Level:       "info",
		Format:      "console",
		EnableColor: true,
	})

	membersEnv := os.Getenv("FAMILY_MEMBERS")
	if membersEnv == "" {
		logger.Fatal("FAMILY_MEMBERS is not set", nil)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	userRepo := repository.NewUserRepository(db.GetDB())

	created, skipped := 0, 0
	for _, entry := range strings.Split(membersEnv, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		email, name, found := strings.Cut(entry, ":")
		if !found || email == "" || name == "" {
			logger.Fatal("Malformed FAMILY_MEMBERS entry, expected email:name", nil, map[string]interface{}{
				"entry": entry,
			})
		}

		_, err := userRepo.FindByEmail(email)
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Fatal("Failed to look up member", err, map[string]interface{}{
				"email": email,
			})
		}

		user := &model.User{
			Email: email,
			Name:  name,
		}
		if err := userRepo.Create(user); err != nil {
			logger.Fatal("Failed to create member", err, map[string]interface{}{
				"email": email,
			})
		}

		logger.Info("Created member", map[string]interface{}{
			"email": user.Email,
			"name":  user.Name,
		})
		created++
	}

	logger.Info("Seeding finished", map[string]interface{}{
		"created": created,
		"skipped": skipped,
	})
}
