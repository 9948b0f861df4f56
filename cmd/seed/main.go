package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"healthrecord/database"
	"healthrecord/internal/auth"
	"healthrecord/internal/config"
	"healthrecord/internal/logger"
	"healthrecord/internal/repository"
	"healthrecord/internal/services"
	"healthrecord/internal/utils"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  seed user   -email <email> -password <password> [-firstname <name>] [-lastname <name>] [-gender <Male|Female|Other>]")
	fmt.Println("  seed vitals -email <email> [-count <n>]")
}

func main() {
	userCmd := flag.NewFlagSet("user", flag.ExitOnError)
	userEmail := userCmd.String("email", "", "Email of the demo account")
	userPassword := userCmd.String("password", "", "Password of the demo account")
	firstname := userCmd.String("firstname", "Demo", "First name")
	lastname := userCmd.String("lastname", "User", "Last name")
	gender := userCmd.String("gender", "", "Gender (Male, Female or Other)")

	vitalsCmd := flag.NewFlagSet("vitals", flag.ExitOnError)
	vitalsEmail := vitalsCmd.String("email", "", "Email of the account that owns the vitals")
	count := vitalsCmd.Int("count", utils.DefaultVitalsCount, "Number of daily snapshots to insert")

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "user":
		userCmd.Parse(os.Args[2:])
		if *userEmail == "" || *userPassword == "" {
			userCmd.Usage()
			os.Exit(1)
		}

		seeder := newSeeder(cfg, log)
		user, err := seeder.SeedUser(ctx, services.SignupInput{
			Firstname: *firstname,
			Lastname:  *lastname,
			Email:     *userEmail,
			Password:  *userPassword,
			Gender:    *gender,
		})
		if err != nil {
			log.Fatal("error seeding user", zap.Error(err))
		}
		fmt.Printf("Created user %d (%s)\n", user.ID, user.Email)

	case "vitals":
		vitalsCmd.Parse(os.Args[2:])
		if *vitalsEmail == "" {
			vitalsCmd.Usage()
			os.Exit(1)
		}

		seeder := newSeeder(cfg, log)
		n, err := seeder.SeedVitals(ctx, *vitalsEmail, *count)
		if err != nil {
			log.Fatal("error seeding vitals", zap.Int("inserted", n), zap.Error(err))
		}
		fmt.Printf("Inserted %d vitals snapshots for %s\n", n, *vitalsEmail)

	default:
		usage()
		os.Exit(1)
	}
}

func newSeeder(cfg *config.Config, log *zap.Logger) *utils.Seeder {
	db, err := database.ConnectDatabase(cfg.DB, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.MigrateDatabase(db, log); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	users := repository.NewUserRepository(db)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	return utils.NewSeeder(
		users,
		services.NewAuthService(users, tokens, cfg.Auth.HashCost, log),
		services.NewVitalsService(repository.NewVitalsRepository(db)),
		log,
	)
}
