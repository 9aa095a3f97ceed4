// Command token issues a bearer token for a dashboard user.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/auth"
	"github.com/Vaishvi-Pan/Fraud-detectionDashboard/internal/infrastructure/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to configuration file")
		subject    = flag.String("subject", "", "User id placed in the sub claim")
		name       = flag.String("name", "", "Display name")
		role       = flag.String("role", string(auth.RoleAnalyst), "analyst, agent or admin")
	)
	flag.Parse()

	if *subject == "" {
		log.Fatal("-subject is required")
	}
	r := auth.Role(*role)
	if !r.IsValid() {
		log.Fatalf("unknown role %q", *role)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ts, err := auth.NewTokenService([]byte(cfg.Auth.JWTSecret), cfg.Auth.Issuer, cfg.Auth.TokenExpiry)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}
	token, err := ts.GenerateToken(*subject, *name, r)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}
