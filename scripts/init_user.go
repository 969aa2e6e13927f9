package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/reflet/internal/config"
	"github.com/reflet/internal/db"
	"github.com/reflet/internal/service"
)

func main() {
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password (8 characters minimum)")
	role := flag.String("role", db.RoleAdmin, "account role: admin or editor")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()

	// 初始化数据库
	if err := db.Init(db.Options{Driver: cfg.DatabaseDriver, Path: cfg.DatabasePath, DSN: cfg.DatabaseDSN, Silent: true}); err != nil {
		log.Fatal("database initialization failed: ", err)
	}

	users := service.NewUserService(db.DB, service.UserServiceOptions{})
	user, err := users.Create(*email, *password, *role)
	if err != nil {
		log.Fatal("account creation failed: ", err)
	}

	fmt.Printf("account created: %s (%s)\n", user.Email, user.Role)
}
