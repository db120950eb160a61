package database

import (
	"testing"

	"github.com/aslanbekov/rentnest/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{
		DBUser: "app", DBPass: "secret",
		DBHost: "db", DBPort: "3306", DBName: "rentnest",
	}
	want := "app:secret@tcp(db:3306)/rentnest?charset=utf8mb4&parseTime=true&loc=UTC"
	if got := dsn(cfg); got != want {
		t.Errorf("dsn = %q, want %q", got, want)
	}
}

func TestDSNWithoutPassword(t *testing.T) {
	cfg := config.Config{
		DBUser: "app",
		DBHost: "localhost", DBPort: "3306", DBName: "rentnest",
	}
	want := "app@tcp(localhost:3306)/rentnest?charset=utf8mb4&parseTime=true&loc=UTC"
	if got := dsn(cfg); got != want {
		t.Errorf("dsn = %q, want %q", got, want)
	}
}
