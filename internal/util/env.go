package util

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file when one is present.
// A missing file is not an error; deployments may rely on real
// environment variables only.
func LoadEnv() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}
