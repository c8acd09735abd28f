package env

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Dir is where environment files are looked up, relative to the working directory.
var Dir = filepath.Join("internal", "config", "env")

// Candidates returns the env files to try for the given environment, most specific first.
func Candidates(envName string) []string {
	if envName == "" {
		envName = "development"
	}
	return []string{
		filepath.Join(Dir, fmt.Sprintf(".env.%s", envName)),
		".env",
	}
}

// LoadEnv loads the first environment file found for envName and returns its path.
// Variables already present in the process environment are never overwritten.
// A missing file is not an error: production deployments inject the environment directly.
func LoadEnv(envName string) (string, error) {
	for _, path := range Candidates(envName) {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return "", fmt.Errorf("error loading env file %s: %w", path, err)
		}
		return path, nil
	}
	return "", nil
}
