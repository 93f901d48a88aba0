package tests

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/minseok4171/aidict/pkg/model"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ExternalDependenciesSuite loads settings and Gemini credentials for suites
// that exercise the live API. Suites embedding it are skipped when GEMINI_KEY
// is not configured.
type ExternalDependenciesSuite struct {
	suite.Suite
	settingsFile string
	apiKey       string
	baseURL      string
}

func (s *ExternalDependenciesSuite) SetupSuite() {
	settingsFromEnv := strings.TrimSpace(os.Getenv("SETTINGS_FILE"))
	settingsFile := settingsFromEnv
	if settingsFile == "" {
		homeDir, err := os.UserHomeDir()
		require.NoError(s.T(), err)
		settingsFile = filepath.Join(homeDir, ".env")
	}

	s.settingsFile = settingsFile

	_, err := os.Stat(settingsFile)
	if err == nil {
		require.NoError(s.T(), godotenv.Overload(settingsFile))
	} else if !errors.Is(err, os.ErrNotExist) || settingsFromEnv != "" {
		// A missing $HOME/.env default is fine; an explicitly named file is not.
		require.NoError(s.T(), err)
	}

	s.apiKey = strings.TrimSpace(os.Getenv("GEMINI_KEY"))
	s.baseURL = strings.TrimSpace(os.Getenv("GEMINI_BASE_URL"))
	if s.apiKey == "" {
		s.T().Skip("GEMINI_KEY is not set; skipping external dependency integration test")
	}
}

func (s *ExternalDependenciesSuite) SettingsFile() string {
	return s.settingsFile
}

// BaseOpts returns generator options carrying the suite credentials.
func (s *ExternalDependenciesSuite) BaseOpts() []model.GeneratorOption {
	opts := []model.GeneratorOption{model.WithAuthToken(s.apiKey)}
	if s.baseURL != "" {
		opts = append(opts, model.WithURL(s.baseURL))
	}
	return opts
}
