// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"

	"github.com/ayoisaiah/selfremember/internal/osutil"
)

const envName = "SELFREMEMBER_ENV"

// Paths holds all application path configurations.
type Paths struct {
	configDir      string
	configFileName string
	dbFileName     string
	statusFileName string
	logFileName    string
	secretFileName string
	quotesFileName string
	soundsDirName  string
	configFilePath string
	dbFilePath     string
	statusFilePath string
	logFilePath    string
	secretFilePath string
	quotesFilePath string
	soundsDirPath  string
	dataDirPath    string
	configDirPath  string
}

var (
	paths *Paths
	once  sync.Once
)

func defaults() *Paths {
	return &Paths{
		configDir:      "selfremember",
		configFileName: "config.yml",
		dbFileName:     "selfremember.db",
		statusFileName: "status.json",
		logFileName:    "selfremember.log",
		secretFileName: "client_secret.json",
		quotesFileName: "quotes.yml",
		soundsDirName:  "sounds",
	}
}

// Initialize must be called once at program startup.
func Initialize() error {
	var initErr error

	once.Do(func() {
		p := defaults()
		p.applyEnvironmentOverrides()

		initErr = p.computePaths(func(rel string) (string, error) {
			return xdg.ConfigFile(rel)
		}, func(rel string) (string, error) {
			return xdg.DataFile(rel)
		})

		paths = p
	})

	return initErr
}

// InitializeAt roots every path under dir instead of the xdg base
// directories. Tests use it to stay out of the user's real data.
func InitializeAt(dir string) error {
	p := defaults()
	p.applyEnvironmentOverrides()

	resolve := func(sub string) func(string) (string, error) {
		return func(rel string) (string, error) {
			full := filepath.Join(dir, sub, rel)

			return full, os.MkdirAll(filepath.Dir(full), osutil.DirPermission)
		}
	}

	err := p.computePaths(resolve("config"), resolve("data"))
	if err != nil {
		return err
	}

	paths = p

	return nil
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}

	return paths
}

func Dir() string {
	return Must().configDir
}

func ConfigFilePath() string {
	return Must().configFilePath
}

func ConfigDir() string {
	return Must().configDirPath
}

func DataDir() string {
	return Must().dataDirPath
}

func DBFilePath() string {
	return Must().dbFilePath
}

func StatusFilePath() string {
	return Must().statusFilePath
}

func LogFilePath() string {
	return Must().logFilePath
}

// ClientSecretPath is the default location of the OAuth client file
// downloaded from the Google Cloud console.
func ClientSecretPath() string {
	return Must().secretFilePath
}

func QuotesFilePath() string {
	return Must().quotesFilePath
}

// SoundsDir is where user supplied cue sounds are looked up by name.
func SoundsDir() string {
	return Must().soundsDirPath
}

func (p *Paths) applyEnvironmentOverrides() {
	env := strings.TrimSpace(os.Getenv(envName))
	if env != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", env)
		p.dbFileName = fmt.Sprintf("selfremember_%s.db", env)
		p.statusFileName = fmt.Sprintf("status_%s.json", env)
		p.logFileName = fmt.Sprintf("selfremember_%s.log", env)
	}
}

func (p *Paths) computePaths(
	configFile, dataFile func(string) (string, error),
) error {
	var err error

	p.configFilePath, err = configFile(filepath.Join(p.configDir, p.configFileName))
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	p.configDirPath = filepath.Dir(p.configFilePath)
	p.secretFilePath = filepath.Join(p.configDirPath, p.secretFileName)

	// the data file is resolved through a placeholder so that the data
	// directory itself is created
	placeholder, err := dataFile(filepath.Join(p.configDir, p.dbFileName))
	if err != nil {
		return fmt.Errorf("resolving data path: %w", err)
	}

	p.dataDirPath = filepath.Dir(placeholder)
	p.dbFilePath = placeholder
	p.statusFilePath = filepath.Join(p.dataDirPath, p.statusFileName)
	p.logFilePath = filepath.Join(p.dataDirPath, "log", p.logFileName)
	p.quotesFilePath = filepath.Join(p.dataDirPath, p.quotesFileName)
	p.soundsDirPath = filepath.Join(p.dataDirPath, p.soundsDirName)

	return nil
}

// StripExtension returns the input file name without its extension.
func StripExtension(fileName string) string {
	return fileName[:len(fileName)-len(filepath.Ext(fileName))]
}
