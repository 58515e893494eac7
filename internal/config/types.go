package config

import "time"

// Config представляет конфигурацию тренажера
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Parse    ParseConfig    `yaml:"parse"`
	Progress ProgressConfig `yaml:"progress"`
	Study    StudyConfig    `yaml:"study"`
	Export   ExportConfig   `yaml:"export"`
	Server   ServerConfig   `yaml:"server"`
}

// SourceConfig описывает исходный документ
type SourceConfig struct {
	Path string `yaml:"path"`
}

// ParseConfig содержит настройки разбора
type ParseConfig struct {
	Workers int `yaml:"workers"`
}

// ProgressConfig описывает хранилище прогресса
type ProgressConfig struct {
	Driver string `yaml:"driver"` // file, sqlite или postgres
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

// StudyConfig содержит настройки интерактивного режима
type StudyConfig struct {
	StartQuestion int  `yaml:"start_question"`
	NoColor       bool `yaml:"no_color"`
}

// ExportConfig описывает пути экспорта
type ExportConfig struct {
	JSONPath string `yaml:"json_path"`
	JSPath   string `yaml:"js_path"`
	JSGlobal string `yaml:"js_global"`
	XLSXPath string `yaml:"xlsx_path"`
}

// ServerConfig содержит настройки HTTP API
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	Gops           bool          `yaml:"gops"` // агент диагностики github.com/google/gops
}

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Parse: ParseConfig{Workers: 4},
		Progress: ProgressConfig{
			Driver: DriverFile,
			Path:   "solved_problems.txt",
			DSN:    "file:progress.db?_pragma=busy_timeout(5000)",
		},
		Study: StudyConfig{StartQuestion: 1},
		Export: ExportConfig{
			JSONPath: "parsed_qa.json",
			JSPath:   "parsed_qa.js",
			JSGlobal: "window.__QA__",
			XLSXPath: "parsed_qa.xlsx",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
		},
	}
}
