package models

// MConfig Structure
type MConfig struct {
	Name        string         `yaml:"name"`
	Host        string         `yaml:"host"`
	Port        int            `yaml:"port"`
	LogLevel    string         `yaml:"log_level"`
	LogFormat   string         `yaml:"log_format"` // "console" or "json"
	CORSOrigins []string       `yaml:"cors_origins"`
	Storage     MStorageConfig `yaml:"storage"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	Schema             string `yaml:"schema"` // Postgres only
}
