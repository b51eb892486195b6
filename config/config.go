package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
}

type ServerConfig struct {
	ListenAddress  string `mapstructure:"listen_address"`
	WSAddress      string `mapstructure:"ws_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
	RPCAddress     string `mapstructure:"rpc_address"`

	// MaxRemotePlayers caps the lobby; the host always plays as index 0.
	MaxRemotePlayers int `mapstructure:"max_remote_players"`

	// TurnTimeout bounds the wait for one remote reply. Zero disables it.
	TurnTimeout time.Duration `mapstructure:"turn_timeout"`

	// AwaitWarn is how long a remote may stay silent while the server waits
	// on them before a warning is logged. Zero disables the watchdog.
	AwaitWarn time.Duration `mapstructure:"await_warn"`
}

type DatabaseConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Driver   string         `mapstructure:"driver"` // "gorm" or "pq"
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.listen_address", ":8080")
	viper.SetDefault("server.max_remote_players", 3)
	viper.SetDefault("server.await_warn", 30*time.Second)

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
