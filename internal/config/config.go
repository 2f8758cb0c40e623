package config

import (
	"strings"

	"github.com/blues/nmi/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Metadata MetadataConfig `mapstructure:"metadata"`
	Stream   StreamConfig   `mapstructure:"stream"`
	Task     TaskConfig     `mapstructure:"task"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ChainConfig 链节点配置
type ChainConfig struct {
	RpcUrl        string `mapstructure:"rpc_url"`        // Tendermint RPC节点URL
	WsUrl         string `mapstructure:"ws_url"`         // Websocket订阅URL
	LcdUrl        string `mapstructure:"lcd_url"`        // LCD REST节点URL，用于智能合约查询
	PalletAddress string `mapstructure:"pallet_address"` // Pallet市场合约地址
}

// MetadataConfig 链下元数据服务配置
type MetadataConfig struct {
	PalletApiUrl string `mapstructure:"pallet_api_url"` // Pallet集合元数据API
	Timeout      int    `mapstructure:"timeout"`        // 请求超时（秒）
}

// StreamConfig 事件流配置
type StreamConfig struct {
	ReconnectBase int `mapstructure:"reconnect_base"` // 重连退避基础时间（秒）
	ReconnectMax  int `mapstructure:"reconnect_max"`  // 重连退避最大时间（秒）
}

type TaskConfig struct {
	Interval int `mapstructure:"interval"` // 集合同步间隔（秒）
	PoolSize int `mapstructure:"pool_size"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

// GetLevel 实现 logger.LogConfig 接口
func (l LogConfig) GetLevel() string {
	return l.Level
}

// GetOutput 实现 logger.LogConfig 接口
func (l LogConfig) GetOutput() string {
	return l.Output
}

// GetFile 实现 logger.LogConfig 接口
func (l LogConfig) GetFile() string {
	return l.File
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/nmi")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "nmi")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("chain.rpc_url", "https://rpc.sei-apis.com")
	viper.SetDefault("chain.ws_url", "wss://rpc.sei-apis.com/websocket")
	viper.SetDefault("chain.lcd_url", "https://rest.sei-apis.com")
	viper.SetDefault("chain.pallet_address", "sei152u2u0lqc27428cuf8dx48k8saua74m6nql5kgvsu4rfeqm547rsnhy4y9")
	viper.SetDefault("metadata.pallet_api_url", "https://api.pallet.exchange/api")
	viper.SetDefault("metadata.timeout", 15)
	viper.SetDefault("stream.reconnect_base", 1)
	viper.SetDefault("stream.reconnect_max", 60)
	viper.SetDefault("task.interval", 3600)
	viper.SetDefault("task.pool_size", 8)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
