package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg，环境变量 TRENDCAST_* 可覆盖同名项
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	viper.SetEnvPrefix("trendcast")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.log_level", "info")
	viper.SetDefault("server.shutdown_timeout", 10)
	viper.SetDefault("logstash.index", "logstash-trendcast")
	viper.SetDefault("dataset.source", "file")
	viper.SetDefault("dataset.path", "./data/posts.csv")
	viper.SetDefault("dataset.http_timeout", 30)
	viper.SetDefault("dataset.overview_ttl", 600)
	viper.SetDefault("database.max_idle", 5)
	viper.SetDefault("database.max_open", 20)
	viper.SetDefault("database.max_lifetime", 60)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("kafka.prediction_topic", "prediction.created")
	viper.SetDefault("kafka.consumer.session_timeout", 30)
	viper.SetDefault("kafka.consumer.heartbeat_interval", 3)
	viper.SetDefault("kafka.consumer.rebalance_timeout", 60)
	viper.SetDefault("kafka.dataset_consumer.group_id", "trendcast-dataset")
}
