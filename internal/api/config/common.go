package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	DB       DBConfig       `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Logstash LogstashConfig `mapstructure:"logstash"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port            int    `mapstructure:"port"`
	Mode            string `mapstructure:"mode"`
	LogLevel        string `mapstructure:"log_level"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

// DatasetConfig 历史数据集来源
type DatasetConfig struct {
	// Source 取值 file / minio / http / mysql
	Source      string `mapstructure:"source"`
	Path        string `mapstructure:"path"`
	Object      string `mapstructure:"object"`
	URL         string `mapstructure:"url"`
	HTTPTimeout int    `mapstructure:"http_timeout"`
	// RefreshCron 为空时不定时刷新
	RefreshCron string `mapstructure:"refresh_cron"`
	OverviewTTL int    `mapstructure:"overview_ttl"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// KafkaConfig Brokers 为空时不发布事件也不消费
type KafkaConfig struct {
	Brokers         []string        `mapstructure:"brokers"`
	Sasl            SaslConfig      `mapstructure:"sasl"`
	Consumer        ConsumerConfig  `mapstructure:"consumer"`
	PredictionTopic string          `mapstructure:"prediction_topic"`
	DatasetConsumer KafkaSubscriber `mapstructure:"dataset_consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
}

// KafkaSubscriber Topic 为空时不启动
type KafkaSubscriber struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// LogstashConfig 远程日志，Addr 为空时只输出到标准输出
type LogstashConfig struct {
	Addr  string `mapstructure:"addr"`
	Index string `mapstructure:"index"`
}
