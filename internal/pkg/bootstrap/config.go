// internal/pkg/bootstrap/config.go
package bootstrap

import (
	"log"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config 是所有服务共享的配置结构。
// 配置来源优先级：环境变量 > yaml 文件 > 默认值。
type Config struct {
	App struct {
		// Env 是默认的支付环境（live / test），webhook 可通过
		// payload 中的 live_mode 或 ?env= 覆盖
		Env string `yaml:"env"`
	} `yaml:"app"`

	Infra struct {
		Mysql struct {
			DSN string `yaml:"dsn"`
		} `yaml:"mysql"`
		Redis struct {
			Addrs string `yaml:"addrs"`
		} `yaml:"redis"`
		Kafka struct {
			Brokers      string `yaml:"brokers"`
			WebhookTopic string `yaml:"webhook_topic"`
		} `yaml:"kafka"`
		Jaeger struct {
			Endpoint string `yaml:"endpoint"`
		} `yaml:"jaeger"`
		Zookeeper struct {
			Servers string `yaml:"servers"`
		} `yaml:"zookeeper"`
		Nacos struct {
			Enabled     bool   `yaml:"enabled"`
			ServerAddrs string `yaml:"server_addrs"`
			Namespace   string `yaml:"namespace"`
			Group       string `yaml:"group"`
		} `yaml:"nacos"`
	} `yaml:"infra"`

	Webhook struct {
		// Secrets 按 provider 维度配置 HMAC 校验密钥，缺省则跳过校验
		Secrets map[string]string `yaml:"secrets"`
	} `yaml:"webhook"`
}

var (
	currentConfig *Config
	configOnce    sync.Once
)

// GetCurrentConfig 返回进程级配置，首次调用时完成加载
func GetCurrentConfig() *Config {
	configOnce.Do(func() {
		currentConfig = loadConfig()
	})
	return currentConfig
}

func loadConfig() *Config {
	cfg := defaultConfig()

	path := getEnv("CONFIG_PATH", "configs/config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("FATAL: invalid config file %s: %v", path, err)
		}
		log.Printf("✅ Config loaded from %s", path)
	} else {
		log.Printf("⚠️ WARNING: config file %s not readable (%v), falling back to env/defaults", path, err)
	}

	// 环境变量优先，方便容器化部署时逐项覆盖
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.Infra.Mysql.DSN = getEnv("MYSQL_DSN", cfg.Infra.Mysql.DSN)
	cfg.Infra.Redis.Addrs = getEnv("REDIS_ADDRS", cfg.Infra.Redis.Addrs)
	cfg.Infra.Kafka.Brokers = getEnv("KAFKA_BROKERS", cfg.Infra.Kafka.Brokers)
	cfg.Infra.Kafka.WebhookTopic = getEnv("KAFKA_WEBHOOK_TOPIC", cfg.Infra.Kafka.WebhookTopic)
	cfg.Infra.Jaeger.Endpoint = getEnv("JAEGER_ENDPOINT", cfg.Infra.Jaeger.Endpoint)
	cfg.Infra.Zookeeper.Servers = getEnv("ZK_SERVERS", cfg.Infra.Zookeeper.Servers)
	cfg.Infra.Nacos.ServerAddrs = getEnv("NACOS_SERVER_ADDRS", cfg.Infra.Nacos.ServerAddrs)
	cfg.Infra.Nacos.Namespace = getEnv("NACOS_NAMESPACE", cfg.Infra.Nacos.Namespace)
	cfg.Infra.Nacos.Group = getEnv("NACOS_GROUP", cfg.Infra.Nacos.Group)

	return cfg
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.App.Env = "live"
	cfg.Infra.Mysql.DSN = "root:root@tcp(localhost:3306)/coupons?charset=utf8mb4&parseTime=True&loc=Local"
	cfg.Infra.Redis.Addrs = "localhost:6379"
	cfg.Infra.Kafka.Brokers = "localhost:9092"
	cfg.Infra.Kafka.WebhookTopic = "payment.webhook.received"
	cfg.Infra.Jaeger.Endpoint = "http://localhost:14268/api/traces"
	cfg.Infra.Zookeeper.Servers = "localhost:2181"
	cfg.Infra.Nacos.ServerAddrs = "localhost:8848"
	cfg.Infra.Nacos.Group = "DEFAULT_GROUP"
	return cfg
}

// getEnv 是一个内部辅助函数，从环境变量中读取配置。
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
