package config

import (
	"fmt"
	"time"

	"github.com/aurora-energy/kplcgateway/pkg/mq"
	"github.com/aurora-energy/kplcgateway/pkg/mysql"
	"github.com/aurora-energy/kplcgateway/pkg/smsprovider"
	"github.com/spf13/viper"
)

type Config struct {
	API      API                `mapstructure:"api"`
	Database mysql.Config       `mapstructure:"database"`
	RabbitMQ mq.Config          `mapstructure:"rabbitmq"`
	Provider smsprovider.Config `mapstructure:"provider"`
	Utility  Utility            `mapstructure:"utility"`
}

type API struct {
	Port string `mapstructure:"port"`
}

// Utility holds the KPLC integration knobs. The short code and the reply
// windows are deployment configuration, never compile-time constants.
type Utility struct {
	ShortCode            string        `mapstructure:"short_code"`
	PollInterval         time.Duration `mapstructure:"poll_interval"`
	ReplyTimeout         time.Duration `mapstructure:"reply_timeout"`
	PurchaseReplyTimeout time.Duration `mapstructure:"purchase_reply_timeout"`
	ReferencePrefix      string        `mapstructure:"reference_prefix"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
