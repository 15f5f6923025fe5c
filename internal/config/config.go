package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Behyna/directpayment/pkg/httpclient"
	"github.com/Behyna/directpayment/pkg/nvp"
	"github.com/spf13/viper"
)

const envPrefix = "DIRECTPAYMENT"

type Config struct {
	API     API     `mapstructure:"api"`
	Gateway Gateway `mapstructure:"gateway"`
	Metrics Metrics `mapstructure:"metrics"`
}

type API struct {
	Port string `mapstructure:"port"`
}

// Gateway carries the NVP credentials. They are never accepted from API callers.
type Gateway struct {
	User      string            `mapstructure:"user"`
	Password  string            `mapstructure:"password"`
	Signature string            `mapstructure:"signature"`
	Version   string            `mapstructure:"version"`
	Sandbox   bool              `mapstructure:"sandbox"`
	HTTP      httpclient.Config `mapstructure:",squash"`
}

type Metrics struct {
	CollectInterval time.Duration `mapstructure:"collect_interval"`
}

func Load() (*Config, error) {
	return LoadFrom("./config")
}

func LoadFrom(path string) (cfg *Config, err error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(path)

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := httpclient.DefaultConfig()

	v.SetDefault("api.port", ":8080")
	v.SetDefault("gateway.user", "")
	v.SetDefault("gateway.password", "")
	v.SetDefault("gateway.signature", "")
	v.SetDefault("gateway.version", nvp.DefaultVersion)
	v.SetDefault("gateway.sandbox", false)
	v.SetDefault("gateway.timeout", defaults.Timeout)
	v.SetDefault("gateway.insecure_skip_verify", defaults.InsecureSkipVerify)
	v.SetDefault("metrics.collect_interval", time.Minute)
}

// GatewayConfig returns the credential fields of every NVP request.
func (g Gateway) GatewayConfig() nvp.GatewayConfig {
	return nvp.GatewayConfig{
		nvp.FieldUser:      g.User,
		nvp.FieldPassword:  g.Password,
		nvp.FieldSignature: g.Signature,
		nvp.FieldVersion:   g.Version,
	}
}
