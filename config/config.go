package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App       *App       `yaml:"app"`
	Server    *Server    `yaml:"server"`
	MySQL     *MySQL     `yaml:"mysql"`
	Redis     *Redis     `yaml:"redis"`
	RedPacket *RedPacket `yaml:"red_packet"`
}

// New 加载 yaml 配置文件
func New(filename string) *Config {
	content, err := os.ReadFile(filename)
	if err != nil {
		panic(fmt.Sprintf("读取配置文件失败: %s", err))
	}

	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		panic(fmt.Sprintf("解析配置文件失败: %s", err))
	}

	if conf.RedPacket == nil {
		conf.RedPacket = &RedPacket{}
	}
	conf.RedPacket.init()

	return &conf
}

func (c *Config) Debug() bool {
	return c.App != nil && c.App.Debug
}
