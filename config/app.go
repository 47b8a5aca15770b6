package config

type App struct {
	Env   string `yaml:"env"`
	Debug bool   `yaml:"debug"`
}

type Server struct {
	HttpAddr string `yaml:"http_addr"`
}
