package main

import (
	"flag"
	"os"

	"gitee.com/flycash/portfolio/cmd/portfolio/ioc"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
	"gopkg.in/yaml.v2"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	flag.Parse()

	f, err := os.Open(*configPath)
	if err != nil {
		elog.Panic("打开配置文件失败", elog.FieldErr(err), elog.String("path", *configPath))
	}
	err = econf.LoadFromReader(f, yaml.Unmarshal)
	_ = f.Close()
	if err != nil {
		elog.Panic("加载配置失败", elog.FieldErr(err))
	}

	app := ioc.InitApp()

	addr := econf.GetString("server.http.addr")
	if addr == "" {
		addr = ":8080"
	}
	elog.Info("启动 HTTP 服务", elog.String("addr", addr))
	if err := app.WebServer.Run(addr); err != nil {
		elog.Panic("startup", elog.Any("err", err))
	}
}
