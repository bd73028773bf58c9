package main

import (
	"flag"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/camp-cli/internal/mockapi"
	"github.com/caarlos0/env/v11"
	"github.com/gin-gonic/gin"
	"github.com/golang/glog"
)

type config struct {
	Addr      string        `env:"CAMP_MOCK_ADDR" envDefault:"127.0.0.1:5000"`
	Prefix    string        `env:"CAMP_MOCK_PREFIX" envDefault:"/api"`
	Secret    string        `env:"CAMP_MOCK_SECRET"`
	TokenTTL  time.Duration `env:"CAMP_MOCK_TOKEN_TTL" envDefault:"1h"`
	AdminUser string        `env:"CAMP_MOCK_ADMIN" envDefault:"admin:admin"`
	GinMode   string        `env:"GIN_MODE" envDefault:"release"`
}

func main() {
	flag.Parse()
	defer glog.Flush()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		glog.Exitf("parse env: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	srv := mockapi.New(mockapi.WithSecret(cfg.Secret), mockapi.WithTokenTTL(cfg.TokenTTL))
	if username, password, ok := strings.Cut(cfg.AdminUser, ":"); ok && username != "" {
		srv.AddUser(username, password, "User", "Admin")
		glog.Infof("[campmock] admin account %q", username)
	}

	prefix := "/" + strings.Trim(cfg.Prefix, "/")
	mux := http.NewServeMux()
	if prefix == "/" {
		mux.Handle("/", srv)
	} else {
		mux.Handle(prefix+"/", http.StripPrefix(prefix, srv))
	}

	glog.Infof("[campmock] listening on %s%s", cfg.Addr, prefix)
	server := &http.Server{Addr: cfg.Addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	if err := server.ListenAndServe(); err != nil {
		glog.Exitf("listen: %v", err)
	}
}
