package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/akash06959/agronova/config"
	"github.com/akash06959/agronova/internal/adminapi"
	"github.com/akash06959/agronova/internal/app"
	"github.com/akash06959/agronova/internal/storefront"
	"github.com/akash06959/agronova/internal/webserver"
)

var (
	cfile   = flag.String("c", "agronova.yml", "config file")
	showver = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()
	if *showver {
		fmt.Println("agronova", version)
		os.Exit(0)
	}

	cfg := config.LoadConfig(*cfile)

	a := app.NewApplication(cfg)
	if err := a.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "init error: %v\n", err)
		os.Exit(1)
	}
	defer a.Release()

	server := webserver.New(cfg)
	env := &webserver.Env{
		Config:  a.Config(),
		Catalog: a.Catalog(),
		Cart:    a.Cart(),
		Users:   a.UserSessions(),
		Admin:   a.AdminSessions(),
		Notify:  a.Notify(),
		Backend: a.Backend(),
		Bus:     a.Bus(),
	}
	storefront.Register(server.Echo(), env)
	adminapi.Register(server.Echo(), env)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		zap.S().Errorf("web server error: %v", err)
	case s := <-sig:
		zap.S().Infof("received signal %s, shutting down", s)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zap.S().Errorf("shutdown error: %v", err)
	}
}
