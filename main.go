package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"

	"github.com/microcosm-cc/ensresolver/cache"
	conf "github.com/microcosm-cc/ensresolver/config"
	h "github.com/microcosm-cc/ensresolver/helpers"
	"github.com/microcosm-cc/ensresolver/resolver"
	"github.com/microcosm-cc/ensresolver/server"
)

var configPath = flag.String("config", conf.ConfigFilePath, "path to the config file")

func main() {
	// Also used to init glog
	flag.Parse()

	// 100 megabytes max before rolling the log files
	glog.MaxSize = 1024 * 1024 * 100

	// Catch closing signal and flush logs
	sigc := make(chan os.Signal, 1)
	signal.Notify(
		sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	go func() {
		<-sigc
		glog.Flush()
		os.Exit(1)
	}()

	if err := conf.Load(*configPath); err != nil {
		glog.Fatal(err)
	}

	if glog.V(2) {
		glog.Infof("Initialising %s cache", conf.ConfigStrings[conf.CacheBackend])
	}
	backend, err := cacheBackend()
	if err != nil {
		glog.Fatal(err)
	}

	cr, err := resolver.NewCaching(backend)
	if err != nil {
		glog.Fatal(err)
	}

	if glog.V(2) {
		glog.Infof("Initialising %s resolver", conf.ConfigStrings[conf.ResolverBackend])
	}
	r, err := lookupResolver()
	if err != nil {
		glog.Fatal(err)
	}
	if err := cr.Link(r); err != nil {
		glog.Fatal(err)
	}

	jobs := server.Jobs(cr.Store(), conf.ConfigStrings[conf.SweepSchedule])

	glog.Fatal(server.StartServer(
		conf.ConfigInt64s[conf.ListenPort],
		server.NewRouter(cr),
		jobs,
	))
}

func cacheBackend() (cache.Backend, error) {
	maxAge := time.Duration(conf.ConfigInt64s[conf.CacheMaxAge]) * time.Millisecond

	if conf.ConfigStrings[conf.CacheBackend] == conf.CacheMemcached {
		store, err := cache.NewMemcacheStore(
			conf.ConfigStrings[conf.MemcachedHost],
			conf.ConfigInt64s[conf.MemcachedPort],
			maxAge,
		)
		if err != nil {
			return cache.Backend{}, err
		}
		return cache.Provided(store), nil
	}

	return cache.Default(cache.Options{
		Max:    int(conf.ConfigInt64s[conf.CacheMax]),
		MaxAge: maxAge,
	}), nil
}

func lookupResolver() (resolver.Resolver, error) {
	if conf.ConfigStrings[conf.ResolverBackend] == conf.ResolverGateway {
		gw, err := resolver.NewGatewayResolver(context.Background(), resolver.GatewayConfig{
			URL:          conf.ConfigStrings[conf.GatewayURL],
			ClientID:     conf.ConfigStrings[conf.GatewayClientID],
			ClientSecret: conf.ConfigStrings[conf.GatewayClientSecret],
			TokenURL:     conf.ConfigStrings[conf.GatewayTokenURL],
		})
		if err != nil {
			return nil, err
		}
		return gw, nil
	}

	db, err := h.OpenDB(h.DBConfig{
		Host:     conf.ConfigStrings[conf.DatabaseHost],
		Port:     conf.ConfigInt64s[conf.DatabasePort],
		Database: conf.ConfigStrings[conf.DatabaseName],
		Username: conf.ConfigStrings[conf.DatabaseUsername],
		Password: conf.ConfigStrings[conf.DatabasePassword],
	})
	if err != nil {
		return nil, err
	}
	return resolver.NewPostgresResolver(db), nil
}
