package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"

	"healthmate/internal/clinic"
	"healthmate/internal/config"
	"healthmate/internal/events"
	gweb "healthmate/internal/grpcweb"
	"healthmate/internal/handler"
	"healthmate/internal/kv"
	"healthmate/internal/middleware"
	"healthmate/internal/rpc"
	"healthmate/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// storage
	db, err := kv.Open(ctx, cfg.KV)
	if err != nil {
		log.Fatalf("kv: %v", err)
	}
	defer db.Close()
	log.Printf("kv backend: %s", cfg.KV.Driver)

	st := store.New(db, cfg.KeyPrefix)
	if seeded, err := st.Init(ctx); err != nil {
		log.Fatalf("seed: %v", err)
	} else if seeded {
		log.Println("seeded default accounts")
	}

	pub, err := events.Open(ctx, cfg.Events)
	if err != nil {
		log.Fatalf("events: %v", err)
	}
	defer pub.Close()

	svc := clinic.New(st, clinic.WithEvents(pub))
	h := handler.New(svc, cfg.JWTSecret, cfg.SessionTTL)

	// grpc server
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)
	rl := middleware.NewRateLimiter(ctx, 5, 10)
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			metrics.Unary(),
			middleware.RateLimit(rl),
			middleware.Auth(cfg.JWTSecret, svc),
		),
	)
	rpc.RegisterClinicServiceServer(srv, h)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	go func() {
		log.Printf("grpc on :%s", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			log.Printf("grpc: %v", err)
		}
	}()

	// grpc-web bridge -> forwards browser requests to grpc on localhost
	bridge, err := gweb.New("localhost:" + cfg.GRPCPort)
	if err != nil {
		log.Fatalf("bridge: %v", err)
	}
	defer bridge.Close()

	mux := http.NewServeMux()
	mux.Handle("/", bridge.Handler())
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.WebPort,
		Handler: mux,
	}
	go func() {
		log.Printf("grpc-web on :%s", cfg.WebPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Println("shutting down")
	srv.GracefulStop()
	httpSrv.Shutdown(context.Background())
}
