// Package cmd wires the cobra CLI, adapted from the teacher's cmd.go
// (armandParser-gofast-server) to this module's viper-backed Config,
// logrus logger, RESP2 server, and prometheus/gorilla-mux admin
// surface.
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gofast/internal/admin"
	"gofast/internal/command"
	"gofast/internal/config"
	"gofast/internal/logging"
	"gofast/internal/metrics"
	"gofast/internal/server"
	"gofast/internal/store"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "gofastd",
	Short: "gofastd - in-memory key-value server speaking the RESP2 wire protocol",
	Long: `gofastd is an in-memory key-value server compatible with the
RESP2 wire protocol.

Features:
- Four value shapes: string, list, set, hash
- Per-key TTL with lazy and active expiration
- Concurrent clients over a single keyspace lock
- Prometheus metrics and an admin HTTP surface`,
	Version: version,
	RunE:    runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	log.WithField("config", cfg.String()).Info("starting gofastd")

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	st := store.New()

	srv := &server.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Store:        st,
		Registry:     command.NewRegistry(),
		Log:          log,
		Metrics:      m,
		MaxBulkLen:   cfg.MaxBulkLen,
		Version:      version,
		TCPKeepAlive: cfg.TCPKeepAlive,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	var adminSrv *http.Server
	if cfg.AdminEnabled {
		startedAt := time.Now()
		router := admin.NewRouter(reg, func() admin.KeyspaceInfo {
			return admin.KeyspaceInfo{DBSize: st.DBSize(), StartedAt: startedAt}
		})
		adminSrv = &http.Server{Addr: cfg.AdminAddr, Handler: router}
		go func() {
			log.WithField("addr", cfg.AdminAddr).Info("admin server listening")
			if err := adminSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("admin server failed")
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(cfg.ActiveExpireInterval)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-sigCh:
		log.Info("shutting down gofastd")
		srv.Shutdown()
		if adminSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			adminSrv.Shutdown(ctx)
		}
	}

	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		fmt.Println("gofastd configuration:")
		fmt.Println(strings.Repeat("=", 31))
		fmt.Printf("Host: %s\n", cfg.Host)
		fmt.Printf("Port: %d\n", cfg.Port)
		fmt.Printf("Max Clients: %d\n", cfg.MaxClients)
		fmt.Printf("Max Bulk Len: %d\n", cfg.MaxBulkLen)
		fmt.Printf("Active Expire Interval: %v\n", cfg.ActiveExpireInterval)
		fmt.Printf("Log Level: %s\n", cfg.LogLevel)
		fmt.Printf("Log Format: %s\n", cfg.LogFormat)
		fmt.Printf("Admin Addr: %s\n", cfg.AdminAddr)
		fmt.Printf("Admin Enabled: %t\n", cfg.AdminEnabled)
		fmt.Printf("TCP Keep-Alive: %t\n", cfg.TCPKeepAlive)
		fmt.Printf("Read Timeout: %v\n", cfg.ReadTimeout)
		fmt.Printf("Write Timeout: %v\n", cfg.WriteTimeout)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gofastd v%s\n", version)
		fmt.Printf("Built with Go %s\n", runtime.Version())
		fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("host", "H", "localhost", "Host to bind to")
	rootCmd.PersistentFlags().IntP("port", "p", 6379, "Port to listen on")
	rootCmd.PersistentFlags().Int("max-clients", 10000, "Maximum number of clients (validated and shown by 'config'; connections are not limited by it)")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "Client timeout (shown by 'config'; connections use --read-timeout and --write-timeout)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().Int("max-bulk-len", 512*1024*1024, "Maximum accepted bulk string length in bytes")
	rootCmd.PersistentFlags().Duration("active-expire-interval", 100*time.Millisecond, "Active expiration sweep interval")
	rootCmd.PersistentFlags().String("admin-addr", ":9121", "Admin HTTP listen address")
	rootCmd.PersistentFlags().Bool("admin-enabled", true, "Enable the admin HTTP server")
	rootCmd.PersistentFlags().Bool("tcp-keepalive", true, "Enable TCP keep-alive")
	rootCmd.PersistentFlags().Duration("read-timeout", 30*time.Second, "Read timeout")
	rootCmd.PersistentFlags().Duration("write-timeout", 30*time.Second, "Write timeout")

	viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host"))
	viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("max_clients", rootCmd.PersistentFlags().Lookup("max-clients"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("max_bulk_len", rootCmd.PersistentFlags().Lookup("max-bulk-len"))
	viper.BindPFlag("active_expire_interval", rootCmd.PersistentFlags().Lookup("active-expire-interval"))
	viper.BindPFlag("admin_addr", rootCmd.PersistentFlags().Lookup("admin-addr"))
	viper.BindPFlag("admin_enabled", rootCmd.PersistentFlags().Lookup("admin-enabled"))
	viper.BindPFlag("tcp_keepalive", rootCmd.PersistentFlags().Lookup("tcp-keepalive"))
	viper.BindPFlag("read_timeout", rootCmd.PersistentFlags().Lookup("read-timeout"))
	viper.BindPFlag("write_timeout", rootCmd.PersistentFlags().Lookup("write-timeout"))

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute is the CLI's entry point.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
