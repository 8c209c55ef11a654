package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/berfenger/sen6xgen/internal/config"
	"github.com/berfenger/sen6xgen/internal/core/actor"
	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/berfenger/sen6xgen/internal/core/service"
	"github.com/berfenger/sen6xgen/internal/render"
	"github.com/berfenger/sen6xgen/internal/server"
	"github.com/berfenger/sen6xgen/internal/util/actorutil"

	"github.com/carlmjohnson/versioninfo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const usage = `usage: sen6xgen [generate] [flags] [input.yaml]
       sen6xgen serve [flags]

flags:
`

func gracefulShutdown(apiServer *http.Server, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("shutting down gracefully, press Ctrl+C again to force")

	// the server has 5 seconds to finish the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	done <- true
}

func main() {

	flags := newFlagSet()
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if v, _ := flags.GetBool("version"); v {
		fmt.Printf("sen6xgen %s\n", versioninfo.Short())
		return
	}

	mode := "generate"
	args := flags.Args()
	if len(args) > 0 && (args[0] == "generate" || args[0] == "serve") {
		mode = args[0]
		args = args[1:]
	}
	if len(args) > 0 && !flags.Changed("input") {
		viper.Set("input", args[0])
	}

	cfg, err := initConfig(flags)
	if err != nil {
		slog.Error("config errors", "error", err)
		os.Exit(2)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(zapCfg.Build())
	defer logger.Sync()

	logger.Debug("using", zap.Any("config", *cfg), zap.String("mode", mode))

	switch mode {
	case "serve":
		serve(*cfg, logger)
	default:
		if err := generate(*cfg, logger); err != nil {
			logger.Sync()
			os.Exit(1)
		}
	}
}

func generate(cfg config.Config, logger *zap.Logger) error {
	source, err := readInput(cfg.Input)
	if err != nil {
		logger.Error("unable to read configuration", zap.String("input", cfg.Input), zap.Error(err))
		return err
	}

	build, err := service.NewGenerator(cfg, logger).Generate(source)
	if err != nil {
		for _, v := range domain.Violations(err) {
			logger.Error("invalid configuration", zap.String("path", v.Path), zap.String("code", string(v.Code)), zap.String("message", v.Msg))
			fmt.Fprintln(os.Stderr, v.Error())
		}
		return err
	}

	out, closeOut, err := openOutput(cfg.Output)
	if err != nil {
		logger.Error("unable to open output", zap.String("output", cfg.Output), zap.Error(err))
		return err
	}
	return writeBuild(out, closeOut, cfg.Format, build, logger)
}

// writeBuild renders the build and closes the output. A failed close is an error,
// the file may be truncated.
func writeBuild(out io.Writer, closeOut func() error, format string, build *domain.Build, logger *zap.Logger) error {
	err := render.Render(out, format, build)
	if err != nil {
		logger.Error("unable to write output", zap.Error(err))
	}
	if cerr := closeOut(); cerr != nil {
		logger.Error("unable to close output", zap.Error(cerr))
		if err == nil {
			err = cerr
		}
	}
	return err
}

func serve(cfg config.Config, logger *zap.Logger) {
	as := actorutil.NewActorSystemWithZapLogger(logger)
	ctx := as.Root

	sub := server.SubscribeMetrics(as)

	pid, err := ctx.SpawnNamed(actor.NewGeneratorActorProps(cfg, logger), domain.ACTOR_ID_GENERATOR)
	if err != nil {
		logger.Error("unable to start generator", zap.Error(err))
		return
	}

	srv := server.NewServer(cfg, ctx, pid, logger)
	done := make(chan bool, 1)

	go gracefulShutdown(srv, done)

	logger.Info("listening", zap.Uint("port", cfg.Port))
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("http server error: %s", err))
	}

	<-done
	log.Println("Graceful shutdown complete.")

	as.EventStream.Unsubscribe(sub)
	ctx.Stop(pid)
	as.Shutdown()
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("sen6xgen", pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	flags.StringP("input", "i", "-", "configuration file, - for stdin")
	flags.StringP("output", "o", "-", "output file, - for stdout")
	flags.StringP("format", "f", config.FORMAT_CPP, "output format: cpp, json or yaml")
	flags.Bool("strict-capabilities", false, "reject entities the declared model does not support")
	flags.String("log-level", "warn", "trace, debug, info, warn, error or fatal")
	flags.Uint("port", 8080, "HTTP port in serve mode")
	flags.Bool("http-log", false, "log HTTP requests in serve mode")
	flags.BoolP("version", "v", false, "print the version and exit")
	return flags
}

func initConfig(flags *pflag.FlagSet) (*config.Config, error) {

	// alias PORT => SEN6XGEN_PORT
	if port := os.Getenv("PORT"); port != "" {
		os.Setenv("SEN6XGEN_PORT", port)
	}

	setConfigDefaults()

	viper.SetEnvPrefix("sen6xgen")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// flags use dashes, config keys use underscores
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "version" || !f.Changed {
			return
		}
		_ = viper.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})

	// if defined, try to load config from yaml file
	if cfgFile := os.Getenv("CONFIG_FILE"); cfgFile != "" {
		if _, err := os.Stat(cfgFile); err == nil {
			slog.Info("Using config", "file", cfgFile)
			viper.SetConfigFile(cfgFile)

			err = viper.ReadInConfig()
			if err != nil {
				slog.Error("Error reading config file", "error", err)
			}
		}
	}

	var cfg config.Config

	err := viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	// parse log level
	switch viper.GetString("log_level") {
	case "trace":
		cfg.LogLevel = zap.DebugLevel
	case "debug":
		cfg.LogLevel = zap.DebugLevel
	case "info":
		cfg.LogLevel = zap.InfoLevel
	case "error":
		cfg.LogLevel = zap.ErrorLevel
	case "warn":
		cfg.LogLevel = zap.WarnLevel
	case "fatal":
		cfg.LogLevel = zap.FatalLevel
	default:
		cfg.LogLevel = zap.WarnLevel
	}

	format, err := config.CheckFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	cfg.Format = format

	if cfg.Input, err = config.CheckPath(cfg.Input); err != nil {
		return nil, errors.New("invalid input path")
	}
	if cfg.Output, err = config.CheckPath(cfg.Output); err != nil {
		return nil, errors.New("invalid output path")
	}

	// check bounds
	if cfg.Port == 0 || cfg.Port > 65535 {
		return nil, errors.New("config param port should be in range 1..65535")
	}
	if cfg.BuildTimeoutMillis < 100 {
		return nil, errors.New("config param build_timeout_millis should be >= 100")
	}

	return &cfg, nil
}

func setConfigDefaults() {
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("input", "-")
	viper.SetDefault("output", "-")
	viper.SetDefault("format", config.FORMAT_CPP)
	viper.SetDefault("strict_capabilities", false)
	viper.SetDefault("build_timeout_millis", 10000)
	viper.SetDefault("port", 8080)
	viper.SetDefault("http_log", false)
}
