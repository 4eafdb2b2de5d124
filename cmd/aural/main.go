// SPDX-License-Identifier: EPL-2.0

// Command aural plays, analyses and renders sound clips.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/ik5/aural"
	"github.com/ik5/aural/engine"
	"github.com/ik5/aural/fetch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configFile string

	rootCmd = &cobra.Command{
		Use:           "aural",
		Short:         "Play, analyse and render sound clips",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadConfig()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./aural.yaml)")
	rootCmd.PersistentFlags().Int("sample-rate", 44100, "output sample rate in Hz")
	rootCmd.PersistentFlags().Int("channels", 2, "output channel count")
	rootCmd.PersistentFlags().Int("cache", 16, "decoded clips to keep in memory (0 disables)")
	rootCmd.PersistentFlags().Bool("debug", false, "verbose logging")

	_ = viper.BindPFlag("sample_rate", rootCmd.PersistentFlags().Lookup("sample-rate"))
	_ = viper.BindPFlag("channels", rootCmd.PersistentFlags().Lookup("channels"))
	_ = viper.BindPFlag("cache", rootCmd.PersistentFlags().Lookup("cache"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	viper.SetDefault("sample_rate", 44100)
	viper.SetDefault("channels", 2)
	viper.SetDefault("cache", 16)

	viper.SetEnvPrefix("aural")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(playCmd, freqCmd, renderCmd)
}

func loadConfig() error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("aural")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	return nil
}

func newLogger() (*zap.Logger, error) {
	if viper.GetBool("debug") {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true

	return cfg.Build()
}

// session bundles what every command needs.
type session struct {
	log *zap.Logger
	ctx *engine.Context
	reg *aural.Registry
}

func newSession(backend engine.Backend) (*session, error) {
	log, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	ctx, err := engine.NewContext(engine.Config{
		SampleRate: viper.GetInt("sample_rate"),
		Channels:   viper.GetInt("channels"),
		Logger:     log,
	}, backend)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	reg := aural.New(ctx,
		aural.WithLogger(log),
		aural.WithFetcher(newFetcher(log)),
		aural.WithCache(viper.GetInt("cache")),
	)

	return &session{log: log, ctx: ctx, reg: reg}, nil
}

func (s *session) Close() {
	_ = s.reg.Close()
	_ = s.ctx.Close()
	_ = s.log.Sync()
}

// newFetcher serves files and http(s) and builds the S3 client the first
// time an s3:// source is requested.
func newFetcher(log *zap.Logger) fetch.Fetcher {
	mux := fetch.Default()
	mux.Handle("s3", &lazyFetcher{
		log: log,
		build: func(ctx context.Context) (fetch.Fetcher, error) {
			return fetch.NewS3(ctx)
		},
	})

	return mux
}

// lazyFetcher builds its fetcher on first use. The build is detached from
// the request context so a cancelled first request cannot break later ones.
type lazyFetcher struct {
	log   *zap.Logger
	build func(context.Context) (fetch.Fetcher, error)

	once sync.Once
	f    fetch.Fetcher
	err  error
}

func (l *lazyFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	l.once.Do(func() {
		l.f, l.err = l.build(context.Background())
		if l.err != nil {
			l.log.Warn("fetcher unavailable", zap.Error(l.err))
		}
	})
	if l.err != nil {
		return nil, l.err
	}

	return l.f.Fetch(ctx, source)
}

// clipFlags are the per-clip load options shared by the commands.
type clipFlags struct {
	volume  float64
	rate    float64
	loop    bool
	startAt time.Duration
	divider float64
}

func (f *clipFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.volume, "volume", aural.DefaultVolume, "clip volume")
	cmd.Flags().Float64Var(&f.rate, "rate", aural.DefaultRate, "playback rate")
	cmd.Flags().BoolVar(&f.loop, "loop", false, "loop the clip")
	cmd.Flags().DurationVar(&f.startAt, "start-at", 0, "offset to start playing from")
	cmd.Flags().Float64Var(&f.divider, "frequency-divider", aural.DefaultFrequencyDivider, "divider for the frequency intensity")
}

func (f *clipFlags) options(extra ...aural.LoadOption) []aural.LoadOption {
	return append([]aural.LoadOption{
		aural.WithVolume(f.volume),
		aural.WithRate(f.rate),
		aural.WithLoop(f.loop),
		aural.WithStartAt(f.startAt),
		aural.WithFrequencyDivider(f.divider),
	}, extra...)
}

// keyFor names a clip after its file name without extension.
func keyFor(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
