package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/char5742/stylus-remap/internal/config"
	"github.com/char5742/stylus-remap/internal/consts"
	"github.com/char5742/stylus-remap/internal/device"
	"github.com/char5742/stylus-remap/internal/logging"
	"github.com/char5742/stylus-remap/internal/remap"
	"github.com/char5742/stylus-remap/internal/types"
)

// cliFlags はコマンドライン引数
type cliFlags struct {
	configPath string
	devicePath string
	forward    bool
	debug      int
	wait       time.Duration
	name       string
	list       bool

	set  map[string]bool // 明示的に指定されたフラグ
	args []string
}

func parseFlags(args []string, output io.Writer) (*cliFlags, error) {
	f := &cliFlags{set: make(map[string]bool)}

	fs := flag.NewFlagSet("stylus-remap", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&f.configPath, "config", "", "設定ファイルのパス (指定しない場合はデフォルトパスを使用)")
	fs.StringVar(&f.devicePath, "device", "", "リマップするデバイスのパス 例: /dev/input/event6")
	fs.BoolVar(&f.forward, "forward", true, "リマップしないイベントをそのまま転送する")
	fs.IntVar(&f.debug, "debug", 0, "デバッグ出力の詳細度 0: なし, 1: 状態遷移, 2: すべてのイベント")
	fs.DurationVar(&f.wait, "wait", 0, "デバイスが現れるまで待つ最大時間 (0は待たない)")
	fs.StringVar(&f.name, "name", "", "仮想デバイスの名前")
	fs.BoolVar(&f.list, "list", false, "入力デバイスを一覧表示して終了する")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	f.args = fs.Args()
	if len(f.args) > 1 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(f.args[1:], " "))
	}
	return f, nil
}

// apply は明示的に指定されたフラグで設定を上書きする
func (f *cliFlags) apply(cfg *config.Config) error {
	if f.set["debug"] {
		level, err := config.ParseDebugLevel(f.debug)
		if err != nil {
			return err
		}
		cfg.Log.Level = level
	}
	if f.set["device"] {
		cfg.Device.Path = f.devicePath
	} else if len(f.args) == 1 {
		cfg.Device.Path = f.args[0]
	}
	if f.set["forward"] {
		cfg.Remap.Forward = f.forward
	}
	if f.set["wait"] {
		cfg.Device.WaitTimeout = f.wait
	}
	if f.set["name"] {
		cfg.Output.Name = f.name
	}
	return cfg.Validate()
}

func main() {
	flags, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if flags.list {
		if err := listDevices(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "デバイス一覧の取得に失敗しました: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg := loadConfig(flags.configPath)
	if err := flags.apply(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "設定が不正です: %v\n", err)
		os.Exit(2)
	}

	logging.Init(os.Stdout, cfg.Log.Level)
	log := logging.GetSubsystemLogger("cli")
	log.Debug().Interface("config", cfg).Msg("configuration")

	// シグナルハンドラの設定
	handleSignals(log)

	err = remap.Process(remap.Options{
		DevicePath: cfg.Device.Path,
		Forward:    cfg.Remap.Forward,
		OutputName: cfg.Output.Name,
		OutputID: types.InputID{
			Bustype: consts.BusVirtual,
			Vendor:  cfg.Output.Vendor,
			Product: cfg.Output.Product,
			Version: 1,
		},
		WaitTimeout: cfg.Device.WaitTimeout,
	})
	log.Error().Err(err).Msg("remapping stopped")
	os.Exit(1)
}

// loadConfig は設定ファイルを読み込む
// 読み込めない場合はデフォルト設定を使う
func loadConfig(configPath string) *config.Config {
	// デフォルト設定ファイルパスの設定
	if configPath == "" {
		configDir, err := config.GetDefaultConfigDir()
		if err != nil {
			return config.DefaultConfig()
		}
		configPath = filepath.Join(configDir, "config.toml")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定ファイルの読み込みに失敗しました: %v\nデフォルト設定を使用します\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

func listDevices(w io.Writer) error {
	devices, err := device.ScanDevices()
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		fmt.Fprintln(w, "デバイスが見つかりませんでした (root権限が必要な場合があります)")
		return nil
	}
	for _, d := range devices {
		mark := " "
		if d.Stylus {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-20s %s\n", mark, d.Path, d.Name)
		for _, alias := range d.Aliases {
			fmt.Fprintf(w, "    %s\n", alias)
		}
	}
	return nil
}

// 終了シグナルで即座に終了する
// 専有と仮想デバイスはファイルのクローズでカーネルが解放する
func handleSignals(log *zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info().Stringer("signal", sig).Msg("shutting down")
		os.Exit(0)
	}()
}
