package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const appName = "stylus-remap"

var ErrInvalidDebugLevel = errors.New("debug level must be 0, 1 or 2")

// DebugLevel は端末に出力するデバッグ情報の詳細度
type DebugLevel uint8

const (
	DebugQuiet DebugLevel = iota // 通常出力のみ
	DebugMinimal                 // 状態遷移
	DebugTrace                   // すべてのイベント
)

// ParseDebugLevel は数値からDebugLevelを作る
func ParseDebugLevel(v int) (DebugLevel, error) {
	if v < int(DebugQuiet) || v > int(DebugTrace) {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDebugLevel, v)
	}
	return DebugLevel(v), nil
}

func (l DebugLevel) String() string {
	switch l {
	case DebugQuiet:
		return "quiet"
	case DebugMinimal:
		return "debug"
	case DebugTrace:
		return "trace"
	default:
		return fmt.Sprintf("DebugLevel(%d)", uint8(l))
	}
}

// Config はアプリケーション全体の設定を表す構造体
type Config struct {
	Device DeviceConfig `toml:"device"`
	Remap  RemapConfig  `toml:"remap"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

// DeviceConfig は物理デバイスの設定
type DeviceConfig struct {
	Path        string        `toml:"path"`
	WaitTimeout time.Duration `toml:"wait_timeout"`
}

// RemapConfig はリマップ処理の設定
type RemapConfig struct {
	Forward bool `toml:"forward"`
}

// OutputConfig は仮想デバイスの設定
type OutputConfig struct {
	Name    string `toml:"name"`
	Vendor  uint16 `toml:"vendor"`
	Product uint16 `toml:"product"`
}

// LogConfig はログ出力の設定
type LogConfig struct {
	Level DebugLevel `toml:"level"`
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig() *Config {
	return &Config{
		Device: DeviceConfig{
			Path:        "",
			WaitTimeout: 0,
		},
		Remap: RemapConfig{
			Forward: true,
		},
		Output: OutputConfig{
			Name:    "Stylus Button Proxy",
			Vendor:  0x4711,
			Product: 0x0818,
		},
		Log: LogConfig{
			Level: DebugQuiet,
		},
	}
}

// Validate は設定値の整合性を確認する
func (c *Config) Validate() error {
	if _, err := ParseDebugLevel(int(c.Log.Level)); err != nil {
		return err
	}
	if c.Device.Path == "" {
		return errors.New("no device path given (eg: /dev/input/event6)")
	}
	if c.Device.WaitTimeout < 0 {
		return fmt.Errorf("wait timeout must not be negative: %s", c.Device.WaitTimeout)
	}
	if c.Output.Name == "" {
		return errors.New("output device name must not be empty")
	}
	return nil
}

// GetDefaultConfigDir は設定ファイルを置くディレクトリを返す
func GetDefaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// LoadConfig は設定ファイルから設定を読み込む
func LoadConfig(configPath string) (*Config, error) {
	// デフォルト設定を用意
	config := DefaultConfig()

	// ファイルが存在しない場合はデフォルト設定を保存して返す
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveConfig(configPath, config); err != nil {
			return config, err
		}
		return config, nil
	}

	// 設定ファイルの読み込み
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	return config, nil
}

// SaveConfig は設定をTOMLファイルに保存する
func SaveConfig(configPath string, config *Config) error {
	// 設定ディレクトリの作成
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	// ファイルを開く（なければ作成）
	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	// TOML形式でエンコードして書き込み
	encoder := toml.NewEncoder(f)
	return encoder.Encode(config)
}
