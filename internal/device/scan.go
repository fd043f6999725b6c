package device

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const inputDir = "/dev/input"

// Info はスキャンで見つかった入力デバイス
type Info struct {
	Path    string   // /dev/input/eventN
	Name    string   // カーネルが報告する名前
	Aliases []string // by-id、by-pathのシンボリックリンク
	Stylus  bool     // BTN_TOOL_PENを報告する
}

// ScanDevices は現在接続されているイベントデバイスを列挙する
// 開けないデバイス（権限不足など）は読み飛ばす
func ScanDevices() ([]Info, error) {
	return scanDevices(inputDir, openInfo)
}

func scanDevices(dir string, probe func(path string) (Info, error)) ([]Info, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "event*"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	aliases := resolveAliases(filepath.Join(dir, "by-id"), filepath.Join(dir, "by-path"))

	var devices []Info
	for _, path := range paths {
		info, err := probe(path)
		if err != nil {
			continue
		}
		info.Path = path
		info.Aliases = aliases[path]
		devices = append(devices, info)
	}
	return devices, nil
}

func openInfo(path string) (Info, error) {
	d, err := Open(path)
	if err != nil {
		return Info{}, err
	}
	defer d.Close()

	name, err := d.Name()
	if err != nil {
		return Info{}, err
	}
	caps, err := d.Capabilities()
	if err != nil {
		return Info{}, err
	}
	return Info{Name: name, Stylus: caps.IsStylus()}, nil
}

// resolveAliases はシンボリックリンクのディレクトリを読み、
// 実体のパスからリンクのパスへの対応を作る
func resolveAliases(dirs ...string) map[string][]string {
	aliases := make(map[string][]string)
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			// eventが含まれない場合はスキップ
			if !strings.Contains(entry.Name(), "event") {
				continue
			}
			fullPath := filepath.Join(dir, entry.Name())
			realPath, err := os.Readlink(fullPath)
			if err != nil {
				continue
			}

			// 絶対パスを構築
			if !filepath.IsAbs(realPath) {
				realPath = filepath.Join(filepath.Dir(dir), filepath.Base(realPath))
			}
			aliases[realPath] = append(aliases[realPath], fullPath)
		}
	}
	return aliases
}
