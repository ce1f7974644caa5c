package config

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"bomberman/pkg/core"
)

//go:embed stages.yaml
var defaults embed.FS

// DefaultFile 内置关卡配置文件名
const DefaultFile = "stages.yaml"

// Loader 从文件系统加载关卡配置
type Loader struct {
	fsys fs.FS
}

// NewLoader 以目录创建加载器
func NewLoader(dir string) *Loader {
	return &Loader{fsys: os.DirFS(dir)}
}

// NewFSLoader 以 fs.FS 创建加载器
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Load 读取并校验关卡配置
func (l *Loader) Load(name string) ([]core.StageSpec, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("读取关卡配置 %s 失败: %w", name, err)
	}
	specs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("关卡配置 %s: %w", name, err)
	}
	return specs, nil
}

// Default 内置关卡列表
func Default() ([]core.StageSpec, error) {
	return NewFSLoader(defaults).Load(DefaultFile)
}

// LoadPath 按路径加载；路径为空时使用内置关卡
func LoadPath(path string) ([]core.StageSpec, error) {
	if path == "" {
		return Default()
	}
	return NewLoader(filepath.Dir(path)).Load(filepath.Base(path))
}
