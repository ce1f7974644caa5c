package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"bomberman/pkg/core"
)

// ErrInvalidStage 关卡定义不合法
var ErrInvalidStage = errors.New("关卡配置错误")

// File 关卡配置文件
type File struct {
	Stages []StageDef `yaml:"stages"`
}

// StageDef 单个关卡的原始定义
type StageDef struct {
	Rows      int            `yaml:"rows"`
	Columns   int            `yaml:"columns"`
	RoundTime int            `yaml:"roundTime"`
	Enemies   map[string]int `yaml:"enemies"`
	PowerUps  map[string]int `yaml:"powerUps"`
	Map       []string       `yaml:"map"`
}

// ValidationError 汇总全部配置问题
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidStage, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidStage
}

// Parse 解析并校验 YAML 关卡配置
func Parse(data []byte) ([]core.StageSpec, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("解析关卡配置失败: %w", err)
	}
	return Validate(f.Stages)
}

// Validate 校验关卡定义并转换为模拟使用的结构
// 所有问题一次性报告，任何问题都会使整个配置无效。
func Validate(defs []StageDef) ([]core.StageSpec, error) {
	var problems []string
	report := func(i int, format string, args ...any) {
		problems = append(problems, fmt.Sprintf("关卡 %d: ", i+1)+fmt.Sprintf(format, args...))
	}

	if len(defs) == 0 {
		return nil, &ValidationError{Problems: []string{"没有任何关卡"}}
	}

	specs := make([]core.StageSpec, 0, len(defs))
	for i, d := range defs {
		spec := core.StageSpec{
			Rows:      d.Rows,
			Columns:   d.Columns,
			RoundTime: d.RoundTime,
			Enemies:   make(map[core.Kind]int),
			PowerUps:  make(map[core.PowerUpType]int),
		}
		if d.Rows < core.MinRows {
			report(i, "rows 必须 ≥ %d，实际为 %d", core.MinRows, d.Rows)
		}
		if d.Columns < core.MinColumns {
			report(i, "columns 必须 ≥ %d，实际为 %d", core.MinColumns, d.Columns)
		}
		if d.RoundTime < core.MinRoundTime {
			report(i, "roundTime 必须 ≥ %d，实际为 %d", core.MinRoundTime, d.RoundTime)
		}

		if len(d.Enemies) == 0 {
			report(i, "至少需要一个敌人")
		}
		for _, name := range sortedKeys(d.Enemies) {
			kind, err := core.ParseEnemyKind(name)
			if err != nil {
				report(i, "%v", err)
				continue
			}
			if n := d.Enemies[name]; n < 1 {
				report(i, "敌人 %s 的数量必须 ≥ 1，实际为 %d", name, n)
				continue
			}
			spec.Enemies[kind] = d.Enemies[name]
		}

		for _, name := range sortedKeys(d.PowerUps) {
			typ, err := core.ParsePowerUpType(name)
			if err != nil {
				report(i, "%v", err)
				continue
			}
			if n := d.PowerUps[name]; n < 1 {
				report(i, "道具 %s 的数量必须 ≥ 1，实际为 %d", name, n)
				continue
			}
			spec.PowerUps[typ] = d.PowerUps[name]
		}

		if d.Map != nil && d.Rows >= core.MinRows && d.Columns >= core.MinColumns {
			tiles, walls, errs := parseMap(d.Map, d.Rows-2, d.Columns-2)
			for _, e := range errs {
				report(i, "%s", e)
			}
			if len(errs) == 0 {
				if need := spec.PowerUpTotal() + 1; walls < need {
					report(i, "地图中的墙数 %d 不足以容纳出口和 %d 个道具", walls, need-1)
				}
				spec.Map = tiles
			}
		}
		if d.Map == nil && d.Rows >= core.MinRows && d.Columns >= core.MinColumns {
			need := spec.PowerUpTotal() + 1 + spec.EnemyTotal()
			if room := core.GeneratedCapacity(d.Rows, d.Columns); room < need {
				report(i, "可用格数 %d 不足以容纳出口、%d 个道具和 %d 个敌人", room, spec.PowerUpTotal(), spec.EnemyTotal())
			}
		}
		specs = append(specs, spec)
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return specs, nil
}

// parseMap 解析内部区域的字面地图；左上角不计入墙数（该格强制为空）
func parseMap(lines []string, rows, columns int) ([][]core.TileKind, int, []string) {
	var errs []string
	if len(lines) != rows {
		errs = append(errs, fmt.Sprintf("地图应有 %d 行，实际为 %d", rows, len(lines)))
	}
	tiles := make([][]core.TileKind, len(lines))
	walls := 0
	for j, line := range lines {
		if len(line) != columns {
			errs = append(errs, fmt.Sprintf("地图第 %d 行应有 %d 列，实际为 %d", j+1, columns, len(line)))
		}
		tiles[j] = make([]core.TileKind, len(line))
		for i, ch := range line {
			switch ch {
			case '.':
				tiles[j][i] = core.TileEmpty
			case '#':
				tiles[j][i] = core.TileRock
			case '*':
				tiles[j][i] = core.TileWall
				if i != 0 || j != 0 {
					walls++
				}
			default:
				errs = append(errs, fmt.Sprintf("地图第 %d 行含有非法字符 %q", j+1, ch))
			}
		}
	}
	return tiles, walls, errs
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
