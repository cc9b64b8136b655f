package outwriter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeYAML mirrors writeJSON for YAML output.
func writeYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// palette 一组着色函数，关闭颜色时全部退化为 fmt.Sprint
type palette struct {
	good, fair, poor, bold func(...any) string
}

func newPalette(useColors bool) palette {
	if !useColors {
		return palette{good: fmt.Sprint, fair: fmt.Sprint, poor: fmt.Sprint, bold: fmt.Sprint}
	}
	return palette{
		good: color.New(color.FgGreen).SprintFunc(),
		fair: color.New(color.FgYellow).SprintFunc(),
		poor: color.New(color.FgRed).SprintFunc(),
		bold: color.New(color.Bold).SprintFunc(),
	}
}

// score 按分数区间着色：70 及以上为好，50 以下为差
func (p palette) score(v float64, text string) string {
	switch {
	case v >= 70:
		return p.good(text)
	case v >= 50:
		return p.fair(text)
	default:
		return p.poor(text)
	}
}

// subScore 单仓库子分数 (0-50) 的着色
func (p palette) subScore(v int) string {
	return p.score(float64(v)*2, fmt.Sprintf("%d", v))
}
