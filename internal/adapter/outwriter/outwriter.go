// Package outwriter 把分析报告渲染为终端表格、JSON 或 YAML。
package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github-portfolio-auditor/internal/domain"
)

// Format 输出格式
type Format string

const (
	TextOut Format = "text"
	JSONOut Format = "json"
	YAMLOut Format = "yaml"
)

// Formats 所有支持的输出格式
var Formats = []Format{TextOut, JSONOut, YAMLOut}

// ParseFormat 解析输出格式，大小写不敏感
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format %q (want text, json or yaml)", s)
}

// OutWriter 按配置的格式输出报告
type OutWriter struct {
	format    Format
	useColors bool
}

// NewOutWriter 创建输出器，format 为空时使用 text
func NewOutWriter(format Format, useColors bool) *OutWriter {
	if format == "" {
		format = TextOut
	}
	return &OutWriter{format: format, useColors: useColors}
}

// WriteResult 输出一份分析报告
func (ow *OutWriter) WriteResult(w io.Writer, result *domain.AnalysisResult) error {
	if result == nil {
		return fmt.Errorf("nothing to write: result is nil")
	}

	switch ow.format {
	case JSONOut:
		if err := writeJSON(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case YAMLOut:
		if err := writeYAML(w, result); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	default:
		return writeReportText(w, result, ow.useColors)
	}
	return nil
}
