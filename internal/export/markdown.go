package export

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/plumber-cd/ez-pipeline/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed markdown.tmpl
var markdownTmpl string

// numericFields are rendered with digit grouping.
var numericFields = map[domain.FieldID]bool{
	domain.FieldTimeoutValue:     true,
	domain.FieldTimeBetweenReads: true,
	domain.FieldReadCount:        true,
}

// RenderMarkdown renders a snapshot of the form, plus the dependency rules
// that produced it, as a Markdown report.
func RenderMarkdown(snapshot domain.Snapshot, rules []string) (string, error) {
	p := message.NewPrinter(language.English)

	rows := make([]map[string]string, 0, len(snapshot))
	disabled := []string{}
	simulate := false
	for _, entry := range snapshot {
		value := entry.Value
		if numericFields[entry.Field] {
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				value = p.Sprintf("%d", n)
			}
		}
		state := "enabled"
		if !entry.Enabled {
			state = "disabled"
			disabled = append(disabled, markdownInline(entry.Label))
		}
		if entry.Field == domain.FieldSimulate {
			simulate = entry.Value == "true"
		}
		rows = append(rows, map[string]string{
			"Field": markdownCode(string(entry.Field)),
			"Label": markdownInline(entry.Label),
			"Value": markdownInline(defaultIfEmpty(value, "-")),
			"State": state,
		})
	}

	ruleItems := make([]string, 0, len(rules))
	for _, rule := range rules {
		ruleItems = append(ruleItems, markdownCode(rule))
	}

	tmpl := template.Must(template.New("markdown").Parse(markdownTmpl))
	input := map[string]interface{}{
		"Rows":     rows,
		"Disabled": disabled,
		"Simulate": simulate,
		"Rules":    ruleItems,
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, input); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return sb.String(), nil
}

func markdownInline(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "|", "\\|")
	return value
}

func markdownCode(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "`", "'")
	return "`" + value + "`"
}

func defaultIfEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
