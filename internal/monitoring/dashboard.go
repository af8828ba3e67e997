package monitoring

import (
	"encoding/json"
	"fmt"

	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/config"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/registry"
)

// Static grid geometry: a full-width header row, then three metric panels
// per row. The panel set is fixed, so no layout algorithm is needed.
const (
	gridColumns  = 24
	headerHeight = 2
	panelWidth   = 8
	panelHeight  = 6
	panelsPerRow = gridColumns / panelWidth
)

type widget struct {
	Type       string         `json:"type"`
	X          int            `json:"x"`
	Y          int            `json:"y"`
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Properties map[string]any `json:"properties"`
}

// DashboardBody assembles the dashboard panel layout: one free-text header
// identifying the environment, plus one panel per alert metric.
func DashboardBody(cfg *config.Config, environmentID string, rules []registry.AlertRuleSpec) (string, error) {
	header := widget{
		Type:   "text",
		X:      0,
		Y:      0,
		Width:  gridColumns,
		Height: headerHeight,
		Properties: map[string]any{
			"markdown": fmt.Sprintf("# %s — %s (%s) %s",
				cfg.AppName, cfg.EnvironmentName, cfg.Region, environmentID),
		},
	}

	widgets := []widget{header}
	for i, rule := range rules {
		metric := []any{rule.Namespace, rule.Metric}
		for name, value := range rule.Dimensions {
			metric = append(metric, name, value)
		}
		widgets = append(widgets, widget{
			Type:   "metric",
			X:      (i % panelsPerRow) * panelWidth,
			Y:      headerHeight + (i/panelsPerRow)*panelHeight,
			Width:  panelWidth,
			Height: panelHeight,
			Properties: map[string]any{
				"title":   rule.Metric,
				"metrics": []any{metric},
				"region":  cfg.Region,
				"stat":    rule.Statistic,
				"period":  rule.EvaluationWindow,
				"view":    "timeSeries",
			},
		})
	}

	body, err := json.Marshal(map[string]any{"widgets": widgets})
	if err != nil {
		return "", fmt.Errorf("failed to marshal dashboard body: %w", err)
	}
	return string(body), nil
}
