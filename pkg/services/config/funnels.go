package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/de-tools/umami-atlas/pkg/models/domain"
)

// DefaultFunnelNames is the comma-separated funnel set evaluated when no
// other source names one.
const DefaultFunnelNames = "pv -> login,pv -> purchase,guest trial,pricing"

// Presentation names for the default funnel set.
var defaultDisplayNames = map[string]string{
	"pv -> login":    "登录率",
	"pv -> purchase": "付费率",
	"guest trial":    "试用率",
	"pricing":        "价格查看率",
}

// FunnelDef is one funnel entry of the YAML funnels config.
type FunnelDef struct {
	Name    string `mapstructure:"name"`
	Lookup  string `mapstructure:"lookup"`
	Display string `mapstructure:"display"`
}

type FunnelsConfig struct {
	Funnels []FunnelDef `mapstructure:"funnels"`
}

// LoadFunnelRequests reads a YAML funnels config and returns the requests
// in file order. Entries without a name are skipped.
func LoadFunnelRequests(path string) ([]domain.FunnelRequest, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read funnels config %s: %w", path, err)
	}

	var cfg FunnelsConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse funnels config %s: %w", path, err)
	}

	requests := make([]domain.FunnelRequest, 0, len(cfg.Funnels))
	for _, def := range cfg.Funnels {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			continue
		}
		requests = append(requests, domain.FunnelRequest{
			Name:    name,
			Lookup:  strings.TrimSpace(def.Lookup),
			Display: strings.TrimSpace(def.Display),
		})
	}
	return requests, nil
}

// ParseFunnelNames splits a comma-separated funnel name list, trimming
// whitespace and dropping empty segments.
func ParseFunnelNames(value string) []string {
	var names []string
	for _, part := range strings.Split(value, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ParseReportMap decodes a JSON object mapping requested funnel names to
// dashboard report names. An empty input yields an empty map.
func ParseReportMap(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]string{}, nil
	}

	var mapping map[string]string
	if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
		return nil, fmt.Errorf("report name map must be a JSON object of strings: %w", err)
	}

	cleaned := make(map[string]string, len(mapping))
	for key, value := range mapping {
		cleaned[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return cleaned, nil
}

// BuildFunnelRequests combines an ordered name list with a lookup override
// map, applying the default display names where known.
func BuildFunnelRequests(names []string, reportMap map[string]string) []domain.FunnelRequest {
	requests := make([]domain.FunnelRequest, 0, len(names))
	for _, name := range names {
		requests = append(requests, domain.FunnelRequest{
			Name:    name,
			Lookup:  reportMap[name],
			Display: defaultDisplayNames[name],
		})
	}
	return requests
}

// DefaultFunnelRequests returns the built-in funnel set.
func DefaultFunnelRequests() []domain.FunnelRequest {
	return BuildFunnelRequests(ParseFunnelNames(DefaultFunnelNames), nil)
}
