package etims

import (
	"fmt"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
)

// SettingsDoctype is the settings record doctype on the server.
const SettingsDoctype = "KRA eTims Settings"

const settingsCacheKey = "active-settings"

// SettingsProvider fetches the active settings records and caches them for
// the lifetime of one run; every command in a run sees the same list.
type SettingsProvider struct {
	client *Client
	cache  *cache.Cache

	// UnknownCompany labels settings records that have no company set.
	UnknownCompany string
}

// NewSettingsProvider creates a provider backed by the given client.
func NewSettingsProvider(client *Client) *SettingsProvider {
	unknown := "Unknown"
	if client.Config != nil && client.Config.UnknownCompany != "" {
		unknown = client.Config.UnknownCompany
	}
	return &SettingsProvider{
		client:         client,
		cache:          cache.New(5*time.Minute, 10*time.Minute),
		UnknownCompany: unknown,
	}
}

// Active returns all settings records with is_active = 1.
func (p *SettingsProvider) Active() ([]Settings, error) {
	if cached, ok := p.cache.Get(settingsCacheKey); ok {
		return cached.([]Settings), nil
	}

	endpoint := fmt.Sprintf("%s?filters=%s&fields=%s&limit_page_length=0",
		url.PathEscape(SettingsDoctype),
		url.QueryEscape(`[["is_active","=",1]]`),
		url.QueryEscape(`["name","company"]`),
	)

	result, err := p.client.Request("GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch active settings: %w", err)
	}

	var settings []Settings
	if data, ok := result["data"].([]interface{}); ok {
		for _, item := range data {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			s := Settings{}
			if name, ok := m["name"].(string); ok {
				s.Name = name
			}
			if company, ok := m["company"].(string); ok && company != "" {
				s.Company = company
			} else {
				s.Company = p.UnknownCompany
			}
			if s.Name != "" {
				settings = append(settings, s)
			}
		}
	}

	p.cache.Set(settingsCacheKey, settings, cache.DefaultExpiration)
	return settings, nil
}

// Invalidate drops the cached settings list.
func (p *SettingsProvider) Invalidate() {
	p.cache.Delete(settingsCacheKey)
}

// CmdSettings handles settings commands
func (c *Client) CmdSettings(args []string) error {
	if len(args) == 0 || args[0] != "list" {
		fmt.Println("Usage: etims-cli settings list")
		fmt.Println()
		fmt.Println("Lists the active eTIMS settings records actions can run against.")
		return nil
	}

	fmt.Printf("%sFetching active eTIMS settings...%s\n", Blue, Reset)

	settings, err := c.Settings.Active()
	if err != nil {
		return err
	}

	if len(settings) == 0 {
		fmt.Printf("%sNo active eTIMS settings found%s\n", Yellow, Reset)
		return nil
	}

	fmt.Printf("\n%sActive settings (%d):%s\n", Cyan, len(settings), Reset)
	for _, s := range settings {
		fmt.Printf("  %s - %s%s%s\n", s.Name, Yellow, s.Company, Reset)
	}
	return nil
}
