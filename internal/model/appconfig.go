package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to newly created options
	DefaultManipulation ManipulationType `json:"default_manipulation"`
	DefaultBehavior     DefaultBehavior  `json:"default_behavior"`
	DefaultDisplayType  DisplayType      `json:"default_display_type"`

	// Application preferences
	AutoResolve    bool     `json:"auto_resolve"` // re-resolve the preview on every edit
	MaxBackups     int      `json:"max_backups"`  // rolling project backups to keep
	RecentProjects []string `json:"recent_projects"`
	Theme          string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultManipulation: ManipulationVisibility,
		DefaultBehavior:     BehaviorHide,
		DefaultDisplayType:  DisplayButtons,
		AutoResolve:         true,
		MaxBackups:          10,
		RecentProjects:      []string{},
		Theme:               "system",
	}
}

// AddRecentProject prepends a path to the recent-projects list, removing
// duplicates and capping the list at max entries.
func (c *AppConfig) AddRecentProject(path string, max int) {
	if path == "" {
		return
	}
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentProjects = recent
}
