package config

// RepoConfig tells the acquisition layer where the repository comes from.
// Exactly one of Path or URL should be set. A bare "owner/name" value in URL
// is expanded against Platform before cloning.
type RepoConfig struct {
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
	Platform string `json:"platform,omitempty" yaml:"platform,omitempty"`
}

// NewDefaultRepoConfig creates default repository configuration
func NewDefaultRepoConfig() RepoConfig {
	return RepoConfig{
		Platform: "https://github.com",
	}
}
