package config

type ServiceConfig struct {
	Name                string         `yaml:"name"`
	Environment         string         `yaml:"environment"`
	Version             string         `yaml:"version"`
	ClientURL           string         `yaml:"client_url"`
	StripeSecretKey     string         `yaml:"stripe_secret_key"`
	StripeWebhookSecret string         `yaml:"stripe_webhook_secret"`
	AdminEmails         []string       `yaml:"admin_emails"`
	Supabase            SupabaseConfig `yaml:"supabase"`
}

type SupabaseConfig struct {
	ProjectURL string `yaml:"project_url"`
	APIKey     string `yaml:"api_key"`
	JWTSecret  string `yaml:"jwt_secret"`
}

// Configured reports whether the Supabase URL/key pair is present. When it is
// not, the client core runs in demo mode and synthesizes account data locally.
func (c SupabaseConfig) Configured() bool {
	return c.ProjectURL != "" && c.APIKey != ""
}
