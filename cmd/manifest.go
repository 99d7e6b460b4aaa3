package cmd

// manifest models the YAML schema consumed by the run subcommand. It captures
// the report metadata, optional SSH defaults for the target host, and the
// ordered list of commands to execute over the persistent shell session.
type manifest struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	SSHHost     sshHost        `yaml:"ssh_host,omitempty"`
	Commands    []commandEntry `yaml:"commands"`
}

// sshHost describes the remote connection details when not provided via CLI
// flags. CLI flags take precedence over these defaults when set.
type sshHost struct {
	IP   string `yaml:"ip"`
	Port int    `yaml:"port,omitempty"`
	User string `yaml:"user"`
}
