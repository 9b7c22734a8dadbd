package secure

import (
	"os"
	"strings"
)

// CredentialConfig a source for a secret value
type CredentialConfig interface {
	IsEmpty() bool
	Fetch() (string, error)
}

// DefaultCredentialConfig misc options for credentials
// if different field names are required, just implement CredentialConfig interface
type DefaultCredentialConfig struct {
	Password       string `json:"password"`       // Password plaintext password; if set, is used instead of the rest
	PasswordEnvVar string `json:"passwordEnvVar"` // PasswordEnvVar name of env var with secret
	PasswordFile   string `json:"passwordFile"`   // PasswordFile name of secrets file, to be read; if none of the above set, this one is used
}

// IsEmpty returns true if credential source is empty
func (c DefaultCredentialConfig) IsEmpty() bool {
	return strings.TrimSpace(c.Password) == "" &&
		strings.TrimSpace(c.PasswordEnvVar) == "" &&
		strings.TrimSpace(c.PasswordFile) == ""
}

// Fetch retrieve the contents of the credential
// resolution order: literal password, env var (cleared after read), secrets file
func (c DefaultCredentialConfig) Fetch() (string, error) {
	if plainText := strings.TrimSpace(c.Password); plainText != "" {
		return plainText, nil
	}
	if envVar := strings.TrimSpace(c.PasswordEnvVar); envVar != "" {
		plainText := os.Getenv(envVar)
		_ = os.Setenv(envVar, "")
		return plainText, nil
	}
	if secretsFile := strings.TrimSpace(c.PasswordFile); secretsFile != "" {
		data, err := os.ReadFile(secretsFile)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	return "", nil
}
