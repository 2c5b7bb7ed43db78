// internal/vault/vault.go
//
// Vault secret resolution for ddb.
//
// Context
// -------
// The Drupal store is a production database, so its password never sits in
// `conf/global.yaml`.  The config loader hands any value of the form
// `vault:<mount>/<path>#<key>` to Resolve(), which reads the key from a
// KV-v2 secret using the standard VAULT_ADDR / VAULT_TOKEN environment.
//
// Unlike a long-lived daemon, an extraction run needs the secret exactly
// once, so there is no token-renewal loop and no cache—one client, one read.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package vault

import (
	"context"
	"fmt"
	"os"
	"strings"

	vault "github.com/hashicorp/vault/api"
)

// RefPrefix marks a config value as a Vault reference.
const RefPrefix = "vault:"

// IsRef reports whether s is a Vault reference.
func IsRef(s string) bool { return strings.HasPrefix(s, RefPrefix) }

// Resolve fetches the secret behind a `vault:<mount>/<path>#<key>` reference.
//
// Environment expectations
// ------------------------
// • VAULT_ADDR   – scheme and host of the Vault server.
// • VAULT_TOKEN  – token (falls back to ~/.vault-token).
func Resolve(ctx context.Context, ref string) (string, error) {
	secretPath, key, ok := strings.Cut(strings.TrimPrefix(ref, RefPrefix), "#")
	if !ok || secretPath == "" || key == "" {
		return "", fmt.Errorf("vault ref %q: want vault:<mount>/<path>#<key>", ref)
	}

	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return "", fmt.Errorf("vault env cfg: %w", err)
	}

	cli, err := vault.NewClient(cfg)
	if err != nil {
		return "", fmt.Errorf("vault api: %w", err)
	}
	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		cli.SetToken(tok)
	}

	mount, rel := splitMount(secretPath)
	sec, err := cli.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", secretPath, err)
	}

	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, secretPath)
	}
	sval, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s#%s is not a string", secretPath, key)
	}
	return sval, nil
}

// splitMount separates the KV mount from the secret's relative path.
func splitMount(p string) (mount, rel string) {
	p = strings.Trim(p, "/")
	if i := strings.IndexByte(p, '/'); i != -1 {
		return p[:i], p[i+1:]
	}
	return p, ""
}
