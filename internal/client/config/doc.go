// Package config loads runtime configuration for the vault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment: a .env file in the working directory, then VAULT_*
//     variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   address:port of the vault server        (VAULT_API_URL)
//	-d string   path of the local session database      (VAULT_DB_PATH)
//	-k int      seconds before a copied secret is cleared (VAULT_CLIPBOARD_CLEAR)
//	-m int      minimum master password strength, 0-4   (VAULT_MIN_PASSWORD_SCORE)
//	-o string   directory exports are written to        (VAULT_EXPORT_DIR)
//	-v          verbose logging                         (VAULT_VERBOSE)
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "database_path": "/home/me/.zkvault/vault.db",
//	  "clipboard_clear_delay": "30s",
//	  "min_password_score": 3,
//	  "export_dir": ".",
//	  "verbose": false
//	}
package config
