// Package config loads runtime configuration for the MedMate CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A JSON file named with -c or -config.
//  3. MEDMATE_* environment variables.
//  4. Command-line flags -a (base URL), -d (database path), -l (log level).
//
// JSON example:
//
//	{
//	  "base_url": "https://medmate.example",
//	  "db_path": "/home/me/.medmate.db",
//	  "timeouts": {"diagnose": "90s", "diagnose_image": 120000},
//	  "location": {"latitude": 28.45, "longitude": 77.02}
//	}
package config
