// Package config loads runtime configuration for the gophauth CLI.
//
// Values are resolved in this order, later sources winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. An optional JSON file passed to LoadConfig.
//  3. Global CLI flags such as --addr, applied by the cli package.
//
// JSON schema:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "5s"
//	}
package config
