// Package config provides configuration loading, merging, and validation
// for the field agent and the hub.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. A .env file in the working directory
//  3. Environment variables
//  4. Command-line flags
//  5. JSON config file
//
// The entry points are [GetClientConfig] for the field agent and
// [GetHubConfig] for the hub.
package config
