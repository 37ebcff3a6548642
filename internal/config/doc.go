// Package config loads, normalizes, and validates scribe configuration data.
//
// It supplies defaults that reproduce the fixed pipeline parameters (model,
// chunk length, timestamps), expands user paths, reads TOML files, and honours
// environment fallbacks such as OPENAI_API_KEY and SCRIBE_DEVICE. A missing
// config file is not an error: the built-in defaults are a complete setup.
package config
