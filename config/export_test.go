package config

// Exported aliases for white-box testing from the config_test package.
var (
	ResolveToken = resolveToken
	Validate     = validate
)
