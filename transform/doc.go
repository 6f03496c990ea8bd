// Package transform joins the two idldoc stages into a text-to-text
// [Transformer] and provides its CLI and file configuration.
//
// Use [Config] to register flags, optionally load a YAML configuration file,
// and build a Transformer:
//
//	cfg := transform.NewConfig()
//	cfg.RegisterFlags(cmd.Flags())
//
//	// After flag parsing:
//	err := cfg.Load(cmd.Flags())
//	t, err := cfg.NewTransformer()
//	out := t.Transform(src)
//
// Values from the configuration file apply to every setting whose flag was
// not set explicitly. The file is validated against the JSON Schema returned
// by [Schema] before it is decoded.
package transform
