// Package config provides the configuration of the locators tool: the
// identifier attribute and prefix, which tags are targeted, where output
// goes, and per-path overrides loaded from locators.yaml.
package config
