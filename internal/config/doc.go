// Package config provides configuration management for the slide renamer.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Conversion to NamingConfig and ExtractConfig for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get the lab's standard workflow values:
//
//	settings := config.DefaultSettings()
//	// Two numbers per slide, skip factor 1, three-digit padding,
//	// 270 degree label rotation
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/workflow_config.json")
//	if err != nil {
//	    // Defaults are used if the file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.SkipFactor = 2
//	err := settings.Save("/path/to/workflow_config.json")
package config
