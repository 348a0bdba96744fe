// Package config manages user-level settings stored at
// ~/.armature/config.yaml. It provides functions to load, read, and write
// configuration keys such as the template registry URL.
package config
